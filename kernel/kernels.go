package kernel

import (
	"math"

	"github.com/katalvlaran/barneshut/eval"
	"github.com/katalvlaran/barneshut/spatial"
)

// Newtonian returns the classic inverse-square kernel,
// K(u, m, d) = g*m/d^2 * u, matching spec.md's worked example
// exactly. It returns the zero vector at d == 0 rather than dividing
// by zero, though eval.Evaluate's self-interaction guard already
// keeps d from reaching zero on the traversal's own accepted paths.
func Newtonian(g float64) eval.Kernel {
	return func(dir spatial.Vec3, m, d float64) spatial.Vec3 {
		if d == 0 {
			return spatial.Vec3{}
		}
		return dir.Scale(g * m / (d * d))
	}
}

// Coulomb returns the same inverse-square shape as Newtonian, scaled
// by Coulomb's constant ke instead of the gravitational constant.
// sourceScalar is the source's signed charge; the returned vector
// points toward the source (the same "direction from target to
// source" convention as Newtonian), so a caller modeling a like-sign
// target charge negates the result, or a caller modeling repulsion
// between identical charges passes a negative ke.
func Coulomb(ke float64) eval.Kernel {
	return func(dir spatial.Vec3, q, d float64) spatial.Vec3 {
		if d == 0 {
			return spatial.Vec3{}
		}
		return dir.Scale(ke * q / (d * d))
	}
}

// PlummerSoftened returns a gravity-like kernel that replaces the
// d^2 singularity with a Plummer softening length epsilon:
// K(u, m, d) = g*m*d / (d^2 + epsilon^2)^1.5 * u. Unlike Newtonian,
// it stays finite as d -> 0, which is the softening's entire purpose
// (spec.md §4.2, "kernels should handle small distance gracefully").
func PlummerSoftened(g, epsilon float64) eval.Kernel {
	eps2 := epsilon * epsilon
	return func(dir spatial.Vec3, m, d float64) spatial.Vec3 {
		denom := math.Pow(d*d+eps2, 1.5)
		if denom == 0 {
			return spatial.Vec3{}
		}
		return dir.Scale(g * m * d / denom)
	}
}

// SimpleInterpolatingFunction is the "simple" MOND interpolating
// function, mu(x) = x / (1 + x), the standard default when the
// caller has no specific family in mind.
func SimpleInterpolatingFunction(x float64) float64 {
	return x / (1 + x)
}

// StandardInterpolatingFunction is the "standard" MOND interpolating
// function, mu(x) = x / sqrt(1 + x^2).
func StandardInterpolatingFunction(x float64) float64 {
	return x / math.Sqrt(1+x*x)
}

// MOND returns a Modified Newtonian Dynamics kernel: it computes the
// Newtonian acceleration aN = g*m/d^2, then solves mu(a/a0)*a = aN
// for a via a few steps of Newton's method, and returns a*u. A nil
// interpolating function defaults to SimpleInterpolatingFunction.
//
// MOND is the glossary's example of a non-standard kernel the
// injection contract must support: eval.Evaluate has no notion of
// "modified gravity", it only ever calls the Kernel it was given.
func MOND(g, a0 float64, interpolating func(x float64) float64) eval.Kernel {
	if interpolating == nil {
		interpolating = SimpleInterpolatingFunction
	}
	return func(dir spatial.Vec3, m, d float64) spatial.Vec3 {
		if d == 0 {
			return spatial.Vec3{}
		}
		aN := g * m / (d * d)
		a := solveMond(aN, a0, interpolating)
		return dir.Scale(a)
	}
}

// solveMond finds a >= 0 solving interpolating(a/a0)*a == aN by
// Newton's method with a numerical derivative, starting from the
// Newtonian value itself. 50 iterations comfortably over-converges
// for every interpolating function shape used in practice; the loop
// exits early once the step size is negligible.
func solveMond(aN, a0 float64, interpolating func(float64) float64) float64 {
	if aN == 0 {
		return 0
	}
	a := aN
	for i := 0; i < 50; i++ {
		f := interpolating(a/a0)*a - aN
		h := a*1e-6 + 1e-12
		df := (interpolating((a+h)/a0)*(a+h) - interpolating((a-h)/a0)*(a-h)) / (2 * h)
		if df == 0 {
			break
		}
		next := a - f/df
		if next <= 0 {
			next = a / 2
		}
		if math.Abs(next-a) < 1e-12*math.Max(1, a) {
			a = next
			break
		}
		a = next
	}
	return a
}
