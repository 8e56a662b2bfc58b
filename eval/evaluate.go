package eval

import (
	"math"
	"time"

	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

// distanceEpsilon is the implementation-defined floor below which a
// source (or a node's center-of-mass) is treated as coincident with
// the target: self-interaction is skipped as a defense in depth even
// when ids are not in use, and an internal node at distance near zero
// is never accepted as a pseudo-body (spec.md §4.2).
const distanceEpsilon = 1e-12

// Kernel computes the pairwise force or acceleration contributed by a
// source (or pseudo-body) of mass/charge sourceScalar, seen from the
// target at distance along directionUnit. directionUnit points from
// the target toward the source, so an attractive kernel (gravity)
// returns a vector in the +directionUnit sense. Evaluate never
// normalizes or otherwise sanitizes the returned vector; its
// magnitude and sign are entirely up to the kernel.
type Kernel func(directionUnit spatial.Vec3, sourceScalar, distance float64) spatial.Vec3

// metricsRecorder is the narrow slice of the metrics API Evaluate
// needs; see tree.metricsRecorder for why this is a local interface
// rather than an import of the metrics package.
type metricsRecorder interface {
	ObserveEvaluate(elapsedSeconds float64)
}

// Evaluate returns the summed kernel contribution of every source in
// t as seen from target, under the Barnes-Hut approximation
// controlled by cfg.Theta. targetID suppresses self-interaction: any
// leaf source whose ID equals targetID contributes nothing, as does
// any source within distanceEpsilon of target regardless of ID.
//
// Evaluate never fails; a target with no interacting sources (the
// all-self case, or an empty tree) returns the zero vector.
func Evaluate(target spatial.Vec3, targetID int64, t *tree.Tree, cfg spatial.Config, k Kernel) spatial.Vec3 {
	return EvaluateWithMetrics(target, targetID, t, cfg, k, nil)
}

// EvaluateWithMetrics is Evaluate with an optional metrics sink. A nil
// m is always safe.
func EvaluateWithMetrics(target spatial.Vec3, targetID int64, t *tree.Tree, cfg spatial.Config, k Kernel, m metricsRecorder) spatial.Vec3 {
	if t == nil || len(t.Nodes) == 0 {
		return spatial.Vec3{}
	}

	start := time.Now()
	result := accumulate(t, t.Root, target, targetID, cfg, k)
	if m != nil {
		m.ObserveEvaluate(time.Since(start).Seconds())
	}
	return result
}

// accumulate walks the subtree rooted at idx, pre-order depth-first,
// per spec.md §4.2.
func accumulate(t *tree.Tree, idx int32, target spatial.Vec3, targetID int64, cfg spatial.Config, k Kernel) spatial.Vec3 {
	node := &t.Nodes[idx]
	if node.Leaf {
		return accumulateLeaf(node, target, targetID, k)
	}

	d := node.CenterOfMass.Sub(target)
	r2 := d.Dot(d)

	// Accept the node as a single pseudo-body when it is both
	// massive and far enough: s^2 < theta^2 * r^2. r == 0 (or below
	// epsilon) never accepts, and mass_total == 0 is always
	// descended so signed-charge cancellation stays exact (spec.md
	// §4.1/§9).
	if node.MassTotal != 0 && r2 > distanceEpsilon*distanceEpsilon {
		s2 := node.Size * node.Size
		if s2 < cfg.Theta*cfg.Theta*r2 {
			dist := math.Sqrt(r2)
			dir := d.Scale(1 / dist)
			return k(dir, node.MassTotal, dist)
		}
	}

	var acc spatial.Vec3
	for _, child := range node.Children {
		if child == tree.NoChild {
			continue
		}
		acc = acc.Add(accumulate(t, child, target, targetID, cfg, k))
	}
	return acc
}

func accumulateLeaf(node *tree.Node, target spatial.Vec3, targetID int64, k Kernel) spatial.Vec3 {
	var acc spatial.Vec3
	for _, b := range node.Bodies {
		if b.ID == targetID {
			continue
		}
		d := b.Position.Sub(target)
		dist := d.Norm()
		if dist < distanceEpsilon {
			continue
		}
		dir := d.Scale(1 / dist)
		acc = acc.Add(k(dir, b.Mass, dist))
	}
	return acc
}
