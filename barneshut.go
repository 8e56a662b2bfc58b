// Package barneshut computes pairwise-summed force or acceleration
// fields over an N-body system using the Barnes-Hut tree
// approximation, reducing the cost of evaluating the field at M
// target points from O(N*M) to O(M*log N) at the price of a
// controlled, user-tunable approximation error.
//
// The library owns two things: a spatial decomposition tree built
// once per timestep (see tree.Build) and a multipole-acceptance
// traversal that evaluates the field at a target (see eval.Evaluate).
// It owns neither time integration, collision detection, nor the
// pairwise kernel itself — the kernel (Newtonian, Coulomb, MOND,
// softened) is a caller-supplied closure, with a handful of common
// ones provided in the kernel subpackage for convenience.
//
// This file re-exports the pieces most programs need so that
//
//	import "github.com/katalvlaran/barneshut"
//
// alone is enough for the common case; reach into the spatial, tree,
// eval, kernel, persist, treecache, and metrics subpackages directly
// for anything more specific.
package barneshut

import (
	"github.com/katalvlaran/barneshut/eval"
	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

type (
	// Vec3 is a double-precision 3-D vector. See spatial.Vec3.
	Vec3 = spatial.Vec3
	// Body is the capability a source must expose. See spatial.Body.
	Body = spatial.Body
	// Cube is an axis-aligned bounding cube. See spatial.Cube.
	Cube = spatial.Cube
	// Config tunes the approximation. See spatial.Config.
	Config = spatial.Config
	// Tree is an immutable octree. See tree.Tree.
	Tree = tree.Tree
	// Kernel is a pairwise force/acceleration function. See eval.Kernel.
	Kernel = eval.Kernel
)

// DefaultConfig returns the conventional starting configuration. See
// spatial.DefaultConfig.
func DefaultConfig() Config {
	return spatial.DefaultConfig()
}

// BoundingCube computes a cube enclosing every source. See
// spatial.BoundingCube.
func BoundingCube(sources []Body, padding float64) Cube {
	return spatial.BoundingCube(sources, padding)
}

// Build partitions sources inside bounds into an octree. See
// tree.Build.
func Build(sources []Body, bounds Cube, cfg Config) (*Tree, error) {
	return tree.Build(sources, bounds, cfg)
}

// Evaluate returns the summed kernel contribution of every source in
// t as seen from target. See eval.Evaluate.
func Evaluate(target Vec3, targetID int64, t *Tree, cfg Config, k Kernel) Vec3 {
	return eval.Evaluate(target, targetID, t, cfg, k)
}
