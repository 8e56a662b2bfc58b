package tree

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/barneshut/spatial"
)

// parallelDepthCutoff bounds how close to the root buildChildren will
// still consider fanning out; below the root, subtrees shrink fast
// enough that goroutine overhead stops paying for itself.
const parallelDepthCutoff = 3

// parallelBodyCutoff is the minimum number of bodies across all eight
// buckets before buildChildren bothers parallelizing at all. A serial
// build below this size is both correct and faster (spec.md §4.1: "a
// serial build is acceptable").
const parallelBodyCutoff = 1024

// buildChildren builds the (up to eight) non-empty child subtrees of
// a node, choosing a goroutine-per-octant parallel recursion or a
// plain serial loop depending on how much work is on the table. Either path
// produces the same tree up to node ordering, which is not externally
// observable since children are referenced by index (spec.md §4.1).
func buildChildren(buckets [8][]BodyRecord, region spatial.Cube, depth uint32, cfg spatial.Config) ([8][]Node, [8]int32) {
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	if depth < parallelDepthCutoff && total >= parallelBodyCutoff {
		return buildChildrenParallel(buckets, region, depth, cfg)
	}
	return buildChildrenSerial(buckets, region, depth, cfg)
}

func buildChildrenSerial(buckets [8][]BodyRecord, region spatial.Cube, depth uint32, cfg spatial.Config) ([8][]Node, [8]int32) {
	var arenas [8][]Node
	var roots [8]int32
	for octant := 0; octant < 8; octant++ {
		if len(buckets[octant]) == 0 {
			continue
		}
		sub := region.Split(octant)
		arenas[octant], roots[octant] = buildNode(buckets[octant], sub, depth+1, cfg)
	}
	return arenas, roots
}

// buildChildrenParallel dispatches one goroutine per non-empty
// octant, each building into its own arena; every goroutine writes to
// a distinct slot of arenas/roots, so no lock is needed for the
// writes themselves, only the errgroup to wait for completion.
func buildChildrenParallel(buckets [8][]BodyRecord, region spatial.Cube, depth uint32, cfg spatial.Config) ([8][]Node, [8]int32) {
	var arenas [8][]Node
	var roots [8]int32

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for octant := 0; octant < 8; octant++ {
		if len(buckets[octant]) == 0 {
			continue
		}
		octant := octant
		sub := region.Split(octant)
		g.Go(func() error {
			arenas[octant], roots[octant] = buildNode(buckets[octant], sub, depth+1, cfg)
			return nil
		})
	}
	_ = g.Wait() // buildNode never errors; Wait only synchronizes completion.

	return arenas, roots
}
