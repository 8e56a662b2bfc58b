package tree

import (
	"cmp"
	"time"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/barneshut/spatial"
)

// Build partitions sources inside bounds into an octree whose leaves
// hold at most cfg.MaxBodiesPerLeaf bodies, unless a leaf sits at
// cfg.MaxTreeDepth, in which case it may hold more. It returns
// ErrEmptyInput when sources is empty, ErrInvalidConfig when cfg
// fails validation, and ErrBodyOutsideBounds when a source lies
// outside bounds — the stated policy is to reject rather than widen
// the cube defensively (spec.md §4.1).
func Build(sources []spatial.Body, bounds spatial.Cube, cfg spatial.Config) (*Tree, error) {
	return BuildWithMetrics(sources, bounds, cfg, nil)
}

// metricsRecorder is the narrow slice of the metrics API Build needs,
// so this package does not import the metrics package (or Prometheus)
// directly; a *metrics.Set satisfies it.
type metricsRecorder interface {
	ObserveBuild(nodeCount int, elapsedSeconds float64)
}

// BuildWithMetrics is Build with an optional metrics sink. A nil m is
// always safe and costs nothing beyond the nil check.
func BuildWithMetrics(sources []spatial.Body, bounds spatial.Cube, cfg spatial.Config, m metricsRecorder) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, spatial.ErrEmptyInput
	}

	records := make([]BodyRecord, len(sources))
	for i, s := range sources {
		p := s.Position()
		if !bounds.Contains(p) {
			return nil, spatial.ErrBodyOutsideBounds
		}
		records[i] = BodyRecord{Position: p, Mass: s.Mass(), ID: s.ID()}
	}

	start := time.Now()
	arena, root := buildNode(records, bounds, 0, cfg)
	if m != nil {
		m.ObserveBuild(len(arena), time.Since(start).Seconds())
	}

	return &Tree{Nodes: arena, Root: root, Bounds: bounds}, nil
}

// buildNode builds the subtree for records inside region at depth,
// returning a self-contained arena and the index of its root within
// that arena (always the last element, since children precede
// parents).
func buildNode(records []BodyRecord, region spatial.Cube, depth uint32, cfg spatial.Config) ([]Node, int32) {
	if uint32(len(records)) <= cfg.MaxBodiesPerLeaf || depth >= cfg.MaxTreeDepth {
		return []Node{buildLeaf(records, region)}, 0
	}

	var buckets [8][]BodyRecord
	for _, r := range records {
		idx := region.Octant(r.Position)
		buckets[idx] = append(buckets[idx], r)
	}

	childArenas, childRoots := buildChildren(buckets, region, depth, cfg)

	arena := make([]Node, 0, len(records))
	node := newInternalNode(region.Center, region.Size)
	var mass float64
	var com spatial.Vec3
	for octant := 0; octant < 8; octant++ {
		if childArenas[octant] == nil {
			continue
		}
		offset := int32(len(arena))
		arena = appendArena(arena, childArenas[octant])
		node.Children[octant] = offset + childRoots[octant]

		child := childArenas[octant][childRoots[octant]]
		mass += child.MassTotal
		com = com.Add(child.CenterOfMass.Scale(child.MassTotal))
	}
	if mass != 0 {
		com = com.Scale(1 / mass)
	} else {
		com = region.Center
	}
	node.MassTotal = mass
	node.CenterOfMass = com

	rootIdx := int32(len(arena))
	arena = append(arena, node)
	return arena, rootIdx
}

// buildLeaf emits a leaf node storing copies of records and the
// aggregate mass/center-of-mass computed from them.
func buildLeaf(records []BodyRecord, region spatial.Cube) Node {
	n := Node{Leaf: true, Center: region.Center, Size: region.Size}
	n.Bodies = append(n.Bodies, records...)
	// Canonicalize leaf order by id, independent of input/partition
	// order, so two builds of the same source set (fed in different
	// orders, or built serially vs. in parallel) produce bit-identical
	// leaves — only the sum over a leaf's bodies is spec-mandated, but
	// a stable order makes persist's encoding reproducible too.
	slices.SortFunc(n.Bodies, func(a, b BodyRecord) int { return cmp.Compare(a.ID, b.ID) })

	var mass float64
	var com spatial.Vec3
	for _, r := range n.Bodies {
		mass += r.Mass
		com = com.Add(r.Position.Scale(r.Mass))
	}
	if mass != 0 {
		com = com.Scale(1 / mass)
	} else {
		com = region.Center
	}
	n.MassTotal = mass
	n.CenterOfMass = com
	return n
}

// appendArena appends copies of src into dst, shifting every internal
// node's child indices by len(dst) (computed once, before any node is
// appended) so they remain valid within the combined slice.
func appendArena(dst []Node, src []Node) []Node {
	offset := int32(len(dst))
	for _, n := range src {
		if !n.Leaf {
			for i, c := range n.Children {
				if c != noChild {
					n.Children[i] = c + offset
				}
			}
		}
		dst = append(dst, n)
	}
	return dst
}
