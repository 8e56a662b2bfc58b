package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

// collectLeafBodies walks t and returns every BodyRecord stored in any
// leaf, in tree-traversal order.
func collectLeafBodies(t *tree.Tree) []tree.BodyRecord {
	var out []tree.BodyRecord
	var walk func(idx int32)
	walk = func(idx int32) {
		n := t.Nodes[idx]
		if n.Leaf {
			out = append(out, n.Bodies...)
			return
		}
		for _, c := range n.Children {
			if c != tree.NoChild {
				walk(c)
			}
		}
	}
	walk(t.Root)
	return out
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	_, err := tree.Build(nil, bounds, spatial.DefaultConfig())
	assert.ErrorIs(t, err, spatial.ErrEmptyInput)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	srcs := bodies(stubBody{pos: spatial.Vec3{}, mass: 1})
	_, err := tree.Build(srcs, bounds, spatial.Config{Theta: -1, MaxBodiesPerLeaf: 1, MaxTreeDepth: 1})
	assert.ErrorIs(t, err, spatial.ErrInvalidConfig)
}

func TestBuildRejectsBodyOutsideBounds(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 2}
	srcs := bodies(stubBody{pos: spatial.Vec3{X: 100}, mass: 1})
	_, err := tree.Build(srcs, bounds, spatial.DefaultConfig())
	assert.ErrorIs(t, err, spatial.ErrBodyOutsideBounds)
}

func TestBuildConservesMassAndPartitionsSources(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 20}
	srcs := bodies(
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 0},
		stubBody{pos: spatial.Vec3{X: -1, Y: -1, Z: -1}, mass: 2, id: 1},
		stubBody{pos: spatial.Vec3{X: 5, Y: -5, Z: 5}, mass: 3, id: 2},
		stubBody{pos: spatial.Vec3{X: -5, Y: 5, Z: -5}, mass: 4, id: 3},
		stubBody{pos: spatial.Vec3{X: 9, Y: 9, Z: 9}, mass: 5, id: 4},
	)
	cfg := spatial.Config{Theta: 0.5, MaxBodiesPerLeaf: 1, MaxTreeDepth: 15}

	tr, err := tree.Build(srcs, bounds, cfg)
	require.NoError(t, err)

	root := tr.Nodes[tr.Root]
	assert.InDelta(t, 15, root.MassTotal, 1e-9)

	leafBodies := collectLeafBodies(tr)
	assert.Len(t, leafBodies, len(srcs))
	seen := make(map[int64]bool)
	for _, b := range leafBodies {
		assert.False(t, seen[b.ID], "source %d appeared in more than one leaf", b.ID)
		seen[b.ID] = true
	}
	for _, s := range srcs {
		assert.True(t, seen[s.ID()])
	}
}

func TestBuildCenterOfMass(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	srcs := bodies(
		stubBody{pos: spatial.Vec3{X: 1}, mass: 1, id: 0},
		stubBody{pos: spatial.Vec3{X: -1}, mass: 1, id: 1},
	)
	tr, err := tree.Build(srcs, bounds, spatial.DefaultConfig())
	require.NoError(t, err)

	root := tr.Nodes[tr.Root]
	assert.InDelta(t, 2, root.MassTotal, 1e-12)
	assert.InDelta(t, 0, root.CenterOfMass.X, 1e-9)
	assert.InDelta(t, 0, root.CenterOfMass.Y, 1e-9)
	assert.InDelta(t, 0, root.CenterOfMass.Z, 1e-9)
}

func TestBuildGeometricContainment(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 20}
	srcs := bodies(
		stubBody{pos: spatial.Vec3{X: 3, Y: 3, Z: 3}, mass: 1, id: 0},
		stubBody{pos: spatial.Vec3{X: -7, Y: -7, Z: -7}, mass: 1, id: 1},
		stubBody{pos: spatial.Vec3{X: 6, Y: -2, Z: 1}, mass: 1, id: 2},
	)
	cfg := spatial.Config{Theta: 0.5, MaxBodiesPerLeaf: 1, MaxTreeDepth: 15}
	tr, err := tree.Build(srcs, bounds, cfg)
	require.NoError(t, err)

	var walk func(idx int32)
	walk = func(idx int32) {
		n := tr.Nodes[idx]
		region := spatial.Cube{Center: n.Center, Size: n.Size}
		if n.Leaf {
			for _, b := range n.Bodies {
				assert.True(t, region.Contains(b.Position))
			}
			return
		}
		for _, c := range n.Children {
			if c != tree.NoChild {
				walk(c)
			}
		}
	}
	walk(tr.Root)
}

func TestBuildDepthCapAbsorbsCoincidentBodies(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	srcs := bodies(
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 0},
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 1},
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 2},
	)
	cfg := spatial.Config{Theta: 0.5, MaxBodiesPerLeaf: 1, MaxTreeDepth: 3}
	tr, err := tree.Build(srcs, bounds, cfg)
	require.NoError(t, err)

	leafBodies := collectLeafBodies(tr)
	assert.Len(t, leafBodies, 3)
}

func TestBuildLeafBodiesCanonicallyOrdered(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	srcs := bodies(
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 9},
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 2},
		stubBody{pos: spatial.Vec3{X: 1, Y: 1, Z: 1}, mass: 1, id: 5},
	)
	cfg := spatial.Config{Theta: 0.5, MaxBodiesPerLeaf: 10, MaxTreeDepth: 15}
	tr, err := tree.Build(srcs, bounds, cfg)
	require.NoError(t, err)

	leaf := tr.Nodes[tr.Root]
	require.True(t, leaf.Leaf)
	require.Len(t, leaf.Bodies, 3)
	assert.Equal(t, []int64{2, 5, 9}, []int64{leaf.Bodies[0].ID, leaf.Bodies[1].ID, leaf.Bodies[2].ID})
}

func TestBuildDeterministicAcrossInputOrder(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 20}
	a := bodies(
		stubBody{pos: spatial.Vec3{X: 1, Y: 2, Z: 3}, mass: 1, id: 0},
		stubBody{pos: spatial.Vec3{X: -4, Y: 5, Z: -6}, mass: 2, id: 1},
		stubBody{pos: spatial.Vec3{X: 7, Y: -8, Z: 9}, mass: 3, id: 2},
	)
	b := []spatial.Body{a[2], a[0], a[1]}
	cfg := spatial.Config{Theta: 0.5, MaxBodiesPerLeaf: 1, MaxTreeDepth: 15}

	t1, err := tree.Build(a, bounds, cfg)
	require.NoError(t, err)
	t2, err := tree.Build(b, bounds, cfg)
	require.NoError(t, err)

	root1 := t1.Nodes[t1.Root]
	root2 := t2.Nodes[t2.Root]
	assert.InDelta(t, root1.MassTotal, root2.MassTotal, 1e-12)
	assert.InDelta(t, root1.CenterOfMass.X, root2.CenterOfMass.X, 1e-9)
	assert.InDelta(t, root1.CenterOfMass.Y, root2.CenterOfMass.Y, 1e-9)
	assert.InDelta(t, root1.CenterOfMass.Z, root2.CenterOfMass.Z, 1e-9)
}

func TestBuildWithMetricsNilIsSafe(t *testing.T) {
	bounds := spatial.Cube{Center: spatial.Vec3{}, Size: 10}
	srcs := bodies(stubBody{pos: spatial.Vec3{}, mass: 1})
	tr, err := tree.BuildWithMetrics(srcs, bounds, spatial.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.SourceCount())
}
