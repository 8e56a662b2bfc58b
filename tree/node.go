package tree

import "github.com/katalvlaran/barneshut/spatial"

// NoChild marks an absent octant slot in an internal Node.
const NoChild int32 = -1

// noChild is the package-internal name used by the builder; kept
// equal to the exported constant so eval (and any other consumer
// walking Node.Children) has a single name to compare against.
const noChild = NoChild

// BodyRecord is a source copied into a leaf: position, mass, and the
// stable identifier used by eval to suppress self-interaction. The
// tree never retains the original spatial.Body after Build returns.
type BodyRecord struct {
	Position spatial.Vec3
	Mass     float64
	ID       int64
}

// Node is either an internal node (Leaf == false) or a leaf
// (Leaf == true). Internal nodes reference up to eight children by
// index into the owning Tree's Nodes slice; Children[i] == -1 means
// octant i is empty. Leaves instead hold the bodies assigned to them.
type Node struct {
	Leaf bool

	Center       spatial.Vec3
	Size         float64
	MassTotal    float64
	CenterOfMass spatial.Vec3

	Children [8]int32
	Bodies   []BodyRecord
}

// newInternalNode returns a Node with all child slots marked absent.
func newInternalNode(center spatial.Vec3, size float64) Node {
	n := Node{Center: center, Size: size}
	for i := range n.Children {
		n.Children[i] = noChild
	}
	return n
}

// Tree is an immutable octree: a flat node arena plus the index of
// the root and the bounding cube the root covers. Nodes reference
// children by index, never by pointer, so a *Tree is safe to share
// and read concurrently without synchronization once Build returns.
type Tree struct {
	Nodes  []Node
	Root   int32
	Bounds spatial.Cube
}

// NodeCount returns the number of nodes (internal and leaf) in t.
func (t *Tree) NodeCount() int {
	return len(t.Nodes)
}

// SourceCount returns the total number of source bodies stored across
// every leaf of t.
func (t *Tree) SourceCount() int {
	n := 0
	for _, node := range t.Nodes {
		if node.Leaf {
			n += len(node.Bodies)
		}
	}
	return n
}
