package persist

import (
	"encoding/binary"
	"math"

	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

// Decode parses a snapshot previously produced by Encode. It returns
// ErrShortBuffer, ErrBadMagic, ErrVersionMismatch, ErrTruncated, or
// ErrInvalidBodyRange on malformed input; on success the returned
// *tree.Tree is equal, field-for-field, to the tree Encode was given.
func Decode(data []byte) (*tree.Tree, error) {
	if len(data) < headerSize {
		return nil, ErrShortBuffer
	}
	if string(data[:magicSize]) != magic {
		return nil, ErrBadMagic
	}
	if data[magicSize] != formatVersion {
		return nil, ErrVersionMismatch
	}

	off := magicSize + versionSize + reservedSize
	nodeCount := int(binary.LittleEndian.Uint32(data[off:]))
	off += nodeCountSize
	root := int32(binary.LittleEndian.Uint32(data[off:]))
	off += rootSize
	center, off2 := getVec3(data, off)
	off = off2
	size := getFloat64(data, off)
	off += boundsSize

	needed := headerSize + nodeCount*nodeRecordSize
	if len(data) < needed {
		return nil, ErrTruncated
	}

	type leafInfo struct {
		idx         int
		bodyOffset  uint32
		bodyCount   uint32
	}
	nodes := make([]tree.Node, nodeCount)
	var leaves []leafInfo
	totalBodies := uint32(0)

	nodeOff := off
	for i := 0; i < nodeCount; i++ {
		o := nodeOff
		isLeaf := data[o] != 0
		o += leafFlagSize + nodeReservedSize
		var n tree.Node
		n.Leaf = isLeaf
		n.Center, o = getVec3(data, o)
		n.Size = getFloat64(data, o)
		o += nodeSizeSize
		n.MassTotal = getFloat64(data, o)
		o += massTotalSize
		n.CenterOfMass, o = getVec3(data, o)

		for c := 0; c < childSlotCount; c++ {
			n.Children[c] = int32(binary.LittleEndian.Uint32(data[o:]))
			o += childSlotSize
		}
		bodyCount := binary.LittleEndian.Uint32(data[o:])
		o += bodyCountSize
		bodyOffset := binary.LittleEndian.Uint32(data[o:])
		o += bodyOffsetSize

		if isLeaf {
			leaves = append(leaves, leafInfo{idx: i, bodyOffset: bodyOffset, bodyCount: bodyCount})
			if end := bodyOffset + bodyCount; end > totalBodies {
				totalBodies = end
			}
		}
		nodes[i] = n
		nodeOff += nodeRecordSize
	}

	bodySectionStart := needed
	bodySectionLen := int(totalBodies) * bodyRecordSize
	if len(data) < bodySectionStart+bodySectionLen {
		return nil, ErrTruncated
	}

	bodies := make([]tree.BodyRecord, totalBodies)
	bo := bodySectionStart
	for i := range bodies {
		var b tree.BodyRecord
		b.Position, bo = getVec3(data, bo)
		b.Mass = getFloat64(data, bo)
		bo += bodyMassSize
		b.ID = int64(binary.LittleEndian.Uint64(data[bo:]))
		bo += bodyIDSize
		bodies[i] = b
	}

	for _, lf := range leaves {
		start, count := lf.bodyOffset, lf.bodyCount
		if uint64(start)+uint64(count) > uint64(len(bodies)) {
			return nil, ErrInvalidBodyRange
		}
		nodes[lf.idx].Bodies = append(nodes[lf.idx].Bodies, bodies[start:start+count]...)
	}

	return &tree.Tree{
		Nodes:  nodes,
		Root:   root,
		Bounds: spatial.Cube{Center: center, Size: size},
	}, nil
}

func getVec3(data []byte, off int) (spatial.Vec3, int) {
	v := spatial.Vec3{
		X: getFloat64(data, off),
		Y: getFloat64(data, off+8),
		Z: getFloat64(data, off+16),
	}
	return v, off + vec3Size
}

func getFloat64(data []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
}
