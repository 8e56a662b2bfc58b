package persist

import (
	"encoding/binary"
	"math"

	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

// Encode produces a self-contained binary snapshot of t: a header,
// one fixed-width record per node in t.Nodes order, and a trailing
// section of every leaf's bodies, also in node order. Decode(Encode(t))
// reproduces t's fields bit-for-bit.
func Encode(t *tree.Tree) ([]byte, error) {
	totalBodies := 0
	for i := range t.Nodes {
		if t.Nodes[i].Leaf {
			totalBodies += len(t.Nodes[i].Bodies)
		}
	}

	buf := make([]byte, headerSize+len(t.Nodes)*nodeRecordSize+totalBodies*bodyRecordSize)
	off := 0

	copy(buf[off:], magic)
	off += magicSize
	buf[off] = formatVersion
	off += versionSize + reservedSize
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(t.Nodes)))
	off += nodeCountSize
	binary.LittleEndian.PutUint32(buf[off:], uint32(t.Root))
	off += rootSize
	off = putVec3(buf, off, t.Bounds.Center)
	putFloat64(buf, off, t.Bounds.Size)
	off += boundsSize

	bodySectionStart := headerSize + len(t.Nodes)*nodeRecordSize
	bodyCursor := uint32(0)
	nodeOff := off
	bodyOff := bodySectionStart

	for i := range t.Nodes {
		n := &t.Nodes[i]
		o := nodeOff
		if n.Leaf {
			buf[o] = 1
		} else {
			buf[o] = 0
		}
		o += leafFlagSize + nodeReservedSize
		o = putVec3(buf, o, n.Center)
		putFloat64(buf, o, n.Size)
		o += nodeSizeSize
		putFloat64(buf, o, n.MassTotal)
		o += massTotalSize
		o = putVec3(buf, o, n.CenterOfMass)

		if n.Leaf {
			for _, c := range n.Children {
				binary.LittleEndian.PutUint32(buf[o:], uint32(c))
				o += childSlotSize
			}
			binary.LittleEndian.PutUint32(buf[o:], uint32(len(n.Bodies)))
			o += bodyCountSize
			binary.LittleEndian.PutUint32(buf[o:], bodyCursor)
			o += bodyOffsetSize

			for _, b := range n.Bodies {
				bodyOff = putVec3(buf, bodyOff, b.Position)
				putFloat64(buf, bodyOff, b.Mass)
				bodyOff += bodyMassSize
				binary.LittleEndian.PutUint64(buf[bodyOff:], uint64(b.ID))
				bodyOff += bodyIDSize
			}
			bodyCursor += uint32(len(n.Bodies))
		} else {
			for _, c := range n.Children {
				binary.LittleEndian.PutUint32(buf[o:], uint32(c))
				o += childSlotSize
			}
			o += bodyCountSize + bodyOffsetSize
		}
		nodeOff += nodeRecordSize
	}

	return buf, nil
}

// putVec3 writes v's three components starting at off and returns
// the offset immediately past them.
func putVec3(buf []byte, off int, v spatial.Vec3) int {
	putFloat64(buf, off, v.X)
	putFloat64(buf, off+8, v.Y)
	putFloat64(buf, off+16, v.Z)
	return off + vec3Size
}

func putFloat64(buf []byte, off int, f float64) {
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(f))
}
