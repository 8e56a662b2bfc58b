package spatial

// Cube is an axis-aligned cubic region described by its center and
// full edge length Size. It has a single Size for all three axes and
// cannot describe a rectangular box; a caller covering a non-cubic
// region uses its largest axis span as Size, which is what this
// package's own BoundingCube does.
type Cube struct {
	Center Vec3
	Size   float64
}

// HalfSize returns Size/2, the offset from Center to a face.
func (c Cube) HalfSize() float64 {
	return c.Size / 2
}

// Contains reports whether p lies within c, using a closed interval
// on every axis so a point exactly on a face is still contained.
func (c Cube) Contains(p Vec3) bool {
	h := c.HalfSize()
	return p.X >= c.Center.X-h && p.X <= c.Center.X+h &&
		p.Y >= c.Center.Y-h && p.Y <= c.Center.Y+h &&
		p.Z >= c.Center.Z-h && p.Z <= c.Center.Z+h
}

// Octant returns which of the eight octants of c contains p, using
// three independent sign tests against c.Center. A coordinate exactly
// equal to the center is assigned to the "positive" (>=) side on that
// axis; the convention is applied consistently across all three axes
// so ties are resolved deterministically (spec.md §4.1).
//
// Bit 0 (LSB) is the X sign, bit 1 the Y sign, bit 2 the Z sign: 1
// means "positive side".
func (c Cube) Octant(p Vec3) int {
	idx := 0
	if p.X >= c.Center.X {
		idx |= 1
	}
	if p.Y >= c.Center.Y {
		idx |= 2
	}
	if p.Z >= c.Center.Z {
		idx |= 4
	}
	return idx
}

// Split returns the sub-cube occupying octant idx (as returned by
// Octant): half the size of c, centered size/4 off c's center along
// each axis in the direction that octant's sign bits indicate.
func (c Cube) Split(idx int) Cube {
	quarter := c.Size / 4
	dx, dy, dz := -quarter, -quarter, -quarter
	if idx&1 != 0 {
		dx = quarter
	}
	if idx&2 != 0 {
		dy = quarter
	}
	if idx&4 != 0 {
		dz = quarter
	}
	return Cube{
		Center: Vec3{c.Center.X + dx, c.Center.Y + dy, c.Center.Z + dz},
		Size:   c.Size / 2,
	}
}

// BoundingCube computes a cube enclosing every source, per spec.md
// §4.3: min/max over each axis, center at the midpoint, size at the
// largest axis span inflated by padding (default 1e-6 if padding <=
// 0) so that bodies sitting exactly on the computed boundary are
// still unambiguously contained.
//
// BoundingCube panics on an empty slice; Build's own ErrEmptyInput
// check happens independently so callers that build their own cube
// still get a typed error instead of a panic from Build.
func BoundingCube(sources []Body, padding float64) Cube {
	if len(sources) == 0 {
		panic("spatial: BoundingCube called with no sources")
	}
	if padding <= 0 {
		padding = 1e-6
	}

	first := sources[0].Position()
	minV, maxV := first, first
	for _, s := range sources[1:] {
		p := s.Position()
		if p.X < minV.X {
			minV.X = p.X
		}
		if p.Y < minV.Y {
			minV.Y = p.Y
		}
		if p.Z < minV.Z {
			minV.Z = p.Z
		}
		if p.X > maxV.X {
			maxV.X = p.X
		}
		if p.Y > maxV.Y {
			maxV.Y = p.Y
		}
		if p.Z > maxV.Z {
			maxV.Z = p.Z
		}
	}

	center := Vec3{
		X: (minV.X + maxV.X) / 2,
		Y: (minV.Y + maxV.Y) / 2,
		Z: (minV.Z + maxV.Z) / 2,
	}
	span := maxV.X - minV.X
	if dy := maxV.Y - minV.Y; dy > span {
		span = dy
	}
	if dz := maxV.Z - minV.Z; dz > span {
		span = dz
	}
	if span == 0 {
		// A single body, or several coincident ones: give the cube a
		// unit extent instead of degenerating to a point.
		span = 1
	}
	return Cube{Center: center, Size: span * (1 + padding)}
}
