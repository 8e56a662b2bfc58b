package persist_test

import "github.com/katalvlaran/barneshut/spatial"

// stubBody is a minimal spatial.Body fixture used across this
// package's tests.
type stubBody struct {
	pos  spatial.Vec3
	mass float64
	id   int64
}

func (b stubBody) Position() spatial.Vec3 { return b.pos }
func (b stubBody) Mass() float64          { return b.mass }
func (b stubBody) ID() int64              { return b.id }

func bodies(specs ...stubBody) []spatial.Body {
	out := make([]spatial.Body, len(specs))
	for i, s := range specs {
		out[i] = s
	}
	return out
}
