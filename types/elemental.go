package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

// GetVertices unpacks the key, smallest index first unless rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// IsDegenerate is true for a key built from a repeated vertex
func (ek EdgeKey) IsDegenerate() bool {
	v := ek.GetVertices(false)
	return v[0] == v[1]
}

func (ek EdgeKey) String() string {
	v := ek.GetVertices(false)
	return fmt.Sprintf("(%d,%d)", v[0], v[1])
}

/*
LocalEdgeVertices is the fixed pairing of local vertices to the three local edges of a triangle:
local edge 0 runs v0->v1, local edge 1 runs v2->v0 and local edge 2 runs v1->v2
*/
var LocalEdgeVertices = [3][2]int{{0, 1}, {2, 0}, {1, 2}}

// NewTriEdgeKey returns the key for the local edge of a triangle
func NewTriEdgeKey(tri [3]uint32, localEdge int) (ek EdgeKey) {
	lv := LocalEdgeVertices[localEdge]
	ek = NewEdgeKey([2]int{int(tri[lv[0]]), int(tri[lv[1]])})
	return
}
