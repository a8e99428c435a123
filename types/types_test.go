package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))
		assert.Equal(t, "(1,100)", en.String())

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1<<32 - 1, 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Test degenerate keys
		assert.True(t, NewEdgeKey([2]int{7, 7}).IsDegenerate())
		assert.False(t, NewEdgeKey([2]int{7, 8}).IsDegenerate())
	}
	{ // Test local edge pairing of a triangle
		tri := [3]uint32{10, 20, 30}
		assert.Equal(t, NewEdgeKey([2]int{10, 20}), NewTriEdgeKey(tri, 0))
		assert.Equal(t, NewEdgeKey([2]int{10, 30}), NewTriEdgeKey(tri, 1))
		assert.Equal(t, NewEdgeKey([2]int{20, 30}), NewTriEdgeKey(tri, 2))
	}
}

func TestCodimAndPrecision(t *testing.T) {
	for c := 0; c < 3; c++ {
		codim, err := NewCodim(c)
		require.NoError(t, err)
		assert.Equal(t, Codim(c), codim)
	}
	_, err := NewCodim(3)
	assert.Error(t, err)
	_, err = NewCodim(-1)
	assert.Error(t, err)
	assert.Equal(t, "edge", CodimEdge.String())

	p, err := NewPrecision("single")
	require.NoError(t, err)
	assert.Equal(t, Single, p)
	assert.Equal(t, 4, p.Bytes())
	p, err = NewPrecision("float64")
	require.NoError(t, err)
	assert.Equal(t, Double, p)
	assert.Equal(t, 8, p.Bytes())
	_, err = NewPrecision("half")
	assert.Error(t, err)
}
