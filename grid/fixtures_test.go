package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// unit right triangle in the z=0 plane
func singleTriangle(t *testing.T) *Grid {
	g, err := New(
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]uint32{0, 1, 2},
		nil)
	require.NoError(t, err)
	return g
}

// unit square split along the diagonal 1-2
func unitSquare(t *testing.T) *Grid {
	g, err := New(
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0},
		[]uint32{0, 1, 2, 1, 3, 2},
		[]uint32{3, 7})
	require.NoError(t, err)
	return g
}

// closed surface of the unit corner tetrahedron, outward oriented
func tetrahedron(t *testing.T) *Grid {
	g, err := NewFromTriangles(
		[][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
		nil)
	require.NoError(t, err)
	return g
}
