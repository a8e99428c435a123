package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidence(t *testing.T) {
	{ // Two triangles sharing edge 1, element x edge incidence
		rows := []int{0, 0, 0, 1, 1, 1}
		cols := []int{0, 1, 2, 1, 3, 4}
		A, err := NewIncidence(2, 5, rows, cols)
		require.NoError(t, err)
		nr, nc := A.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 5, nc)
		assert.Equal(t, 1., A.At(0, 1))
		assert.Equal(t, 0., A.At(0, 3))
		assert.Equal(t, []float64{1, 2, 1, 1, 1}, GramDiagonal(A))
	}
	{ // Repeated entries accumulate
		A, err := NewIncidence(1, 2, []int{0, 0}, []int{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 2., A.At(0, 1))
		assert.Equal(t, []float64{0, 4}, GramDiagonal(A))
	}
	{ // Bad input
		_, err := NewIncidence(2, 2, []int{0}, []int{0, 1})
		assert.Error(t, err)
		_, err = NewIncidence(2, 2, []int{2}, []int{0})
		assert.Error(t, err)
	}
}
