package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

/*
NewIncidence assembles an nr x nc incidence matrix holding the number of times each (rows[n], cols[n])
pair occurs. Repeated pairs accumulate.
*/
func NewIncidence(nr, nc int, rows, cols []int) (A *sparse.CSR, err error) {
	if len(rows) != len(cols) {
		err = fmt.Errorf("length of row and column indices are not equal: len(rows) = %v, len(cols) = %v",
			len(rows), len(cols))
		return
	}
	SpTmp := sparse.NewDOK(nr, nc)
	for n := range rows {
		i, j := rows[n], cols[n]
		if i < 0 || i >= nr || j < 0 || j >= nc {
			err = fmt.Errorf("incidence entry (%d, %d) outside of a %d x %d matrix", i, j, nr, nc)
			return
		}
		SpTmp.Set(i, j, SpTmp.At(i, j)+1)
	}
	A = SpTmp.ToCSR()
	return
}

/*
GramDiagonal returns the diagonal of Transpose(A) * A. For a 0/1 incidence matrix this is the number of
rows incident to each column.
*/
func GramDiagonal(A *sparse.CSR) (diag []float64) {
	var (
		_, nc = A.Dims()
	)
	diag = make([]float64, nc)
	if nc == 0 {
		return
	}
	SpAtA := sparse.NewCSR(nc, nc, nil, nil, nil)
	SpAtA.Mul(A.T(), A)
	for i := 0; i < nc; i++ {
		diag[i] = SpAtA.At(i, i)
	}
	return
}
