package grid

import (
	"math"

	"github.com/notargets/gobem/utils"
)

// input is the validated, grid owned copy of the raw construction arrays
type input struct {
	vertices      []float64 // 3 per vertex, x0,y0,z0,x1,...
	elements      []uint32  // 3 per element
	domainIndices []uint32  // 1 per element
}

func (in *input) numberOfVertices() int { return len(in.vertices) / 3 }
func (in *input) numberOfElements() int { return len(in.elements) / 3 }

func normalizeInput(vertices []float64, elements []uint32, domainIndices []uint32) (in *input, err error) {
	const op = "grid.New"
	switch {
	case len(vertices) == 0:
		err = invalidArgument(op, "no vertices")
		return
	case len(vertices)%3 != 0:
		err = invalidArgument(op, "vertex array length %d is not a multiple of 3", len(vertices))
		return
	case len(elements) == 0:
		err = invalidArgument(op, "no elements")
		return
	case len(elements)%3 != 0:
		err = invalidArgument(op, "element array length %d is not a multiple of 3", len(elements))
		return
	}
	var (
		Nv = len(vertices) / 3
		K  = len(elements) / 3
	)
	if domainIndices != nil && len(domainIndices) != K {
		err = invalidArgument(op, "have %d domain indices for %d elements", len(domainIndices), K)
		return
	}
	if i := utils.IndexNonFinite(vertices); i != -1 {
		err = invalidArgument(op, "vertex %d has a non finite coordinate %v", i/3, vertices[i])
		return
	}
	for i, v := range elements {
		if int(v) >= Nv {
			err = invalidArgument(op, "element %d references vertex %d, have %d vertices", i/3, v, Nv)
			return
		}
	}
	in = &input{
		vertices:      make([]float64, len(vertices)),
		elements:      make([]uint32, len(elements)),
		domainIndices: make([]uint32, K),
	}
	copy(in.vertices, vertices)
	copy(in.elements, elements)
	copy(in.domainIndices, domainIndices)
	return
}

func (in *input) tri(k int) (tri [3]uint32) {
	copy(tri[:], in.elements[3*k:3*k+3])
	return
}

/*
NewFromTriangles builds a grid from per-vertex coordinate triples and per-element vertex index triples.
domainIndices may be nil.
*/
func NewFromTriangles(vertices [][3]float64, elements [][3]int, domainIndices []int) (g *Grid, err error) {
	const op = "grid.NewFromTriangles"
	var (
		vf = make([]float64, 0, 3*len(vertices))
		ef = make([]uint32, 0, 3*len(elements))
		df []uint32
	)
	for _, v := range vertices {
		vf = append(vf, v[0], v[1], v[2])
	}
	for k, tri := range elements {
		for _, v := range tri {
			if v < 0 || v > math.MaxUint32 {
				err = invalidArgument(op, "element %d has vertex index %d out of range", k, v)
				return
			}
			ef = append(ef, uint32(v))
		}
	}
	if domainIndices != nil {
		df = make([]uint32, len(domainIndices))
		for k, d := range domainIndices {
			if d < 0 || d > math.MaxUint32 {
				err = invalidArgument(op, "element %d has domain index %d out of range", k, d)
				return
			}
			df[k] = uint32(d)
		}
	}
	return New(vf, ef, df)
}
