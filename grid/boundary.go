package grid

import (
	"github.com/notargets/gobem/utils"
)

/*
classifyBoundary marks an edge as boundary when exactly one element references it, read from the diagonal
of Transpose(EToEdge) * EToEdge, where EToEdge is the element to edge incidence. A vertex is on the boundary
when it is an endpoint of a boundary edge.
*/
func classifyBoundary(Nv int, et *edgeTable) (edgeOnBoundary, vertexOnBoundary []bool, err error) {
	var (
		K    = len(et.elementEdges)
		Ne   = len(et.edges)
		rows = make([]int, 0, 3*K)
		cols = make([]int, 0, 3*K)
	)
	for k, ee := range et.elementEdges {
		for _, e := range ee {
			rows = append(rows, k)
			cols = append(cols, e)
		}
	}
	SpEToEdge, err := utils.NewIncidence(K, Ne, rows, cols)
	if err != nil {
		return
	}
	incidentElements := utils.GramDiagonal(SpEToEdge)
	edgeOnBoundary = make([]bool, Ne)
	vertexOnBoundary = make([]bool, Nv)
	for e, count := range incidentElements {
		if count == 1 {
			edgeOnBoundary[e] = true
			vertexOnBoundary[et.edges[e][0]] = true
			vertexOnBoundary[et.edges[e][1]] = true
		}
	}
	return
}
