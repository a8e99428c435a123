package grid

import (
	"fmt"

	"github.com/notargets/gobem/types"
)

type edgeTable struct {
	edges         [][2]uint32 // Canonical vertex pair of each edge, smallest index first
	elementEdges  [][3]int    // Global edge index of each local edge of each element
	edgeNeighbors [][]int     // Elements referencing each edge, in traversal order
}

/*
enumerateEdges assigns global edge indices in first encounter order, walking elements in index order and
the local edges of each element in the order 0, 1, 2. The numbering is reproducible for identical input.
*/
func enumerateEdges(in *input) (et *edgeTable, err error) {
	var (
		K       = in.numberOfElements()
		edgeMap = make(map[types.EdgeKey]int, 3*K/2)
	)
	et = &edgeTable{
		elementEdges: make([][3]int, K),
	}
	for k := 0; k < K; k++ {
		tri := in.tri(k)
		for localEdge := 0; localEdge < 3; localEdge++ {
			key := types.NewTriEdgeKey(tri, localEdge)
			if key.IsDegenerate() {
				et = nil
				err = &DegenerateElementError{Element: k,
					Reason: fmt.Sprintf("repeated vertex %s on local edge %d", key, localEdge)}
				return
			}
			edgeIndex, ok := edgeMap[key]
			if !ok {
				edgeIndex = len(et.edges)
				edgeMap[key] = edgeIndex
				verts := key.GetVertices(false)
				et.edges = append(et.edges, [2]uint32{uint32(verts[0]), uint32(verts[1])})
				et.edgeNeighbors = append(et.edgeNeighbors, make([]int, 0, 2))
			}
			et.elementEdges[k][localEdge] = edgeIndex
			et.edgeNeighbors[edgeIndex] = append(et.edgeNeighbors[edgeIndex], k)
		}
	}
	return
}
