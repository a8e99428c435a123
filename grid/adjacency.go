package grid

import (
	"sort"
)

const (
	sharedByVertex = 1
	sharedByEdge   = 2
)

/*
VertexAdjacency records two elements that share exactly one vertex. Local[0] is the local index (0, 1 or 2)
of the shared vertex in Elements[0] and Local[1] its local index in Elements[1].
*/
type VertexAdjacency struct {
	Elements [2]int
	Local    [2]int
}

/*
EdgeAdjacency records two elements that share exactly two vertices. Local[0] holds the two local vertex
indices in Elements[0] and Local[1] the matching local indices in Elements[1], so that vertex Local[0][n] of
the first element is vertex Local[1][n] of the second.
*/
type EdgeAdjacency struct {
	Elements [2]int
	Local    [2][2]int
}

// sharedCount is one off-diagonal entry of the element x element shared vertex count
type sharedCount struct {
	element int
	count   int
}

// vertexToElements lists, for each vertex, the elements referencing it in ascending order
func vertexToElements(in *input) (v2e [][]int) {
	var (
		Nv = in.numberOfVertices()
		K  = in.numberOfElements()
	)
	degree := make([]int, Nv)
	for _, v := range in.elements {
		degree[v]++
	}
	v2e = make([][]int, Nv)
	for v := range v2e {
		v2e[v] = make([]int, 0, degree[v])
	}
	for k := 0; k < K; k++ {
		for _, v := range in.tri(k) {
			v2e[v] = append(v2e[v], k)
		}
	}
	return
}

/*
countSharedVertices is the product of the vertex to element incidence with itself, without the diagonal.
Row k lists every other element sharing at least one vertex with k, in ascending element order, along with
the number of vertices shared.
*/
func countSharedVertices(in *input) (counts [][]sharedCount) {
	var (
		K       = in.numberOfElements()
		v2e     = vertexToElements(in)
		scratch = make([]int, K)
		touched []int
	)
	counts = make([][]sharedCount, K)
	for k := 0; k < K; k++ {
		touched = touched[:0]
		for _, v := range in.tri(k) {
			for _, kk := range v2e[v] {
				if kk == k {
					continue
				}
				if scratch[kk] == 0 {
					touched = append(touched, kk)
				}
				scratch[kk]++
			}
		}
		sort.Ints(touched)
		row := make([]sharedCount, len(touched))
		for i, kk := range touched {
			row[i] = sharedCount{element: kk, count: scratch[kk]}
			scratch[kk] = 0
		}
		counts[k] = row
	}
	return
}

type adjacency struct {
	vertex []VertexAdjacency
	edge   []EdgeAdjacency
}

/*
classifyAdjacency walks the upper triangle of the shared vertex counts, so each unordered pair is recorded
once with the lower element index first, and resolves the local vertex correspondence of each pair.
*/
func classifyAdjacency(in *input, counts [][]sharedCount) (adj *adjacency, err error) {
	adj = &adjacency{}
	for k, row := range counts {
		for _, sc := range row {
			if sc.element <= k {
				continue
			}
			var (
				pair = [2]int{k, sc.element}
				a, b = in.tri(k), in.tri(sc.element)
			)
			switch sc.count {
			case sharedByVertex:
				i, j, ok := firstCommonIndexPair(a, b, 0)
				if !ok {
					return nil, &ConsistencyError{Elements: pair, Shared: sc.count,
						Reason: "no common vertex id found"}
				}
				adj.vertex = append(adj.vertex, VertexAdjacency{Elements: pair, Local: [2]int{i, j}})
			case sharedByEdge:
				local, ok := twoCommonIndexPairs(a, b)
				if !ok {
					return nil, &ConsistencyError{Elements: pair, Shared: sc.count,
						Reason: "vertex ids do not match twice"}
				}
				adj.edge = append(adj.edge, EdgeAdjacency{Elements: pair, Local: local})
			default:
				return nil, &ConsistencyError{Elements: pair, Shared: sc.count,
					Reason: "distinct elements share all of their vertices"}
			}
		}
	}
	return
}

// compareArrayToValue returns the first position of val in a, or -1
func compareArrayToValue(a [3]uint32, val uint32) int {
	for i, v := range a {
		if v == val {
			return i
		}
	}
	return -1
}

// firstCommonIndexPair returns the first (i, j) with a[i] == b[j], scanning a from position start onwards
func firstCommonIndexPair(a, b [3]uint32, start int) (i, j int, ok bool) {
	for i = start; i < len(a); i++ {
		if j = compareArrayToValue(b, a[i]); j != -1 {
			return i, j, true
		}
	}
	return -1, -1, false
}

/*
twoCommonIndexPairs finds both correspondences of a shared edge. The second search resumes one position
past the first match in a, so the same vertex cannot be matched twice.
*/
func twoCommonIndexPairs(a, b [3]uint32) (local [2][2]int, ok bool) {
	var i0, j0, i1, j1 int
	if i0, j0, ok = firstCommonIndexPair(a, b, 0); !ok {
		return
	}
	if i1, j1, ok = firstCommonIndexPair(a, b, i0+1); !ok {
		return
	}
	local = [2][2]int{{i0, i1}, {j0, j1}}
	return
}
