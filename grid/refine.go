package grid

/*
Refine returns a new grid where every element is split into four. Edge midpoints are appended to the vertex
list in edge index order, and the children of element k are elements 4k to 4k+3:

	(v0, m01, m20), (m01, v1, m12), (m12, v2, m20), (m01, m12, m20)

Each child inherits the domain index of its parent. The receiver is not modified.
*/
func (g *Grid) Refine() (refined *Grid, err error) {
	var (
		Nv          = g.NumberOfVertices()
		Ne          = g.NumberOfEdges()
		K           = g.NumberOfElements()
		vs          = g.input.vertices
		newVertices = make([]float64, 3*(Nv+Ne))
		newElements = make([]uint32, 0, 12*K)
		newDomains  = make([]uint32, 0, 4*K)
	)
	copy(newVertices, vs)
	for e, ev := range g.edges {
		for i := 0; i < 3; i++ {
			newVertices[3*(Nv+e)+i] = 0.5 * (vs[3*int(ev[0])+i] + vs[3*int(ev[1])+i])
		}
	}
	for k := 0; k < K; k++ {
		var (
			tri = g.input.tri(k)
			ee  = g.elementEdges[k]
			m01 = uint32(Nv + ee[0])
			m20 = uint32(Nv + ee[1])
			m12 = uint32(Nv + ee[2])
			dom = g.input.domainIndices[k]
		)
		newElements = append(newElements,
			tri[0], m01, m20,
			m01, tri[1], m12,
			m12, tri[2], m20,
			m01, m12, m20,
		)
		newDomains = append(newDomains, dom, dom, dom, dom)
	}
	return New(newVertices, newElements, newDomains)
}
