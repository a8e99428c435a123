package grid

import (
	"iter"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/types"
)

/*
Entity is a view of one element, edge or vertex of a grid. Views hold only the owning grid and an index, two
views are equal when both match.
*/
type Entity interface {
	Index() int
	Codim() types.Codim
	Grid() *Grid
}

type Element struct {
	grid  *Grid
	index int
}

type Edge struct {
	grid  *Grid
	index int
}

type Vertex struct {
	grid  *Grid
	index int
}

func (g *Grid) GetElement(k int) (el Element, err error) {
	if k < 0 || k >= g.NumberOfElements() {
		err = invalidArgument("GetElement", "element %d out of range [0,%d)", k, g.NumberOfElements())
		return
	}
	return Element{grid: g, index: k}, nil
}

func (g *Grid) GetEdge(e int) (ed Edge, err error) {
	if e < 0 || e >= g.NumberOfEdges() {
		err = invalidArgument("GetEdge", "edge %d out of range [0,%d)", e, g.NumberOfEdges())
		return
	}
	return Edge{grid: g, index: e}, nil
}

func (g *Grid) GetVertex(v int) (vx Vertex, err error) {
	if v < 0 || v >= g.NumberOfVertices() {
		err = invalidArgument("GetVertex", "vertex %d out of range [0,%d)", v, g.NumberOfVertices())
		return
	}
	return Vertex{grid: g, index: v}, nil
}

// ElementIterator yields every element in index order, each call starts a fresh sequence
func (g *Grid) ElementIterator() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for k := 0; k < g.NumberOfElements(); k++ {
			if !yield(Element{grid: g, index: k}) {
				return
			}
		}
	}
}

func (g *Grid) EdgeIterator() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for e := 0; e < g.NumberOfEdges(); e++ {
			if !yield(Edge{grid: g, index: e}) {
				return
			}
		}
	}
}

func (g *Grid) VertexIterator() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for v := 0; v < g.NumberOfVertices(); v++ {
			if !yield(Vertex{grid: g, index: v}) {
				return
			}
		}
	}
}

// EntityIterator yields the entities of codimension codim in index order
func (g *Grid) EntityIterator(codim int) (seq iter.Seq[Entity], err error) {
	var n int
	if n, err = g.EntityCount(codim); err != nil {
		return
	}
	c := types.Codim(codim)
	seq = func(yield func(Entity) bool) {
		for i := 0; i < n; i++ {
			if !yield(g.entity(c, i)) {
				return
			}
		}
	}
	return
}

func (g *Grid) entity(c types.Codim, i int) Entity {
	switch c {
	case types.CodimElement:
		return Element{grid: g, index: i}
	case types.CodimEdge:
		return Edge{grid: g, index: i}
	default:
		return Vertex{grid: g, index: i}
	}
}

func (el Element) Index() int         { return el.index }
func (el Element) Codim() types.Codim { return types.CodimElement }
func (el Element) Grid() *Grid        { return el.grid }
func (el Element) DomainIndex() int   { return int(el.grid.input.domainIndices[el.index]) }

func (el Element) Geometry() ElementGeometry { return ElementGeometry{grid: el.grid, index: el.index} }

/*
SubEntities returns the edges (codim 1) in local edge order or the vertices (codim 2) in local vertex order
of the element.
*/
func (el Element) SubEntities(codim int) (ents []Entity, err error) {
	switch codim {
	case int(types.CodimEdge):
		for _, e := range el.grid.elementEdges[el.index] {
			ents = append(ents, Edge{grid: el.grid, index: e})
		}
	case int(types.CodimVertex):
		for _, v := range el.grid.input.tri(el.index) {
			ents = append(ents, Vertex{grid: el.grid, index: int(v)})
		}
	default:
		err = invalidArgument("SubEntities", "codim %d is not a sub entity of an element", codim)
	}
	return
}

// Neighbors returns the elements sharing at least one vertex with el, ascending
func (el Element) Neighbors() (nbrs []Element) {
	for _, k := range el.grid.elementNeighbors[el.index] {
		nbrs = append(nbrs, Element{grid: el.grid, index: k})
	}
	return
}

func (ed Edge) Index() int         { return ed.index }
func (ed Edge) Codim() types.Codim { return types.CodimEdge }
func (ed Edge) Grid() *Grid        { return ed.grid }
func (ed Edge) OnBoundary() bool   { return ed.grid.edgeOnBoundary[ed.index] }

func (ed Edge) Vertices() [2]Vertex {
	ev := ed.grid.edges[ed.index]
	return [2]Vertex{{grid: ed.grid, index: int(ev[0])}, {grid: ed.grid, index: int(ev[1])}}
}

// Elements returns the elements containing the edge
func (ed Edge) Elements() (els []Element) {
	for _, k := range ed.grid.edgeNeighbors[ed.index] {
		els = append(els, Element{grid: ed.grid, index: k})
	}
	return
}

func (ed Edge) Geometry() EdgeGeometry {
	ev := ed.grid.edges[ed.index]
	return EdgeGeometry{Corners: [2]r3.Vec{
		vertexAt(ed.grid.input.vertices, ev[0]),
		vertexAt(ed.grid.input.vertices, ev[1]),
	}}
}

func (vx Vertex) Index() int         { return vx.index }
func (vx Vertex) Codim() types.Codim { return types.CodimVertex }
func (vx Vertex) Grid() *Grid        { return vx.grid }
func (vx Vertex) OnBoundary() bool   { return vx.grid.vertexOnBoundary[vx.index] }

func (vx Vertex) Geometry() VertexGeometry {
	return VertexGeometry{Corners: vertexAt(vx.grid.input.vertices, uint32(vx.index))}
}

// ElementGeometry reads the precomputed geometry of one element
type ElementGeometry struct {
	grid  *Grid
	index int
}

func (eg ElementGeometry) Corners() (c [3]r3.Vec) {
	for i, v := range eg.grid.input.tri(eg.index) {
		c[i] = vertexAt(eg.grid.input.vertices, v)
	}
	return
}

func (eg ElementGeometry) Jacobian() *mat.Dense { return eg.grid.Jacobian(eg.index) }

func (eg ElementGeometry) JacobianInverseTransposed() *mat.Dense {
	return eg.grid.JacobianInverseTransposed(eg.index)
}

func (eg ElementGeometry) Normal() r3.Vec    { return eg.grid.geometry.normals[eg.index] }
func (eg ElementGeometry) Volume() float64   { return eg.grid.geometry.volumes[eg.index] }
func (eg ElementGeometry) Diameter() float64 { return eg.grid.geometry.diameters[eg.index] }
func (eg ElementGeometry) Centroid() r3.Vec  { return eg.grid.geometry.centroids[eg.index] }

func (eg ElementGeometry) IntegrationElement() float64 {
	return eg.grid.geometry.integrationElements[eg.index]
}

/*
Local2Global maps reference coordinates to physical points. points is 2 x N, one reference point (s,t) per
column, the result is 3 x N with column n equal to c0 + J * points[:,n].
*/
func (eg ElementGeometry) Local2Global(points mat.Matrix) (global *mat.Dense, err error) {
	r, _ := points.Dims()
	if r != 2 {
		err = invalidArgument("Local2Global", "reference points must have 2 rows, have %d", r)
		return
	}
	global = &mat.Dense{}
	global.Mul(eg.Jacobian(), points)
	c0 := eg.Corners()[0]
	global.Apply(func(i, j int, v float64) float64 {
		return v + component(c0, i)
	}, global)
	return
}

type EdgeGeometry struct {
	Corners [2]r3.Vec
}

// Volume of an edge is its length
func (eg EdgeGeometry) Volume() float64 { return r3.Norm(r3.Sub(eg.Corners[1], eg.Corners[0])) }

type VertexGeometry struct {
	Corners r3.Vec
}
