/*
Package grid builds the topology and geometry of a triangulated surface.

A Grid is constructed once from vertex coordinates and triangle connectivity. Construction deduplicates edges,
classifies element adjacency, computes element geometry, flags the boundary and indexes neighbors, then the
Grid is never modified. All slices returned by accessors are owned by the Grid and must be treated as read
only; concurrent readers are safe.
*/
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/types"
)

type Grid struct {
	*input
	*edgeTable
	*adjacency
	*geometry

	elementNeighbors [][]int
	edgeOnBoundary   []bool
	vertexOnBoundary []bool

	deviceInterfaces *DeviceCache
}

/*
New builds a grid. vertices holds 3 coordinates per vertex, elements 3 vertex indices per triangle and
domainIndices one tag per element, or nil for all zero tags. The input slices are copied.

Construction fails with an *InvalidArgumentError for malformed input, a *DegenerateElementError for a
repeated vertex or a zero area element and a *ConsistencyError for non-conforming connectivity. No partially
built grid is ever returned.
*/
func New(vertices []float64, elements []uint32, domainIndices []uint32) (g *Grid, err error) {
	var (
		in     *input
		et     *edgeTable
		adj    *adjacency
		geo    *geometry
		counts [][]sharedCount
	)
	if in, err = normalizeInput(vertices, elements, domainIndices); err != nil {
		return
	}
	if et, err = enumerateEdges(in); err != nil {
		return
	}
	counts = countSharedVertices(in)
	if adj, err = classifyAdjacency(in, counts); err != nil {
		return
	}
	if geo, err = computeGeometry(in); err != nil {
		return
	}
	gr := &Grid{
		input:            in,
		edgeTable:        et,
		adjacency:        adj,
		geometry:         geo,
		elementNeighbors: elementNeighbors(counts),
		deviceInterfaces: NewDeviceCache(),
	}
	if gr.edgeOnBoundary, gr.vertexOnBoundary, err = classifyBoundary(in.numberOfVertices(), et); err != nil {
		return
	}
	log.Debug("grid constructed", "vertices", gr.NumberOfVertices(), "edges", gr.NumberOfEdges(),
		"elements", gr.NumberOfElements(), "edgeAdjacencies", len(adj.edge),
		"vertexAdjacencies", len(adj.vertex))
	g = gr
	return
}

func (g *Grid) NumberOfVertices() int { return g.input.numberOfVertices() }
func (g *Grid) NumberOfEdges() int    { return len(g.edges) }
func (g *Grid) NumberOfElements() int { return g.input.numberOfElements() }

// EntityCount returns the number of elements (codim 0), edges (codim 1) or vertices (codim 2)
func (g *Grid) EntityCount(codim int) (n int, err error) {
	var c types.Codim
	if c, err = types.NewCodim(codim); err != nil {
		err = invalidArgument("EntityCount", "%v", err)
		return
	}
	switch c {
	case types.CodimElement:
		n = g.NumberOfElements()
	case types.CodimEdge:
		n = g.NumberOfEdges()
	case types.CodimVertex:
		n = g.NumberOfVertices()
	}
	return
}

// Vertices returns the coordinates, 3 per vertex
func (g *Grid) Vertices() []float64 { return g.input.vertices }

func (g *Grid) VertexCoordinates(v int) r3.Vec { return vertexAt(g.input.vertices, uint32(v)) }

// Connectivity returns the vertex indices, 3 per element
func (g *Grid) Connectivity() []uint32 { return g.input.elements }

func (g *Grid) ElementVertices(k int) [3]uint32 { return g.input.tri(k) }

func (g *Grid) DomainIndices() []uint32 { return g.input.domainIndices }

// Edges returns the vertex pair of each edge, smallest vertex index first
func (g *Grid) Edges() [][2]uint32 { return g.edges }

/*
ElementEdges returns for each element the global index of its three local edges. Local edge 0 joins local
vertices 0 and 1, local edge 1 joins 2 and 0, local edge 2 joins 1 and 2.
*/
func (g *Grid) ElementEdges() [][3]int { return g.elementEdges }

func (g *Grid) VertexAdjacency() []VertexAdjacency { return g.adjacency.vertex }
func (g *Grid) EdgeAdjacency() []EdgeAdjacency     { return g.adjacency.edge }

// ElementNeighbors lists for each element the other elements sharing at least one vertex, ascending
func (g *Grid) ElementNeighbors() [][]int { return g.elementNeighbors }

/*
EdgeNeighbors lists for each edge the elements referencing it. A list of length 1 is a boundary edge, 2 a
manifold interior edge and more than 2 a non-manifold edge.
*/
func (g *Grid) EdgeNeighbors() [][]int { return g.edgeNeighbors }

func (g *Grid) EdgeOnBoundary() []bool   { return g.edgeOnBoundary }
func (g *Grid) VertexOnBoundary() []bool { return g.vertexOnBoundary }

// NonManifoldEdges returns the edges referenced by more than two elements
func (g *Grid) NonManifoldEdges() (edges []int) {
	for e, nbrs := range g.edgeNeighbors {
		if len(nbrs) > 2 {
			edges = append(edges, e)
		}
	}
	return
}

func (g *Grid) Volumes() []float64             { return g.geometry.volumes }
func (g *Grid) Diameters() []float64           { return g.geometry.diameters }
func (g *Grid) IntegrationElements() []float64 { return g.geometry.integrationElements }
func (g *Grid) Normals() []r3.Vec              { return g.geometry.normals }
func (g *Grid) Centroids() []r3.Vec            { return g.geometry.centroids }

// Jacobians returns the 3x2 Jacobian of every element, 6 values per element in row major order
func (g *Grid) Jacobians() []float64 { return g.geometry.jacobians }

// JacobiansInverseTransposed returns J*Inverse(Transpose(J)*J) per element, same layout as Jacobians
func (g *Grid) JacobiansInverseTransposed() []float64 { return g.geometry.jacobianInverseTransposed }

// Jacobian returns a copy of the Jacobian of element k, the columns are c1-c0 and c2-c0
func (g *Grid) Jacobian(k int) *mat.Dense {
	return mat.NewDense(3, 2, append([]float64(nil), g.geometry.jacobians[6*k:6*k+6]...))
}

func (g *Grid) JacobianInverseTransposed(k int) *mat.Dense {
	return mat.NewDense(3, 2, append([]float64(nil), g.geometry.jacobianInverseTransposed[6*k:6*k+6]...))
}

func (g *Grid) MaximumElementDiameter() float64 { return floats.Max(g.geometry.diameters) }
func (g *Grid) MinimumElementDiameter() float64 { return floats.Min(g.geometry.diameters) }

// SurfaceArea is the sum of the element areas
func (g *Grid) SurfaceArea() float64 { return floats.Sum(g.geometry.volumes) }

/*
BoundingBox returns box such that box[i][0] is the minimum and box[i][1] the maximum of coordinate i over all
vertices.
*/
func (g *Grid) BoundingBox() (box [3][2]float64) {
	for i := 0; i < 3; i++ {
		box[i] = [2]float64{math.Inf(1), math.Inf(-1)}
	}
	vs := g.input.vertices
	for n := 0; n < len(vs); n += 3 {
		for i := 0; i < 3; i++ {
			box[i][0] = math.Min(box[i][0], vs[n+i])
			box[i][1] = math.Max(box[i][1], vs[n+i])
		}
	}
	return
}

/*
AsArray flattens the grid to 9 values per element: the coordinates of corner 0, corner 1 and corner 2 of
element k are at [9k, 9(k+1)).
*/
func (g *Grid) AsArray() (a []float64) {
	var (
		vs = g.input.vertices
		es = g.input.elements
	)
	a = make([]float64, 0, 3*len(es))
	for _, v := range es {
		a = append(a, vs[3*v], vs[3*v+1], vs[3*v+2])
	}
	return
}

// DeviceInterfaces is the cache of serialized device representations of this grid
func (g *Grid) DeviceInterfaces() *DeviceCache { return g.deviceInterfaces }

func (g *Grid) String() string {
	var (
		sb  strings.Builder
		box = g.BoundingBox()
	)
	boundaryEdges := 0
	for _, b := range g.edgeOnBoundary {
		if b {
			boundaryEdges++
		}
	}
	boundaryVertices := 0
	for _, b := range g.vertexOnBoundary {
		if b {
			boundaryVertices++
		}
	}
	sb.WriteString("=== Grid Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Number of vertices: %d\n", g.NumberOfVertices()))
	sb.WriteString(fmt.Sprintf("  Number of edges: %d\n", g.NumberOfEdges()))
	sb.WriteString(fmt.Sprintf("  Number of elements: %d\n", g.NumberOfElements()))
	sb.WriteString(fmt.Sprintf("  Boundary edges: %d, boundary vertices: %d\n", boundaryEdges, boundaryVertices))
	sb.WriteString(fmt.Sprintf("  Non-manifold edges: %d\n", len(g.NonManifoldEdges())))
	sb.WriteString(fmt.Sprintf("  Edge adjacencies: %d, vertex adjacencies: %d\n",
		len(g.adjacency.edge), len(g.adjacency.vertex)))
	sb.WriteString(fmt.Sprintf("  Bounding box: x [%.4f, %.4f], y [%.4f, %.4f], z [%.4f, %.4f]\n",
		box[0][0], box[0][1], box[1][0], box[1][1], box[2][0], box[2][1]))
	sb.WriteString(fmt.Sprintf("  Element diameter range: [%.4e, %.4e]\n",
		g.MinimumElementDiameter(), g.MaximumElementDiameter()))
	sb.WriteString(fmt.Sprintf("  Surface area: %.6f\n", g.SurfaceArea()))
	return sb.String()
}
