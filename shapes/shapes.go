/*
Package shapes builds reference surface grids: closed polyhedra, refined spheres and triangulated planar
patches. All closed shapes are oriented with outward normals.
*/
package shapes

import (
	"fmt"
	"math"

	"github.com/pradeep-pyro/triangle"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/grid"
)

// Tetrahedron is the surface of the corner tetrahedron with vertices at the origin and the unit points
func Tetrahedron() (g *grid.Grid, err error) {
	return grid.NewFromTriangles(
		[][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
		nil)
}

/*
Cube is the surface of the unit cube [0,1]^3, two triangles per face. Each face carries its own domain index:
0 z=0, 1 z=1, 2 y=0, 3 y=1, 4 x=0, 5 x=1.
*/
func Cube() (g *grid.Grid, err error) {
	// Vertex n sits at (n&1, (n>>1)&1, (n>>2)&1)
	var vertices [][3]float64
	for n := 0; n < 8; n++ {
		vertices = append(vertices, [3]float64{float64(n & 1), float64((n >> 1) & 1), float64((n >> 2) & 1)})
	}
	return grid.NewFromTriangles(vertices,
		[][3]int{
			{0, 2, 1}, {1, 2, 3},
			{4, 5, 6}, {5, 7, 6},
			{0, 1, 5}, {0, 5, 4},
			{2, 6, 7}, {2, 7, 3},
			{0, 4, 6}, {0, 6, 2},
			{1, 3, 7}, {1, 7, 5},
		},
		[]int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5})
}

func icosahedron() (vertices []float64, elements []uint32) {
	t := (1 + math.Sqrt(5)) / 2
	corners := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for _, c := range corners {
		c = r3.Unit(c)
		vertices = append(vertices, c.X, c.Y, c.Z)
	}
	elements = []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return
}

/*
RegularSphere approximates the unit sphere starting from an inscribed icosahedron. Each level refines every
element into four and projects the new vertices onto the sphere, level n has 20*4^n elements.
*/
func RegularSphere(level int) (g *grid.Grid, err error) {
	if level < 0 {
		err = fmt.Errorf("sphere refinement level must be non negative, have %d", level)
		return
	}
	vertices, elements := icosahedron()
	if g, err = grid.New(vertices, elements, nil); err != nil {
		return
	}
	for n := 0; n < level; n++ {
		var rg *grid.Grid
		if rg, err = g.Refine(); err != nil {
			return nil, err
		}
		if g, err = grid.New(projectToSphere(rg.Vertices()), rg.Connectivity(), rg.DomainIndices()); err != nil {
			return nil, err
		}
	}
	return
}

func projectToSphere(vertices []float64) (projected []float64) {
	projected = make([]float64, len(vertices))
	for n := 0; n < len(vertices); n += 3 {
		p := r3.Unit(r3.Vec{X: vertices[n], Y: vertices[n+1], Z: vertices[n+2]})
		projected[n], projected[n+1], projected[n+2] = p.X, p.Y, p.Z
	}
	return
}

/*
PlanarPatch is the Delaunay triangulation of a set of points in the z=0 plane. Elements are oriented so their
normals point along +z. Zero area triangles spanning collinear hull points are dropped.
*/
func PlanarPatch(points [][2]float64) (g *grid.Grid, err error) {
	if len(points) < 3 {
		err = fmt.Errorf("a planar patch needs at least 3 points, have %d", len(points))
		return
	}
	tris := triangle.Delaunay(points)
	if len(tris) == 0 {
		err = fmt.Errorf("triangulation of %d points produced no elements", len(points))
		return
	}
	var (
		vertices = make([]float64, 0, 3*len(points))
		elements = make([]uint32, 0, 3*len(tris))
	)
	for _, p := range points {
		vertices = append(vertices, p[0], p[1], 0)
	}
	for _, tri := range tris {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		orient := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if isSliver(orient, a, b, c) {
			continue
		}
		if orient < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		elements = append(elements, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
	}
	if len(elements) == 0 {
		err = fmt.Errorf("all %d points are collinear", len(points))
		return
	}
	return grid.New(vertices, elements, nil)
}

// sliverTol bounds the squared sine of a sliver's corner angle, looser than the bound grid.New enforces
const sliverTol = 1.e-20

/*
isSliver is true for the zero area triangles the triangulation leaves along collinear hull points, using the
squared sine of the corner angle at a.
*/
func isSliver(orient float64, a, b, c [2]float64) bool {
	var (
		ab = (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
		ac = (c[0]-a[0])*(c[0]-a[0]) + (c[1]-a[1])*(c[1]-a[1])
	)
	return orient*orient <= sliverTol*ab*ac
}
