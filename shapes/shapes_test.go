package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/grid"
)

// checkClosed verifies a closed, outward oriented surface
func checkClosed(t *testing.T, g *grid.Grid) {
	assert.Equal(t, 2, g.NumberOfVertices()-g.NumberOfEdges()+g.NumberOfElements())
	for e, nbrs := range g.EdgeNeighbors() {
		assert.Len(t, nbrs, 2, "edge %d", e)
	}
	var (
		box    = g.BoundingBox()
		center = r3.Vec{
			X: (box[0][0] + box[0][1]) / 2,
			Y: (box[1][0] + box[1][1]) / 2,
			Z: (box[2][0] + box[2][1]) / 2,
		}
	)
	for k, n := range g.Normals() {
		assert.Greater(t, r3.Dot(n, r3.Sub(g.Centroids()[k], center)), 0., "element %d", k)
	}
}

func TestPolyhedra(t *testing.T) {
	{
		g, err := Tetrahedron()
		require.NoError(t, err)
		assert.Equal(t, 4, g.NumberOfElements())
		assert.Equal(t, 6, g.NumberOfEdges())
		assert.Equal(t, 2, g.NumberOfVertices()-g.NumberOfEdges()+g.NumberOfElements())
	}
	{
		g, err := Cube()
		require.NoError(t, err)
		assert.Equal(t, 8, g.NumberOfVertices())
		assert.Equal(t, 18, g.NumberOfEdges())
		assert.Equal(t, 12, g.NumberOfElements())
		assert.InDelta(t, 6., g.SurfaceArea(), 1.e-14)
		assert.Equal(t, []uint32{0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, g.DomainIndices())
		checkClosed(t, g)
	}
}

func TestRegularSphere(t *testing.T) {
	var prevErr float64
	for level := 0; level < 4; level++ {
		g, err := RegularSphere(level)
		require.NoError(t, err)
		K := 20 * int(math.Pow(4, float64(level)))
		assert.Equal(t, K, g.NumberOfElements())
		checkClosed(t, g)
		for n := 0; n < len(g.Vertices()); n += 3 {
			vs := g.Vertices()
			assert.InDelta(t, 1., math.Sqrt(vs[n]*vs[n]+vs[n+1]*vs[n+1]+vs[n+2]*vs[n+2]), 1.e-14)
		}
		areaErr := 4*math.Pi - g.SurfaceArea()
		assert.Greater(t, areaErr, 0.)
		if level > 0 {
			assert.Less(t, areaErr, prevErr)
		}
		prevErr = areaErr
	}
	_, err := RegularSphere(-1)
	assert.Error(t, err)
}

func TestPlanarPatch(t *testing.T) {
	{ // Regular octagon with three interior points, no three hull points collinear
		var points [][2]float64
		for n := 0; n < 8; n++ {
			theta := float64(n) * math.Pi / 4
			points = append(points, [2]float64{math.Cos(theta), math.Sin(theta)})
		}
		points = append(points, [2]float64{0.1, 0.2}, [2]float64{-0.3, -0.1}, [2]float64{0.25, -0.35})
		g, err := PlanarPatch(points)
		require.NoError(t, err)
		assert.Equal(t, 11, g.NumberOfVertices())
		for _, n := range g.Normals() {
			assert.InDelta(t, 1., n.Z, 1.e-15)
		}
		// Delaunay of n points with h on the hull has 2n-h-2 triangles
		assert.Equal(t, 2*11-8-2, g.NumberOfElements())
		assert.InDelta(t, 2*math.Sqrt2, g.SurfaceArea(), 1.e-12)
	}
	{ // Sheared lattice, the hull sides carry collinear points
		var points [][2]float64
		for j := 0; j < 4; j++ {
			for i := 0; i < 4; i++ {
				points = append(points, [2]float64{float64(i) + 0.01*float64(j), float64(j)})
			}
		}
		g, err := PlanarPatch(points)
		require.NoError(t, err)
		for k, n := range g.Normals() {
			assert.InDelta(t, 1., n.Z, 1.e-15)
			assert.Greater(t, g.Volumes()[k], 1.e-6)
		}
		assert.InDelta(t, 9., g.SurfaceArea(), 1.e-9)
	}
	{ // Too few points
		_, err := PlanarPatch([][2]float64{{0, 0}, {1, 0}})
		assert.Error(t, err)
	}
}
