package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/grid"
	"github.com/notargets/gobem/shapes"
)

func TestElementLocator(t *testing.T) {
	g, err := shapes.RegularSphere(2)
	require.NoError(t, err)
	loc := NewElementLocator(g)
	assert.Equal(t, g, loc.Grid())
	{ // Every centroid locates its own element
		for k, c := range g.Centroids() {
			element, dist := loc.Nearest(c)
			assert.Equal(t, k, element)
			assert.Equal(t, 0., dist)
		}
	}
	{ // Agrees with a brute force search
		for _, p := range []r3.Vec{{X: 2}, {Y: -0.3, Z: 0.9}, {X: 0.1, Y: 0.2, Z: 0.3}} {
			var (
				best     int
				bestDist = math.Inf(1)
			)
			for k, c := range g.Centroids() {
				if d := r3.Norm2(r3.Sub(p, c)); d < bestDist {
					best, bestDist = k, d
				}
			}
			element, dist := loc.Nearest(p)
			assert.Equal(t, best, element)
			assert.InDelta(t, math.Sqrt(bestDist), dist, 1.e-14)
		}
	}
	{ // Equidistant centroids resolve to the lowest element index
		sq, err := grid.NewFromTriangles(
			[][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			[][3]int{{0, 1, 2}, {0, 2, 3}},
			nil)
		require.NoError(t, err)
		sqLoc := NewElementLocator(sq)
		c := sq.Centroids()
		for _, p := range []r3.Vec{{X: 0.5, Y: 0.5}, {X: 0, Y: 0, Z: 2}, {X: 1, Y: 1, Z: -1}} {
			require.Equal(t, r3.Norm2(r3.Sub(p, c[0])), r3.Norm2(r3.Sub(p, c[1])))
			element, dist := sqLoc.Nearest(p)
			assert.Equal(t, 0, element)
			assert.InDelta(t, r3.Norm(r3.Sub(p, c[0])), dist, 1.e-14)
		}
	}
	{ // k nearest are sorted by distance and start with the nearest
		p := r3.Vec{X: 0.3, Y: -0.5, Z: 0.8}
		nearest, _ := loc.Nearest(p)
		elements, dists := loc.KNearest(p, 5)
		require.Len(t, elements, 5)
		assert.Equal(t, nearest, elements[0])
		for i := 1; i < len(dists); i++ {
			assert.LessOrEqual(t, dists[i-1], dists[i])
		}
		all, _ := loc.KNearest(p, 10*g.NumberOfElements())
		assert.Len(t, all, g.NumberOfElements())
		none, _ := loc.KNearest(p, 0)
		assert.Empty(t, none)
	}
	{ // Ball query
		assert.Len(t, loc.Within(r3.Vec{}, 1), g.NumberOfElements())
		assert.Empty(t, loc.Within(r3.Vec{X: 5}, 1))
		c := g.Centroids()[7]
		assert.Contains(t, loc.Within(c, 1.e-9), 7)
	}
}
