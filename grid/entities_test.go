package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/types"
)

func TestEntityIterators(t *testing.T) {
	g := tetrahedron(t)
	{ // Each codimension yields a fresh sequence in index order
		for codim, want := range []int{4, 6, 4} {
			seq, err := g.EntityIterator(codim)
			require.NoError(t, err)
			for pass := 0; pass < 2; pass++ {
				var n int
				for ent := range seq {
					assert.Equal(t, n, ent.Index())
					assert.Equal(t, types.Codim(codim), ent.Codim())
					assert.Equal(t, g, ent.Grid())
					n++
				}
				assert.Equal(t, want, n)
			}
		}
		_, err := g.EntityIterator(3)
		var iae *InvalidArgumentError
		assert.True(t, errors.As(err, &iae))
	}
	{ // Early exit
		var n int
		for range g.ElementIterator() {
			n++
			if n == 2 {
				break
			}
		}
		assert.Equal(t, 2, n)
	}
	{ // Handles compare by grid and index
		el, err := g.GetElement(2)
		require.NoError(t, err)
		var third Element
		for e := range g.ElementIterator() {
			if e.Index() == 2 {
				third = e
			}
		}
		assert.True(t, el == third)
		other := tetrahedron(t)
		el2, err := other.GetElement(2)
		require.NoError(t, err)
		assert.False(t, el == el2)
		_, err = g.GetElement(4)
		assert.Error(t, err)
		_, err = g.GetEdge(-1)
		assert.Error(t, err)
		_, err = g.GetVertex(4)
		assert.Error(t, err)
	}
}

func TestElementView(t *testing.T) {
	g := unitSquare(t)
	el, err := g.GetElement(1)
	require.NoError(t, err)
	assert.Equal(t, 7, el.DomainIndex())
	{ // Sub entities in local order
		edges, err := el.SubEntities(1)
		require.NoError(t, err)
		var idx []int
		for _, e := range edges {
			assert.Equal(t, types.CodimEdge, e.Codim())
			idx = append(idx, e.Index())
		}
		assert.Equal(t, []int{3, 2, 4}, idx)
		verts, err := el.SubEntities(2)
		require.NoError(t, err)
		idx = idx[:0]
		for _, v := range verts {
			idx = append(idx, v.Index())
		}
		assert.Equal(t, []int{1, 3, 2}, idx)
		_, err = el.SubEntities(0)
		assert.Error(t, err)
	}
	{ // Neighbors through shared edge
		nbrs := el.Neighbors()
		require.Len(t, nbrs, 1)
		assert.Equal(t, 0, nbrs[0].Index())
		ed, err := g.GetEdge(2)
		require.NoError(t, err)
		assert.False(t, ed.OnBoundary())
		assert.Len(t, ed.Elements(), 2)
		vs := ed.Vertices()
		assert.Equal(t, [2]int{1, 2}, [2]int{vs[0].Index(), vs[1].Index()})
		assert.InDelta(t, 1.4142135623730951, ed.Geometry().Volume(), 1.e-15)
		vx, err := g.GetVertex(3)
		require.NoError(t, err)
		assert.True(t, vx.OnBoundary())
		assert.Equal(t, r3.Vec{X: 1, Y: 1}, vx.Geometry().Corners)
	}
	{ // Geometry
		geo := el.Geometry()
		assert.Equal(t, [3]r3.Vec{{X: 1}, {X: 1, Y: 1}, {Y: 1}}, geo.Corners())
		assert.InDelta(t, 0.5, geo.Volume(), 1.e-15)
		assert.InDelta(t, 1., geo.IntegrationElement(), 1.e-15)
		assert.Equal(t, r3.Vec{Z: 1}, geo.Normal())
		assert.InDelta(t, 2./3., geo.Centroid().X, 1.e-15)
		assert.InDelta(t, 2./3., geo.Centroid().Y, 1.e-15)
		assert.InDelta(t, 1.4142135623730951, geo.Diameter(), 1.e-15)
		assert.True(t, mat.Equal(g.Jacobian(1), geo.Jacobian()))
		assert.True(t, mat.Equal(g.JacobianInverseTransposed(1), geo.JacobianInverseTransposed()))
	}
	{ // Reference corners and midpoint map to physical points
		ref := mat.NewDense(2, 4, []float64{
			0, 1, 0, 1. / 3.,
			0, 0, 1, 1. / 3.,
		})
		global, err := el.Geometry().Local2Global(ref)
		require.NoError(t, err)
		want := mat.NewDense(3, 4, []float64{
			1, 1, 0, 2. / 3.,
			0, 1, 1, 2. / 3.,
			0, 0, 0, 0,
		})
		assert.True(t, mat.EqualApprox(want, global, 1.e-15))
		_, err = el.Geometry().Local2Global(mat.NewDense(3, 1, nil))
		assert.Error(t, err)
	}
}
