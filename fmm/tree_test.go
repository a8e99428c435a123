package fmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobem/shapes"
)

type box struct {
	bb   [3][2]float64
	hmax float64
}

func (b box) BoundingBox() [3][2]float64      { return b.bb }
func (b box) MaximumElementDiameter() float64 { return b.hmax }

func TestNewTreeParameters(t *testing.T) {
	{ // Merged box of two disjoint grids
		a := box{bb: [3][2]float64{{0, 1}, {0, 1}, {0, 1}}, hmax: 0.01}
		b := box{bb: [3][2]float64{{3, 4}, {-1, 0}, {0, 0.5}}, hmax: 0.05}
		tp, err := NewTreeParameters(a, b, DefaultOptions())
		require.NoError(t, err)
		assert.InDelta(t, 2., tp.Center.X, 1.e-15)
		assert.InDelta(t, 0., tp.Center.Y, 1.e-15)
		assert.InDelta(t, 0.5, tp.Center.Z, 1.e-15)
		assert.InDelta(t, 2*1.00001, tp.Radius, 1.e-15)
		assert.Equal(t, int(math.Log2(4*1.00001)-math.Log2(0.05)), tp.MaxLevel)
		assert.Equal(t, 6, tp.MaxLevel)
		assert.Equal(t, 10, tp.ExpansionOrder)
		assert.Equal(t, 100, tp.NCritical)
		assert.InDelta(t, 4*1.00001/64, tp.LeafWidth(), 1.e-15)
	}
	{ // Explicit level
		a := box{bb: [3][2]float64{{0, 1}, {0, 1}, {0, 1}}, hmax: 0.01}
		opts := DefaultOptions()
		opts.MaxLevel = 3
		tp, err := NewTreeParameters(a, a, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, tp.MaxLevel)
		assert.Contains(t, tp.String(), "levels 3")
	}
	{ // Elements larger than the domain
		a := box{bb: [3][2]float64{{0, 1}, {0, 1}, {0, 1}}, hmax: 10}
		_, err := NewTreeParameters(a, a, DefaultOptions())
		assert.Error(t, err)
	}
	{ // Bad options
		a := box{bb: [3][2]float64{{0, 1}, {0, 1}, {0, 1}}, hmax: 0.1}
		_, err := NewTreeParameters(a, a, Options{ExpansionOrder: 0, NCritical: 10, MaxLevel: -1})
		assert.Error(t, err)
		_, err = NewTreeParameters(a, a, Options{ExpansionOrder: 5, NCritical: 0, MaxLevel: -1})
		assert.Error(t, err)
	}
	{ // Grids satisfy the sizing interface
		g, err := shapes.RegularSphere(2)
		require.NoError(t, err)
		tp, err := NewTreeParameters(g, g, DefaultOptions())
		require.NoError(t, err)
		assert.InDelta(t, 0., tp.Center.X, 1.e-14)
		assert.GreaterOrEqual(t, tp.MaxLevel, 2)
		assert.LessOrEqual(t, tp.LeafWidth(), 2*g.MaximumElementDiameter())
	}
}
