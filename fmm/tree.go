/*
Package fmm sizes the octree of a fast multipole evaluation from the grids it couples.
*/
package fmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry is what the octree sizing reads from a grid
type Geometry interface {
	BoundingBox() [3][2]float64
	MaximumElementDiameter() float64
}

const radiusInflation = 1.00001

type Options struct {
	ExpansionOrder int
	NCritical      int // Maximum number of points in a leaf
	MaxLevel       int // Negative selects the level from the element size
}

func DefaultOptions() Options {
	return Options{
		ExpansionOrder: 10,
		NCritical:      100,
		MaxLevel:       -1,
	}
}

type TreeParameters struct {
	Center         r3.Vec
	Radius         float64
	MaxLevel       int
	ExpansionOrder int
	NCritical      int
}

/*
NewTreeParameters encloses the merged bounding box of domain and target in a cube centered on the box, with
half width slightly above the largest half extent. Unless opts fixes it, the deepest level is the one where
a cell is about the size of the largest element in either grid.
*/
func NewTreeParameters(domain, target Geometry, opts Options) (tp TreeParameters, err error) {
	var (
		db, tb = domain.BoundingBox(), target.BoundingBox()
		merged [3][2]float64
		hmax   = math.Max(domain.MaximumElementDiameter(), target.MaximumElementDiameter())
	)
	if opts.ExpansionOrder <= 0 {
		err = fmt.Errorf("expansion order must be positive, have %d", opts.ExpansionOrder)
		return
	}
	if opts.NCritical <= 0 {
		err = fmt.Errorf("leaf size must be positive, have %d", opts.NCritical)
		return
	}
	for i := 0; i < 3; i++ {
		merged[i] = [2]float64{math.Min(db[i][0], tb[i][0]), math.Max(db[i][1], tb[i][1])}
	}
	center := [3]float64{}
	var radius float64
	for i := 0; i < 3; i++ {
		center[i] = (merged[i][0] + merged[i][1]) / 2
		radius = math.Max(radius, math.Max(center[i]-merged[i][0], merged[i][1]-center[i]))
	}
	radius *= radiusInflation
	maxLevel := opts.MaxLevel
	if maxLevel < 0 {
		maxLevel = int(math.Log2(2*radius) - math.Log2(hmax))
	}
	if maxLevel < 0 {
		err = fmt.Errorf("could not determine maximum level: radius %g, maximum element diameter %g",
			radius, hmax)
		return
	}
	tp = TreeParameters{
		Center:         r3.Vec{X: center[0], Y: center[1], Z: center[2]},
		Radius:         radius,
		MaxLevel:       maxLevel,
		ExpansionOrder: opts.ExpansionOrder,
		NCritical:      opts.NCritical,
	}
	return
}

// LeafWidth is the edge length of a cell at the deepest level
func (tp TreeParameters) LeafWidth() float64 {
	return 2 * tp.Radius / math.Pow(2, float64(tp.MaxLevel))
}

func (tp TreeParameters) String() string {
	return fmt.Sprintf("center (%.4g, %.4g, %.4g), radius %.6g, levels %d, expansion order %d, ncrit %d",
		tp.Center.X, tp.Center.Y, tp.Center.Z, tp.Radius, tp.MaxLevel, tp.ExpansionOrder, tp.NCritical)
}
