/*
Package spatial answers point location queries against the elements of a grid.
*/
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/grid"
)

// ElementLocator finds elements by centroid proximity using a k-d tree built once per grid
type ElementLocator struct {
	tree *kdtree.Tree
	g    *grid.Grid
}

func NewElementLocator(g *grid.Grid) *ElementLocator {
	cs := make(centroids, g.NumberOfElements())
	for k, c := range g.Centroids() {
		cs[k] = centroid{Vec: c, element: k}
	}
	return &ElementLocator{tree: kdtree.New(cs, true), g: g}
}

/*
Nearest returns the element whose centroid is closest to p and the distance between them. Among equidistant
centroids the lowest element index wins.
*/
func (el *ElementLocator) Nearest(p r3.Vec) (element int, dist float64) {
	q := &centroid{Vec: p}
	c, dist2 := el.tree.Nearest(q)
	element = c.(*centroid).element
	keep := kdtree.NewDistKeeper(dist2)
	el.tree.NearestSet(keep, q)
	for _, cd := range keep.Heap {
		if cd.Comparable == nil || cd.Dist > dist2 {
			continue
		}
		if k := cd.Comparable.(*centroid).element; k < element {
			element = k
		}
	}
	return element, math.Sqrt(dist2)
}

// KNearest returns up to k elements ordered by increasing centroid distance from p
func (el *ElementLocator) KNearest(p r3.Vec, k int) (elements []int, dists []float64) {
	if k <= 0 {
		return
	}
	keep := kdtree.NewNKeeper(k)
	el.tree.NearestSet(keep, &centroid{Vec: p})
	found := make([]kdtree.ComparableDist, 0, len(keep.Heap))
	for _, cd := range keep.Heap {
		if cd.Comparable != nil {
			found = append(found, cd)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Dist == found[j].Dist {
			return found[i].Comparable.(*centroid).element < found[j].Comparable.(*centroid).element
		}
		return found[i].Dist < found[j].Dist
	})
	for _, cd := range found {
		elements = append(elements, cd.Comparable.(*centroid).element)
		dists = append(dists, math.Sqrt(cd.Dist))
	}
	return
}

/*
Within returns the elements with a centroid inside the ball of radius r around p, ascending by element index.
*/
func (el *ElementLocator) Within(p r3.Vec, r float64) (elements []int) {
	keep := kdtree.NewDistKeeper(r * r)
	el.tree.NearestSet(keep, &centroid{Vec: p})
	for _, cd := range keep.Heap {
		if cd.Comparable != nil {
			elements = append(elements, cd.Comparable.(*centroid).element)
		}
	}
	sort.Ints(elements)
	return
}

// Grid is the grid the locator indexes
func (el *ElementLocator) Grid() *grid.Grid { return el.g }

type centroid struct {
	r3.Vec
	element int
}

func (c *centroid) Compare(other kdtree.Comparable, d kdtree.Dim) float64 {
	o := other.(*centroid)
	switch d {
	case 0:
		return c.X - o.X
	case 1:
		return c.Y - o.Y
	default:
		return c.Z - o.Z
	}
}

func (c *centroid) Dims() int { return 3 }

// Distance is the squared euclidean distance
func (c *centroid) Distance(other kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(c.Vec, other.(*centroid).Vec))
}

type centroids []centroid

func (cs centroids) Index(i int) kdtree.Comparable { return &cs[i] }
func (cs centroids) Len() int                      { return len(cs) }

func (cs centroids) Pivot(d kdtree.Dim) int {
	p := plane{dim: d, centroids: cs}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (cs centroids) Slice(start, end int) kdtree.Interface { return cs[start:end] }

func (cs centroids) Bounds() *kdtree.Bounding {
	lo := centroid{Vec: r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}}
	hi := centroid{Vec: r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}}
	for _, c := range cs {
		lo.Vec = r3.Vec{X: math.Min(lo.X, c.X), Y: math.Min(lo.Y, c.Y), Z: math.Min(lo.Z, c.Z)}
		hi.Vec = r3.Vec{X: math.Max(hi.X, c.X), Y: math.Max(hi.Y, c.Y), Z: math.Max(hi.Z, c.Z)}
	}
	return &kdtree.Bounding{Min: &lo, Max: &hi}
}

// plane orders centroids along one dimension for median partitioning
type plane struct {
	dim       kdtree.Dim
	centroids centroids
}

func (p plane) Less(i, j int) bool {
	return p.centroids[i].Compare(&p.centroids[j], p.dim) < 0
}
func (p plane) Swap(i, j int) {
	p.centroids[i], p.centroids[j] = p.centroids[j], p.centroids[i]
}
func (p plane) Len() int { return len(p.centroids) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.centroids = p.centroids[start:end]
	return p
}
