package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/utils"
)

/*
degeneracyTol bounds the squared sine of the corner angle at vertex 0: an element is degenerate when
|j0 x j1|^2 <= degeneracyTol * |j0|^2 * |j1|^2
*/
const degeneracyTol = 1.e-28

type geometry struct {
	jacobians                 []float64 // 6 per element, 3x2 row major
	jacobianInverseTransposed []float64 // 6 per element, 3x2 row major
	normals                   []r3.Vec
	volumes                   []float64
	diameters                 []float64
	integrationElements       []float64
	centroids                 []r3.Vec
}

func newGeometry(K int) *geometry {
	return &geometry{
		jacobians:                 make([]float64, 6*K),
		jacobianInverseTransposed: make([]float64, 6*K),
		normals:                   make([]r3.Vec, K),
		volumes:                   make([]float64, K),
		diameters:                 make([]float64, K),
		integrationElements:       make([]float64, K),
		centroids:                 make([]r3.Vec, K),
	}
}

func vertexAt(vertices []float64, v uint32) r3.Vec {
	return r3.Vec{X: vertices[3*v], Y: vertices[3*v+1], Z: vertices[3*v+2]}
}

func component(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

/*
computeGeometry evaluates the per element quantities. Elements are independent, each partition of the
element range is computed in its own goroutine and writes only its own slots.
*/
func computeGeometry(in *input) (geo *geometry, err error) {
	var (
		K  = in.numberOfElements()
		pm = utils.NewCPUPartitionMap(K)
	)
	geo = newGeometry(K)
	err = pm.ParallelFor(func(bn, kMin, kMax int) error {
		for k := kMin; k < kMax; k++ {
			if err := geo.computeElement(in, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var de *DegenerateElementError
		if errors.As(err, &de) {
			bn := pm.Partition(de.Element)
			kMin, kMax := pm.GetBucketRange(bn)
			log.Debug("degenerate element", "element", de.Element, "partition", bn,
				"range", fmt.Sprintf("[%d,%d)", kMin, kMax))
		}
		geo = nil
	}
	return
}

func (geo *geometry) computeElement(in *input, k int) (err error) {
	var (
		tri        = in.tri(k)
		c0, c1, c2 = vertexAt(in.vertices, tri[0]), vertexAt(in.vertices, tri[1]), vertexAt(in.vertices, tri[2])
		j0, j1     = r3.Sub(c1, c0), r3.Sub(c2, c0)
		n          = r3.Cross(j0, j1)
		nNorm      = r3.Norm(n)
		g00        = r3.Dot(j0, j0)
		g01        = r3.Dot(j0, j1)
		g11        = r3.Dot(j1, j1)
	)
	if !(nNorm*nNorm > degeneracyTol*g00*g11) {
		return &DegenerateElementError{Element: k, Reason: "zero area"}
	}
	// Gram matrix Transpose(J)*J and its closed form inverse
	det := g00*g11 - g01*g01
	if !(det > 0) {
		return &DegenerateElementError{Element: k, Reason: "singular Gram matrix"}
	}
	var (
		inv00, inv01, inv11 = g11 / det, -g01 / det, g00 / det
		jac                 = geo.jacobians[6*k : 6*k+6]
		jit                 = geo.jacobianInverseTransposed[6*k : 6*k+6]
	)
	for r := 0; r < 3; r++ {
		a, b := component(j0, r), component(j1, r)
		jac[2*r], jac[2*r+1] = a, b
		jit[2*r] = a*inv00 + b*inv01
		jit[2*r+1] = a*inv01 + b*inv11
	}
	geo.normals[k] = r3.Scale(1./nNorm, n)
	geo.volumes[k] = 0.5 * nNorm
	geo.integrationElements[k] = math.Sqrt(det)
	geo.diameters[k] = math.Sqrt(g00) * math.Sqrt(g11) * r3.Norm(r3.Sub(j0, j1)) / nNorm
	geo.centroids[k] = r3.Scale(1./3., r3.Add(r3.Add(c0, c1), c2))
	return
}
