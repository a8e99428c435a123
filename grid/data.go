package grid

import (
	"gonum.org/v1/gonum/spatial/r3"
)

/*
GridData packs the arrays numerical kernels read per element, without the topology. The slices alias the
grid's storage.
*/
type GridData struct {
	Vertices            []float64 // 3 per vertex
	Elements            []uint32  // 3 per element
	Volumes             []float64
	Normals             []r3.Vec
	Jacobians           []float64 // 6 per element, 3x2 row major
	JacInvTrans         []float64 // 6 per element, 3x2 row major
	Diameters           []float64
	IntegrationElements []float64
	Centroids           []r3.Vec
	DomainIndices       []uint32
}

func (g *Grid) Data() *GridData {
	return &GridData{
		Vertices:            g.input.vertices,
		Elements:            g.input.elements,
		Volumes:             g.geometry.volumes,
		Normals:             g.geometry.normals,
		Jacobians:           g.geometry.jacobians,
		JacInvTrans:         g.geometry.jacobianInverseTransposed,
		Diameters:           g.geometry.diameters,
		IntegrationElements: g.geometry.integrationElements,
		Centroids:           g.geometry.centroids,
		DomainIndices:       g.input.domainIndices,
	}
}

// NumberOfElements of the packed data
func (gd *GridData) NumberOfElements() int { return len(gd.Elements) / 3 }
