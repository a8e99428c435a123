/*
Package device serializes grids for compute devices. A pushed grid is cached on the grid itself, per device
context and precision, so repeated pushes reuse the first serialization.
*/
package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/notargets/gobem/grid"
	"github.com/notargets/gobem/types"
)

type Context struct {
	ID        uuid.UUID
	Name      string
	allocated atomic.Int64
}

func NewContext(name string) *Context {
	return &Context{ID: uuid.New(), Name: name}
}

// Allocated is the number of bytes of grid buffers created for this context
func (ctx *Context) Allocated() int64 { return ctx.allocated.Load() }

func (ctx *Context) String() string { return fmt.Sprintf("%s (%s)", ctx.Name, ctx.ID) }

/*
GridInterface is the device side view of a grid: the flattened corner coordinates, 9 values per element, in
little endian IEEE 754 of the chosen precision.
*/
type GridInterface struct {
	Context          *Context
	Precision        types.Precision
	NumberOfElements int
	Buffer           []byte
}

// Push returns the device interface of g on ctx, serializing it on first use only
func Push(g *grid.Grid, ctx *Context, precision types.Precision) (gi *GridInterface, err error) {
	if ctx == nil {
		err = fmt.Errorf("push needs a device context")
		return
	}
	key := grid.DeviceKey{Context: ctx.ID, Precision: precision}
	v, err := g.DeviceInterfaces().GetOrCreate(key, func() (any, error) {
		return newGridInterface(g, ctx, precision)
	})
	if err != nil {
		return nil, err
	}
	return v.(*GridInterface), nil
}

func newGridInterface(g *grid.Grid, ctx *Context, precision types.Precision) (gi *GridInterface, err error) {
	var (
		a   = g.AsArray()
		nb  = precision.Bytes()
		buf = make([]byte, nb*len(a))
	)
	switch precision {
	case types.Double:
		for i, x := range a {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(x))
		}
	case types.Single:
		for i, x := range a {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(x)))
		}
	default:
		return nil, fmt.Errorf("unknown precision %d", precision)
	}
	ctx.allocated.Add(int64(len(buf)))
	log.Debug("pushed grid to device", "context", ctx.Name, "precision", precision,
		"elements", g.NumberOfElements(), "bytes", len(buf))
	gi = &GridInterface{
		Context:          ctx,
		Precision:        precision,
		NumberOfElements: g.NumberOfElements(),
		Buffer:           buf,
	}
	return
}

// Float64s decodes the buffer back to the flattened corner coordinates
func (gi *GridInterface) Float64s() (a []float64) {
	nb := gi.Precision.Bytes()
	a = make([]float64, len(gi.Buffer)/nb)
	for i := range a {
		switch gi.Precision {
		case types.Single:
			a[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(gi.Buffer[4*i:])))
		default:
			a[i] = math.Float64frombits(binary.LittleEndian.Uint64(gi.Buffer[8*i:]))
		}
	}
	return
}
