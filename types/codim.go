package types

import "fmt"

// Codim is the codimension of a mesh entity on a triangulated surface
type Codim uint8

const (
	CodimElement Codim = iota
	CodimEdge
	CodimVertex
)

var codimNames = [...]string{"element", "edge", "vertex"}

func NewCodim(c int) (codim Codim, err error) {
	if c < 0 || c > int(CodimVertex) {
		err = fmt.Errorf("codim must be one of 0, 1, or 2, have %d", c)
		return
	}
	codim = Codim(c)
	return
}

func (c Codim) String() string {
	if int(c) < len(codimNames) {
		return codimNames[c]
	}
	return fmt.Sprintf("Codim(%d)", uint8(c))
}

// Precision selects the floating point width of a serialized grid
type Precision uint8

const (
	Double Precision = iota
	Single
)

func NewPrecision(label string) (p Precision, err error) {
	switch label {
	case "double", "float64":
		p = Double
	case "single", "float32":
		p = Single
	default:
		err = fmt.Errorf("unknown precision %q, should be one of single or double", label)
	}
	return
}

func (p Precision) String() string {
	switch p {
	case Double:
		return "double"
	case Single:
		return "single"
	default:
		return fmt.Sprintf("Precision(%d)", uint8(p))
	}
}

// Bytes is the storage size of one value
func (p Precision) Bytes() int {
	if p == Single {
		return 4
	}
	return 8
}
