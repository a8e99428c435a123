package grid

import "fmt"

// InvalidArgumentError reports a caller error: a malformed input shape, an out of range index or codim
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Reason)
}

func invalidArgument(op, format string, args ...any) error {
	return &InvalidArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateElementError reports an element with a repeated vertex, zero area or a singular Gram matrix
type DegenerateElementError struct {
	Element int
	Reason  string
}

func (e *DegenerateElementError) Error() string {
	return fmt.Sprintf("element %d is degenerate: %s", e.Element, e.Reason)
}

/*
ConsistencyError reports connectivity where the shared vertex count of an element pair is not corroborated by
matching the vertex ids of the two elements. It indicates non-conforming input.
*/
type ConsistencyError struct {
	Elements [2]int
	Shared   int
	Reason   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent connectivity between elements %d and %d (%d shared vertices): %s",
		e.Elements[0], e.Elements[1], e.Shared, e.Reason)
}
