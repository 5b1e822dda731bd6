package source

import (
	"fmt"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// SOA is a planar array: one column per component.
type SOA struct {
	cols   []Strided
	kind   scalar.Kind
	tuples int
}

// NewSOA builds a planar array from one contiguous buffer per component.
func NewSOA(kind scalar.Kind, bufs ...*buffer.Buffer) (*SOA, error) {
	if len(bufs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseClassify, "planar array needs at least one column")
	}
	cols := make([]Strided, len(bufs))
	for i, b := range bufs {
		cols[i] = Contiguous(kind, b)
	}
	return NewSOAStrided(kind, cols[0].Len, cols)
}

// NewSOAStrided builds a planar array from arbitrary column descriptors.
// Columns that are not contiguous model planar storage of nested tuples;
// such arrays are still planar but cannot be adopted column by column.
func NewSOAStrided(kind scalar.Kind, tuples int, cols []Strided) (*SOA, error) {
	if len(cols) == 0 {
		return nil, errors.InvalidInput(errors.PhaseClassify, "planar array needs at least one column")
	}
	for i, c := range cols {
		if c.Buffer == nil {
			return nil, errors.InvalidInput(errors.PhaseClassify, fmt.Sprintf("column %d has no buffer", i))
		}
		if c.Len != tuples {
			return nil, errors.New(errors.PhaseClassify, errors.KindInvalidData).
				Element(kind.String()).
				Detail("column %d has %d values, want %d", i, c.Len, tuples).
				Build()
		}
	}
	return &SOA{cols: cols, kind: kind, tuples: tuples}, nil
}

// SOAFromSlices wraps each slice as a self-owned column without copying.
func SOAFromSlices[T scalar.Number](cols ...[]T) (*SOA, error) {
	bufs := make([]*buffer.Buffer, len(cols))
	for i, c := range cols {
		bufs[i] = buffer.FromBytes(scalar.Bytes(c), nil)
	}
	return NewSOA(scalar.KindOf[T](), bufs...)
}

func (a *SOA) Kind() scalar.Kind  { return a.kind }
func (a *SOA) NumComponents() int { return len(a.cols) }
func (a *SOA) Len() int           { return a.tuples }

func (a *SOA) Interleaved() (Interleaved, bool) { return Interleaved{}, false }
func (a *SOA) Planar() bool                     { return true }

func (a *SOA) Component(i int) (Strided, error) {
	if i < 0 || i >= len(a.cols) {
		return Strided{}, errors.OutOfBounds(errors.PhaseClassify, i, len(a.cols))
	}
	return a.cols[i], nil
}

func (a *SOA) Release() {
	for _, c := range a.cols {
		c.Buffer.Release()
	}
}

func (a *SOA) ReadValue(tuple, comp int, dst []byte) error {
	if err := checkIndex(tuple, comp, a.tuples, len(a.cols)); err != nil {
		return err
	}
	return a.cols[comp].read(a.kind, tuple, dst)
}
