package source

import (
	"fmt"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// Basic is an interleaved array: one buffer, tuple components adjacent.
type Basic struct {
	buf   *buffer.Buffer
	kind  scalar.Kind
	comps int
}

// NewBasic wraps buf as tuples of comps components of kind.
func NewBasic(kind scalar.Kind, comps int, buf *buffer.Buffer) (*Basic, error) {
	if comps <= 0 {
		return nil, errors.InvalidInput(errors.PhaseClassify, fmt.Sprintf("component count %d", comps))
	}
	if size := kind.Size(); size > 0 && buf.Size()%(size*comps) != 0 {
		return nil, errors.New(errors.PhaseClassify, errors.KindInvalidData).
			Element(kind.String()).
			Detail("buffer of %d bytes is not a whole number of %d-component tuples", buf.Size(), comps).
			Build()
	}
	return &Basic{buf: buf, kind: kind, comps: comps}, nil
}

// FromSlice wraps data as a self-owned interleaved array without copying.
func FromSlice[T scalar.Number](comps int, data []T) (*Basic, error) {
	return NewBasic(scalar.KindOf[T](), comps, buffer.FromBytes(scalar.Bytes(data), nil))
}

func (a *Basic) Kind() scalar.Kind  { return a.kind }
func (a *Basic) NumComponents() int { return a.comps }

func (a *Basic) Len() int {
	size := a.kind.Size()
	if size == 0 {
		return 0
	}
	return a.buf.Size() / (size * a.comps)
}

// Buffer returns the backing buffer.
func (a *Basic) Buffer() *buffer.Buffer { return a.buf }

func (a *Basic) Interleaved() (Interleaved, bool) {
	return Interleaved{Buffer: a.buf, Components: a.comps}, true
}

func (a *Basic) Planar() bool { return false }

func (a *Basic) Component(i int) (Strided, error) {
	if i < 0 || i >= a.comps {
		return Strided{}, errors.OutOfBounds(errors.PhaseClassify, i, a.comps)
	}
	return Strided{
		Buffer:  a.buf,
		Len:     a.Len(),
		Stride:  a.comps,
		Offset:  i,
		Divisor: 1,
	}, nil
}

func (a *Basic) Release() { a.buf.Release() }

func (a *Basic) ReadValue(tuple, comp int, dst []byte) error {
	if err := checkIndex(tuple, comp, a.Len(), a.comps); err != nil {
		return err
	}
	col, err := a.Component(comp)
	if err != nil {
		return err
	}
	return col.read(a.kind, tuple, dst)
}
