package source

import (
	"fmt"
	"strings"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// Array is a source-runtime array handle.
type Array interface {
	// Kind returns the element type tag.
	Kind() scalar.Kind
	// NumComponents returns the flat component count per tuple.
	NumComponents() int
	// Len returns the number of tuples.
	Len() int
	// Interleaved returns the single backing buffer when the array can be
	// viewed as interleaved tuples of runtime-determined width.
	Interleaved() (Interleaved, bool)
	// Planar reports whether the storage is literally one buffer per component.
	Planar() bool
	// Component extracts column i as a strided unit.
	Component(i int) (Strided, error)
	// ReadValue copies the bytes of one scalar into dst.
	ReadValue(tuple, comp int, dst []byte) error
	// Release frees every buffer whose ownership was never taken.
	Release()
}

// Interleaved is the AOS view of an array.
type Interleaved struct {
	Buffer     *buffer.Buffer
	Components int
}

// Values returns the scalar count held by the buffer.
func (v Interleaved) Values(kind scalar.Kind) int {
	if kind.Size() == 0 {
		return 0
	}
	return v.Buffer.Size() / kind.Size()
}

// Summary describes an array for diagnostics.
func Summary(a Array) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%T kind=%s components=%d tuples=%d", a, a.Kind(), a.NumComponents(), a.Len())
	if _, ok := a.Interleaved(); ok {
		b.WriteString(" interleaved")
	}
	if a.Planar() {
		b.WriteString(" planar")
	}
	return b.String()
}

func checkIndex(tuple, comp, tuples, comps int) error {
	if tuple < 0 || tuple >= tuples {
		return errors.OutOfBounds(errors.PhaseConvert, tuple, tuples)
	}
	if comp < 0 || comp >= comps {
		return errors.OutOfBounds(errors.PhaseConvert, comp, comps)
	}
	return nil
}
