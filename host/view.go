package host

import (
	"github.com/wippyai/arraybridge/scalar"
	"github.com/wippyai/arraybridge/source"
)

// View wraps a source array without copying; reads go to the source.
type View[T scalar.Number] struct {
	src source.Array
	header
}

// NewView wraps src. The view keeps src alive until its last Release.
func NewView[T scalar.Number](src source.Array) *View[T] {
	v := &View[T]{src: src}
	v.init(v.drop)
	v.comps = src.NumComponents()
	v.tuples = src.Len()
	return v
}

func (v *View[T]) Kind() scalar.Kind { return scalar.KindOf[T]() }
func (v *View[T]) Layout() Layout    { return LayoutView }

// Source returns the wrapped array, or nil once the view is destroyed.
func (v *View[T]) Source() source.Array { return v.src }

// Load reads one scalar from the source array.
func (v *View[T]) Load(tuple, comp int) (T, error) {
	var buf [8]byte
	if err := v.src.ReadValue(tuple, comp, buf[:]); err != nil {
		var zero T
		return zero, err
	}
	return scalar.Decode[T](buf[:]), nil
}

// Value reads one scalar, returning zero if the source cannot be read.
func (v *View[T]) Value(tuple, comp int) T {
	val, _ := v.Load(tuple, comp)
	return val
}

func (v *View[T]) Float64(tuple, comp int) float64 {
	return float64(v.Value(tuple, comp))
}

func (v *View[T]) drop() {
	v.src = nil
}
