package host

import (
	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/scalar"
)

// AOS is an interleaved host array.
type AOS[T scalar.Number] struct {
	header
	release buffer.ReleaseFunc
	data    []T
}

// NewAOS creates an empty single-component array holding one reference.
func NewAOS[T scalar.Number]() *AOS[T] {
	a := &AOS[T]{}
	a.init(a.freeData)
	return a
}

func (a *AOS[T]) Kind() scalar.Kind { return scalar.KindOf[T]() }
func (a *AOS[T]) Layout() Layout    { return LayoutAOS }

// SetNumberOfComponents sets the tuple width.
func (a *AOS[T]) SetNumberOfComponents(n int) {
	a.comps = n
	a.resize()
}

// Adopt takes data as the array's buffer without copying. release runs when
// the array is destroyed or its buffer replaced.
func (a *AOS[T]) Adopt(data []T, release buffer.ReleaseFunc) {
	a.freeData()
	a.data = data
	a.release = release
	a.resize()
}

// Allocate replaces the buffer with n values from alloc and returns it.
func (a *AOS[T]) Allocate(alloc arraybridge.Allocator, n int) ([]T, error) {
	data, release, err := allocValues[T](alloc, n)
	if err != nil {
		return nil, err
	}
	a.Adopt(data, release)
	return data, nil
}

// Values returns the interleaved scalars.
func (a *AOS[T]) Values() []T { return a.data }

func (a *AOS[T]) Value(tuple, comp int) T {
	return a.data[tuple*a.comps+comp]
}

func (a *AOS[T]) Float64(tuple, comp int) float64 {
	return float64(a.Value(tuple, comp))
}

func (a *AOS[T]) resize() {
	if a.comps > 0 {
		a.tuples = len(a.data) / a.comps
	}
}

func (a *AOS[T]) freeData() {
	if a.release != nil {
		a.release()
	}
	a.data, a.release = nil, nil
}
