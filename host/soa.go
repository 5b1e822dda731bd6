package host

import (
	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// SOA is a planar host array with one buffer per component.
type SOA[T scalar.Number] struct {
	header
	cols     [][]T
	releases []buffer.ReleaseFunc
}

// NewSOA creates an array of comps empty columns holding one reference.
func NewSOA[T scalar.Number](comps int) *SOA[T] {
	a := &SOA[T]{
		cols:     make([][]T, comps),
		releases: make([]buffer.ReleaseFunc, comps),
	}
	a.init(a.freeColumns)
	a.comps = comps
	return a
}

func (a *SOA[T]) Kind() scalar.Kind { return scalar.KindOf[T]() }
func (a *SOA[T]) Layout() Layout    { return LayoutSOA }

// SetNumberOfTuples sets the per-column value count.
func (a *SOA[T]) SetNumberOfTuples(n int) { a.tuples = n }

// SetColumn installs data as column i. release runs when the array is
// destroyed or the column replaced.
func (a *SOA[T]) SetColumn(i int, data []T, release buffer.ReleaseFunc) error {
	if i < 0 || i >= len(a.cols) {
		return errors.OutOfBounds(errors.PhaseConvert, i, len(a.cols))
	}
	if len(data) < a.tuples {
		return errors.New(errors.PhaseConvert, errors.KindInvalidData).
			Element(a.Kind().String()).
			Detail("column %d has %d values, want %d", i, len(data), a.tuples).
			Build()
	}
	a.freeColumn(i)
	a.cols[i] = data[:a.tuples:a.tuples]
	a.releases[i] = release
	return nil
}

// AllocateColumn installs one value per tuple from alloc as column i and
// returns them.
func (a *SOA[T]) AllocateColumn(alloc arraybridge.Allocator, i int) ([]T, error) {
	data, release, err := allocValues[T](alloc, a.tuples)
	if err != nil {
		return nil, err
	}
	if err := a.SetColumn(i, data, release); err != nil {
		if release != nil {
			release()
		}
		return nil, err
	}
	return data, nil
}

// Column returns the values of component i.
func (a *SOA[T]) Column(i int) []T { return a.cols[i] }

func (a *SOA[T]) Value(tuple, comp int) T {
	return a.cols[comp][tuple]
}

func (a *SOA[T]) Float64(tuple, comp int) float64 {
	return float64(a.Value(tuple, comp))
}

func (a *SOA[T]) freeColumn(i int) {
	if a.releases[i] != nil {
		a.releases[i]()
	}
	a.cols[i], a.releases[i] = nil, nil
}

func (a *SOA[T]) freeColumns() {
	for i := range a.cols {
		a.freeColumn(i)
	}
}
