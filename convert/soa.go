package convert

import (
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/metrics"
	"github.com/wippyai/arraybridge/scalar"
	"github.com/wippyai/arraybridge/source"
)

type soaTarget[T scalar.Number] struct {
	c   *Converter
	out *host.SOA[T]
	col int
}

func (t soaTarget[T]) adopt(data []T, release buffer.ReleaseFunc) error {
	return t.out.SetColumn(t.col, data, release)
}

func (t soaTarget[T]) allocate(int) ([]T, error) {
	return t.out.AllocateColumn(t.c.alloc, t.col)
}

// makeSOA moves each column of a planar array into a host SOA array.
// Every column is checked before any buffer is taken, so a fallback to a
// view leaves the source untouched.
func makeSOA[T scalar.Number](c *Converter, in source.Array) (host.Array, string, error) {
	comps := in.NumComponents()
	n := in.Len()
	if n >= scalar.MaxElements[T]() {
		return nil, "", errors.AllocationTooLarge(errors.PhaseAllocate, n, scalar.SizeOf[T]())
	}

	cols := make([]source.Strided, comps)
	for i := range cols {
		col, err := in.Component(i)
		if err != nil {
			return nil, "", err
		}
		if col.Buffer.Taken() {
			return nil, "", errors.AlreadyTransferred(errors.PhaseClassify, col.Buffer.Size())
		}
		cols[i] = col
	}
	for i, col := range cols {
		if !col.IsContiguous() {
			return makeView[T](c, in, reasonStridedColumn)
		}
		// Only the first column is checked for residency.
		if i == 0 && !c.unified && !col.Buffer.OnHost() {
			logNotResident(c, col.Buffer)
			return makeView[T](c, in, reasonDeviceResident)
		}
	}

	out := host.NewSOA[T](comps)
	out.SetNumberOfTuples(n)
	for i, col := range cols {
		ticket, err := col.Buffer.Take()
		if err != nil {
			out.Release()
			return nil, "", err
		}
		if err := receive[T](c, ticket, n, soaTarget[T]{c: c, out: out, col: i}); err != nil {
			out.Release()
			return nil, "", err
		}
	}
	return out, metrics.StrategySOA, nil
}
