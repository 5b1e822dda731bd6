package convert

import (
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/metrics"
	"github.com/wippyai/arraybridge/scalar"
	"github.com/wippyai/arraybridge/source"
)

type aosTarget[T scalar.Number] struct {
	c   *Converter
	out *host.AOS[T]
}

func (t aosTarget[T]) adopt(data []T, release buffer.ReleaseFunc) error {
	t.out.Adopt(data, release)
	return nil
}

func (t aosTarget[T]) allocate(n int) ([]T, error) {
	return t.out.Allocate(t.c.alloc, n)
}

// makeAOS moves an interleaved buffer into a host AOS array. Without unified
// memory a buffer that is not host resident is wrapped instead.
func makeAOS[T scalar.Number](c *Converter, in source.Array, iv source.Interleaved) (host.Array, string, error) {
	if iv.Buffer.Taken() {
		return nil, "", errors.AlreadyTransferred(errors.PhaseClassify, iv.Buffer.Size())
	}
	if !c.unified && !iv.Buffer.OnHost() {
		logNotResident(c, iv.Buffer)
		return makeView[T](c, in, reasonDeviceResident)
	}

	n := iv.Values(scalar.KindOf[T]())
	ticket, err := iv.Buffer.Take()
	if err != nil {
		return nil, "", err
	}

	out := host.NewAOS[T]()
	out.SetNumberOfComponents(iv.Components)
	if err := receive[T](c, ticket, n, aosTarget[T]{c: c, out: out}); err != nil {
		out.Release()
		return nil, "", err
	}
	return out, metrics.StrategyAOS, nil
}
