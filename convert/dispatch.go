package convert

import (
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/metrics"
	"github.com/wippyai/arraybridge/scalar"
	"github.com/wippyai/arraybridge/source"
)

type convertFunc func(c *Converter, in source.Array) (host.Array, string, error)

type registration struct {
	fn   convertFunc
	kind scalar.Kind
}

// registry lists the supported kinds in dispatch order.
var registry = []registration{
	{kind: scalar.KindInt8, fn: convertAs[int8]},
	{kind: scalar.KindUint8, fn: convertAs[uint8]},
	{kind: scalar.KindInt16, fn: convertAs[int16]},
	{kind: scalar.KindUint16, fn: convertAs[uint16]},
	{kind: scalar.KindInt32, fn: convertAs[int32]},
	{kind: scalar.KindUint32, fn: convertAs[uint32]},
	{kind: scalar.KindInt64, fn: convertAs[int64]},
	{kind: scalar.KindUint64, fn: convertAs[uint64]},
	{kind: scalar.KindFloat32, fn: convertAs[float32]},
	{kind: scalar.KindFloat64, fn: convertAs[float64]},
}

// dispatch runs the first registration matching in's kind. A nil array with
// a nil error means no registration matched.
func (c *Converter) dispatch(in source.Array) (host.Array, string, error) {
	kind := in.Kind()
	for _, r := range registry {
		if r.kind != kind {
			continue
		}
		return r.fn(c, in)
	}
	return nil, "", nil
}

type layout uint8

const (
	layoutOpaque layout = iota
	layoutInterleaved
	layoutPlanar
)

// classify picks the storage layout; interleaved wins over planar.
func classify(in source.Array) (layout, source.Interleaved) {
	if iv, ok := in.Interleaved(); ok && iv.Buffer != nil {
		return layoutInterleaved, iv
	}
	if in.Planar() {
		return layoutPlanar, source.Interleaved{}
	}
	return layoutOpaque, source.Interleaved{}
}

func convertAs[T scalar.Number](c *Converter, in source.Array) (host.Array, string, error) {
	switch l, iv := classify(in); l {
	case layoutInterleaved:
		return makeAOS[T](c, in, iv)
	case layoutPlanar:
		return makeSOA[T](c, in)
	default:
		return makeView[T](c, in, "")
	}
}

// makeView wraps in for lazy reads. reason is recorded when the view stands
// in for an adoption that could not run.
func makeView[T scalar.Number](c *Converter, in source.Array, reason string) (host.Array, string, error) {
	if reason != "" {
		c.metrics.Fallback(reason)
	}
	return host.NewView[T](in), metrics.StrategyView, nil
}
