package convert

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/metrics"
	"github.com/wippyai/arraybridge/source"
)

// Options configures a Converter.
type Options struct {
	// Allocator provides host memory for copies. Defaults to the Go heap.
	Allocator arraybridge.Allocator
	// Logger overrides the package logger.
	Logger *zap.Logger
	// Metrics records outcomes when non-nil.
	Metrics *metrics.Collector
	// Unified declares that the source runtime's devices share their address
	// space with the host, so device-resident buffers are safe to read.
	Unified bool
}

// DefaultOptions returns the options used by the package-level functions.
// Source devices are assumed to be unified.
func DefaultOptions() Options {
	return Options{Unified: true}
}

// Converter runs conversions with fixed options. It holds no per-call state
// and may be shared between goroutines converting different arrays.
type Converter struct {
	alloc   arraybridge.Allocator
	log     *zap.Logger
	metrics *metrics.Collector
	unified bool
}

// New creates a Converter.
func New(opts Options) *Converter {
	c := &Converter{
		alloc:   opts.Allocator,
		log:     opts.Logger,
		metrics: opts.Metrics,
		unified: opts.Unified,
	}
	if c.alloc == nil {
		c.alloc = host.HeapAllocator{}
	}
	return c
}

func (c *Converter) logger() *zap.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Array converts in and names the result. It returns nil, after logging,
// when the element kind is not supported or the conversion fails.
// The returned array holds one reference owned by the caller.
func (c *Converter) Array(in source.Array, name string) host.Array {
	log := c.logger()
	if in == nil {
		log.Warn("cannot convert nil array", zap.String("array", name))
		return nil
	}
	kind := in.Kind().String()

	out, strategy, err := c.dispatch(in)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Array == "" {
			e.Array = name
		}
		log.Warn("encountered error while converting array",
			zap.String("array", name),
			zap.String("kind", kind),
			zap.Error(err),
		)
		c.metrics.Conversion(kind, metrics.StrategyFailed)
		return nil
	}
	if out == nil {
		log.Warn("could not determine value type for array",
			zap.String("array", name),
			zap.String("kind", kind),
			zap.String("summary", source.Summary(in)),
			zap.Error(errors.UnrecognizedType(errors.PhaseDispatch, kind)),
		)
		c.metrics.Conversion(kind, metrics.StrategyUnrecognized)
		return nil
	}

	if name != "" && name != source.NoName {
		out.SetName(name)
	}
	c.metrics.Conversion(kind, strategy)
	log.Debug("converted array",
		zap.String("array", name),
		zap.String("kind", kind),
		zap.String("strategy", strategy),
		zap.Int("tuples", out.Len()),
		zap.Int("components", out.NumComponents()),
	)
	return out
}

// Field converts a field's array under the field's name.
func (c *Converter) Field(f source.Field) host.Array {
	return c.Array(f.Data, f.Name)
}

// Coordinates converts a coordinate system into a point container.
func (c *Converter) Coordinates(cs source.CoordinateSystem) *host.Points {
	data := c.Array(cs.Data, cs.Name)
	if data == nil {
		c.logger().Warn("converting coordinate system to points failed", zap.String("coordinates", cs.Name))
		return nil
	}
	return host.NewPoints(data)
}

var defaultConverter = New(DefaultOptions())

// Convert converts in with the default converter.
func Convert(in source.Array, name string) host.Array {
	return defaultConverter.Array(in, name)
}

// ConvertField converts f with the default converter.
func ConvertField(f source.Field) host.Array {
	return defaultConverter.Field(f)
}

// ConvertCoordinates converts cs with the default converter.
func ConvertCoordinates(cs source.CoordinateSystem) *host.Points {
	return defaultConverter.Coordinates(cs)
}
