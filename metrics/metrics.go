// Package metrics records conversion outcomes as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arraybridge"

// Strategy labels.
const (
	StrategyAOS          = "aos"
	StrategySOA          = "soa"
	StrategyView         = "view"
	StrategyUnrecognized = "unrecognized"
	StrategyFailed       = "failed"
)

// Buffer disposition labels.
const (
	Adopted = "adopted"
	Copied  = "copied"
)

// Collector groups the conversion counters. A nil *Collector is valid and
// records nothing.
type Collector struct {
	conversions *prometheus.CounterVec
	buffers     *prometheus.CounterVec
	copiedBytes prometheus.Counter
	fallbacks   *prometheus.CounterVec
}

// New creates a collector and registers it on reg when reg is non-nil.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Array conversions by element kind and strategy",
			},
			[]string{"kind", "strategy"},
		),
		buffers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "buffers_total",
				Help:      "Source buffers handed to the host, by disposition",
			},
			[]string{"disposition"},
		),
		copiedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "copied_bytes_total",
				Help:      "Bytes deep-copied out of foreign-owned buffers",
			},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_fallbacks_total",
				Help:      "Eager strategies abandoned for a view wrapper, by reason",
			},
			[]string{"reason"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.conversions, c.buffers, c.copiedBytes, c.fallbacks)
	}
	return c
}

// Conversion records one finished conversion.
func (c *Collector) Conversion(kind, strategy string) {
	if c == nil {
		return
	}
	c.conversions.WithLabelValues(kind, strategy).Inc()
}

// AdoptedBuffer records a zero-copy ownership transfer.
func (c *Collector) AdoptedBuffer() {
	if c == nil {
		return
	}
	c.buffers.WithLabelValues(Adopted).Inc()
}

// CopiedBuffer records a deep copy of size bytes.
func (c *Collector) CopiedBuffer(size int) {
	if c == nil {
		return
	}
	c.buffers.WithLabelValues(Copied).Inc()
	c.copiedBytes.Add(float64(size))
}

// Fallback records an eager strategy giving way to a view wrapper.
func (c *Collector) Fallback(reason string) {
	if c == nil {
		return
	}
	c.fallbacks.WithLabelValues(reason).Inc()
}

// Conversions returns the conversion counter for kind and strategy.
func (c *Collector) Conversions(kind, strategy string) prometheus.Counter {
	return c.conversions.WithLabelValues(kind, strategy)
}

// Buffers returns the buffer counter for a disposition.
func (c *Collector) Buffers(disposition string) prometheus.Counter {
	return c.buffers.WithLabelValues(disposition)
}

// CopiedBytes returns the copied byte counter.
func (c *Collector) CopiedBytes() prometheus.Counter {
	return c.copiedBytes
}

// Fallbacks returns the view fallback counter for a reason.
func (c *Collector) Fallbacks(reason string) prometheus.Counter {
	return c.fallbacks.WithLabelValues(reason)
}
