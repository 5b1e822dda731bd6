package host

import (
	"sync/atomic"

	"github.com/wippyai/arraybridge/scalar"
)

// Layout identifies the physical shape of a host array.
type Layout uint8

const (
	LayoutAOS Layout = iota
	LayoutSOA
	LayoutView
)

var layoutNames = [...]string{
	LayoutAOS:  "aos",
	LayoutSOA:  "soa",
	LayoutView: "view",
}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "unknown"
}

// Array is a host-runtime array of any element kind.
type Array interface {
	Kind() scalar.Kind
	NumComponents() int
	// Len returns the number of tuples.
	Len() int
	Layout() Layout
	Name() string
	SetName(name string)
	// Float64 returns one scalar widened to float64, for display.
	Float64(tuple, comp int) float64
	Retain()
	Release()
	RefCount() int64
}

// Typed is an Array with element access in its own type.
type Typed[T scalar.Number] interface {
	Array
	Value(tuple, comp int) T
}

// header carries the state common to every array shape.
type header struct {
	free   func()
	name   string
	refs   atomic.Int64
	comps  int
	tuples int
}

func (h *header) init(free func()) {
	h.refs.Store(1)
	h.comps = 1
	h.free = free
}

func (h *header) NumComponents() int  { return h.comps }
func (h *header) Len() int            { return h.tuples }
func (h *header) Name() string        { return h.name }
func (h *header) SetName(name string) { h.name = name }
func (h *header) RefCount() int64     { return h.refs.Load() }

// Retain increases the reference count by 1.
func (h *header) Retain() {
	h.refs.Add(1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero the owned buffers are freed.
func (h *header) Release() {
	n := h.refs.Add(-1)
	if n < 0 {
		panic("host: too many releases")
	}
	if n == 0 && h.free != nil {
		h.free()
		h.free = nil
	}
}
