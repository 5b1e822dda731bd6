package host

import "sync/atomic"

// Points is a positional-tuple container over one array.
type Points struct {
	data Array
	refs atomic.Int64
}

// NewPoints wraps data, taking over the caller's reference to it.
func NewPoints(data Array) *Points {
	p := &Points{data: data}
	p.refs.Store(1)
	return p
}

// Data returns the coordinate array.
func (p *Points) Data() Array { return p.data }

// Len returns the number of points.
func (p *Points) Len() int { return p.data.Len() }

// Point returns the coordinates of point i.
func (p *Points) Point(i int) []float64 {
	out := make([]float64, p.data.NumComponents())
	for c := range out {
		out[c] = p.data.Float64(i, c)
	}
	return out
}

func (p *Points) Retain() { p.refs.Add(1) }

func (p *Points) Release() {
	if p.refs.Add(-1) == 0 {
		p.data.Release()
	}
}

func (p *Points) RefCount() int64 { return p.refs.Load() }
