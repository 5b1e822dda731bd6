// Package scenario builds source arrays from declarative array specs and
// runs them through a converter.
package scenario

import (
	"fmt"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/config"
	"github.com/wippyai/arraybridge/device"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
	"github.com/wippyai/arraybridge/source"
)

// foreignPad is the container prefix placed before foreign buffers.
const foreignPad = 8

// Demo returns a set of arrays that exercises every conversion strategy.
func Demo() []config.ArraySpec {
	specs := []config.ArraySpec{
		{Name: "xyz", Type: "f32", Layout: config.LayoutSOA, Tuples: 1000, Components: 3},
		{Name: "velocity", Type: "f64", Layout: config.LayoutAOS, Tuples: 64, Components: 3, Foreign: true},
		{Name: "ids", Type: "u8", Layout: config.LayoutAOS, Tuples: 32},
		{Name: "nested", Type: "s16", Layout: config.LayoutSOA, Tuples: 16, Components: 2, Stride: 2},
		{Name: "ramp", Type: "f64", Layout: config.LayoutAffine, Tuples: 10, Slope: 0.5, Intercept: -1},
		{Name: "resident", Type: "s32", Layout: config.LayoutAOS, Tuples: 8, Components: 2, OnDevice: true},
		{Name: "coords", Type: "f32", Layout: config.LayoutAOS, Tuples: 4, Components: 3, Coordinates: true},
	}
	for i := range specs {
		specs[i].ApplyDefaults(i)
	}
	return specs
}

// Value returns the deterministic fill value of flat index i.
func Value(desc config.ArraySpec, i int) float64 {
	k, _ := scalar.Parse(desc.Type)
	if desc.Layout == config.LayoutAffine {
		return scalar.FromFloat64(k, desc.Slope*float64(i)+desc.Intercept)
	}
	v := float64(i % 100)
	if k.IsFloat() {
		v += 0.25
	}
	return scalar.FromFloat64(k, v)
}

// Expected returns the value a converted array must hold at tuple, comp.
func Expected(desc config.ArraySpec, tuple, comp int) float64 {
	return Value(desc, tuple*desc.Components+comp)
}

// Builder creates source arrays on a device.
type Builder struct {
	dev  arraybridge.Device
	host *device.Host
}

// NewBuilder creates a builder uploading on_device buffers to dev.
func NewBuilder(dev arraybridge.Device) *Builder {
	return &Builder{dev: dev, host: device.NewHost()}
}

// Device returns the device on_device buffers are uploaded to.
func (b *Builder) Device() arraybridge.Device { return b.dev }

// Build creates the source array described by desc.
func (b *Builder) Build(desc config.ArraySpec) (source.Array, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	k, _ := scalar.Parse(desc.Type)

	switch desc.Layout {
	case config.LayoutAffine:
		return source.NewAffine(k, desc.Components, desc.Tuples, desc.Slope, desc.Intercept)

	case config.LayoutSOA:
		cols := make([]source.Strided, desc.Components)
		for c := range cols {
			raw := make([]byte, desc.Tuples*desc.Stride*k.Size())
			for t := range desc.Tuples {
				off := t * desc.Stride * k.Size()
				scalar.EncodeFloat64(k, raw[off:], Expected(desc, t, c))
			}
			buf, err := b.place(desc, raw)
			if err != nil {
				releaseColumns(cols[:c])
				return nil, err
			}
			cols[c] = source.Strided{Buffer: buf, Len: desc.Tuples, Stride: desc.Stride, Divisor: 1}
		}
		src, err := source.NewSOAStrided(k, desc.Tuples, cols)
		if err != nil {
			releaseColumns(cols)
			return nil, err
		}
		return src, nil

	default:
		n := desc.Tuples * desc.Components
		raw := make([]byte, n*k.Size())
		for i := range n {
			scalar.EncodeFloat64(k, raw[i*k.Size():], Value(desc, i))
		}
		buf, err := b.place(desc, raw)
		if err != nil {
			return nil, err
		}
		src, err := source.NewBasic(k, desc.Components, buf)
		if err != nil {
			buf.Release()
			return nil, err
		}
		return src, nil
	}
}

func releaseColumns(cols []source.Strided) {
	for _, c := range cols {
		if c.Buffer != nil {
			c.Buffer.Release()
		}
	}
}

// place moves raw into the memory space desc asks for.
func (b *Builder) place(desc config.ArraySpec, raw []byte) (*buffer.Buffer, error) {
	switch {
	case desc.OnDevice:
		if b.dev == nil {
			return nil, errors.InvalidInput(errors.PhaseDevice, fmt.Sprintf("array %q needs a device", desc.Name))
		}
		return b.dev.Upload(raw)
	case desc.Foreign:
		return b.host.UploadView(raw, foreignPad)
	default:
		return buffer.FromBytes(raw, nil), nil
	}
}
