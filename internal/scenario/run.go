package scenario

import (
	"github.com/wippyai/arraybridge/config"
	"github.com/wippyai/arraybridge/convert"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/source"
)

// Result is the outcome of converting one array.
type Result struct {
	Output     host.Array   `json:"-"`
	Points     *host.Points `json:"-"`
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Layout     string       `json:"layout,omitempty"`
	Error      string       `json:"error,omitempty"`
	Tuples     int          `json:"tuples"`
	Components int          `json:"components"`
	Converted  bool         `json:"converted"`
	Verified   bool         `json:"verified"`

	src source.Array
}

// Release drops the result's reference to its output, then frees whatever
// the conversion left behind in the source array.
func (r *Result) Release() {
	switch {
	case r.Points != nil:
		r.Points.Release()
	case r.Output != nil:
		r.Output.Release()
	}
	if r.src != nil {
		r.src.Release()
	}
	r.Output, r.Points, r.src = nil, nil, nil
}

// Run builds and converts every array description. Results keep their
// outputs alive until released.
func (b *Builder) Run(conv *convert.Converter, specs []config.ArraySpec) []Result {
	results := make([]Result, 0, len(specs))
	for _, desc := range specs {
		results = append(results, b.runOne(conv, desc))
	}
	return results
}

func (b *Builder) runOne(conv *convert.Converter, desc config.ArraySpec) Result {
	res := Result{Name: desc.Name, Kind: desc.Type}
	src, err := b.Build(desc)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.src = src

	if desc.Coordinates {
		res.Points = conv.Coordinates(source.CoordinateSystem{Data: src, Name: desc.Name})
		if res.Points != nil {
			res.Output = res.Points.Data()
		}
	} else {
		res.Output = conv.Field(source.Field{Data: src, Name: desc.Name, Association: source.AssocPoints})
	}
	if res.Output == nil {
		res.Error = "conversion failed"
		return res
	}

	res.Converted = true
	res.Layout = res.Output.Layout().String()
	res.Tuples = res.Output.Len()
	res.Components = res.Output.NumComponents()
	if err := Verify(desc, res.Output); err != nil {
		res.Error = err.Error()
	} else {
		res.Verified = true
	}
	return res
}

// Verify checks every value of out against the fill described by desc.
func Verify(desc config.ArraySpec, out host.Array) error {
	if out.Len() != desc.Tuples || out.NumComponents() != desc.Components {
		return errors.New(errors.PhaseConvert, errors.KindStructuralMismatch).
			Array(desc.Name).
			Detail("shape %dx%d, want %dx%d", out.Len(), out.NumComponents(), desc.Tuples, desc.Components).
			Build()
	}
	for t := range desc.Tuples {
		for c := range desc.Components {
			if got, want := out.Float64(t, c), Expected(desc, t, c); got != want {
				return errors.New(errors.PhaseConvert, errors.KindInvalidData).
					Array(desc.Name).
					Value(got).
					Detail("value (%d, %d) = %v, want %v", t, c, got, want).
					Build()
			}
		}
	}
	return nil
}
