package source

import (
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// Affine is an implicit array whose flat value i is Slope*i + Intercept.
// It owns no buffers, so it can only ever be wrapped.
type Affine struct {
	Slope     float64
	Intercept float64
	kind      scalar.Kind
	comps     int
	tuples    int
}

// NewAffine creates an implicit array of tuples x comps values.
func NewAffine(kind scalar.Kind, comps, tuples int, slope, intercept float64) (*Affine, error) {
	if comps <= 0 || tuples < 0 {
		return nil, errors.InvalidInput(errors.PhaseClassify, "affine array needs positive components and non-negative tuples")
	}
	return &Affine{
		Slope:     slope,
		Intercept: intercept,
		kind:      kind,
		comps:     comps,
		tuples:    tuples,
	}, nil
}

func (a *Affine) Kind() scalar.Kind  { return a.kind }
func (a *Affine) NumComponents() int { return a.comps }
func (a *Affine) Len() int           { return a.tuples }

func (a *Affine) Interleaved() (Interleaved, bool) { return Interleaved{}, false }
func (a *Affine) Planar() bool                     { return false }

func (a *Affine) Component(int) (Strided, error) {
	return Strided{}, errors.StructuralMismatch(errors.PhaseClassify, "implicit array has no backing buffer")
}

func (a *Affine) Release() {}

// At returns flat value i widened to float64.
func (a *Affine) At(i int) float64 {
	return scalar.FromFloat64(a.kind, a.Slope*float64(i)+a.Intercept)
}

func (a *Affine) ReadValue(tuple, comp int, dst []byte) error {
	if err := checkIndex(tuple, comp, a.tuples, a.comps); err != nil {
		return err
	}
	scalar.EncodeFloat64(a.kind, dst, a.Slope*float64(tuple*a.comps+comp)+a.Intercept)
	return nil
}
