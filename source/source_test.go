package source

import (
	"strings"
	"testing"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

func readF32(t *testing.T, a Array, tuple, comp int) float32 {
	t.Helper()
	dst := make([]byte, 4)
	if err := a.ReadValue(tuple, comp, dst); err != nil {
		t.Fatalf("ReadValue(%d, %d): %v", tuple, comp, err)
	}
	return scalar.Decode[float32](dst)
}

func TestBasic(t *testing.T) {
	data := []float32{0, 1, 2, 10, 11, 12}
	a, err := FromSlice(3, data)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	if a.Kind() != scalar.KindFloat32 {
		t.Errorf("Kind() = %s, want f32", a.Kind())
	}
	if a.NumComponents() != 3 || a.Len() != 2 {
		t.Errorf("shape = %dx%d, want 2x3", a.Len(), a.NumComponents())
	}
	iv, ok := a.Interleaved()
	if !ok {
		t.Fatal("basic array should be interleaved")
	}
	if iv.Components != 3 || iv.Values(a.Kind()) != 6 {
		t.Errorf("Interleaved = %d comps, %d values", iv.Components, iv.Values(a.Kind()))
	}
	if a.Planar() {
		t.Error("basic array should not be planar")
	}

	if got := readF32(t, a, 1, 2); got != 12 {
		t.Errorf("ReadValue(1, 2) = %v, want 12", got)
	}

	col, err := a.Component(1)
	if err != nil {
		t.Fatalf("Component: %v", err)
	}
	if col.IsContiguous() {
		t.Error("component of interleaved array should be strided")
	}
	if col.Stride != 3 || col.Offset != 1 || col.Len != 2 {
		t.Errorf("Component(1) = %+v", col)
	}
}

func TestNewBasicValidation(t *testing.T) {
	if _, err := NewBasic(scalar.KindFloat32, 0, buffer.FromBytes(make([]byte, 4), nil)); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("zero components err = %v", err)
	}
	if _, err := NewBasic(scalar.KindFloat32, 3, buffer.FromBytes(make([]byte, 8), nil)); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("ragged buffer err = %v", err)
	}
	a, err := NewBasic(scalar.KindInvalid, 1, buffer.FromBytes(make([]byte, 3), nil))
	if err != nil {
		t.Fatalf("invalid kind should still construct: %v", err)
	}
	if a.Len() != 0 {
		t.Errorf("Len() of invalid kind = %d, want 0", a.Len())
	}
}

func TestSOA(t *testing.T) {
	a, err := SOAFromSlices([]float32{1, 2}, []float32{3, 4}, []float32{5, 6})
	if err != nil {
		t.Fatalf("SOAFromSlices: %v", err)
	}
	if !a.Planar() {
		t.Error("SOA should be planar")
	}
	if _, ok := a.Interleaved(); ok {
		t.Error("SOA should not be interleaved")
	}
	if a.NumComponents() != 3 || a.Len() != 2 {
		t.Errorf("shape = %dx%d, want 2x3", a.Len(), a.NumComponents())
	}
	for c := 0; c < 3; c++ {
		col, err := a.Component(c)
		if err != nil {
			t.Fatalf("Component(%d): %v", c, err)
		}
		if !col.IsContiguous() {
			t.Errorf("Component(%d) should be contiguous", c)
		}
	}
	if got := readF32(t, a, 1, 2); got != 6 {
		t.Errorf("ReadValue(1, 2) = %v, want 6", got)
	}
	if _, err := a.Component(3); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("Component(3) err = %v", err)
	}
}

func TestSOAColumnLengthMismatch(t *testing.T) {
	_, err := SOAFromSlices([]int32{1, 2}, []int32{3})
	if !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("err = %v, want invalid_data", err)
	}
	if _, err := NewSOA(scalar.KindInt32); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("empty SOA err = %v", err)
	}
}

func TestSOAStridedColumn(t *testing.T) {
	// column 1 reads every other value of a shared buffer
	shared := []float32{10, 99, 11, 99, 12, 99}
	col0 := Contiguous(scalar.KindFloat32, buffer.FromBytes(scalar.Bytes([]float32{0, 1, 2}), nil))
	col1 := Strided{
		Buffer:  buffer.FromBytes(scalar.Bytes(shared), nil),
		Len:     3,
		Stride:  2,
		Divisor: 1,
	}
	a, err := NewSOAStrided(scalar.KindFloat32, 3, []Strided{col0, col1})
	if err != nil {
		t.Fatalf("NewSOAStrided: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := readF32(t, a, i, 1); got != float32(10+i) {
			t.Errorf("ReadValue(%d, 1) = %v, want %v", i, got, 10+i)
		}
	}
}

func TestStridedIndex(t *testing.T) {
	tests := []struct {
		name string
		s    Strided
		i    int
		want int
	}{
		{"unit", Strided{Stride: 1, Divisor: 1}, 5, 5},
		{"stride and offset", Strided{Stride: 3, Offset: 2, Divisor: 1}, 4, 14},
		{"modulo", Strided{Stride: 1, Modulo: 4, Divisor: 1}, 9, 1},
		{"divisor", Strided{Stride: 1, Divisor: 3}, 7, 2},
		{"divisor then modulo", Strided{Stride: 2, Modulo: 2, Divisor: 2, Offset: 1}, 6, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Index(tc.i); got != tc.want {
				t.Errorf("Index(%d) = %d, want %d", tc.i, got, tc.want)
			}
		})
	}
}

func TestAffine(t *testing.T) {
	a, err := NewAffine(scalar.KindFloat64, 2, 4, 0.5, 1)
	if err != nil {
		t.Fatalf("NewAffine: %v", err)
	}
	if _, ok := a.Interleaved(); ok || a.Planar() {
		t.Error("affine array should be neither interleaved nor planar")
	}
	if _, err := a.Component(0); !errors.IsKind(err, errors.KindStructuralMismatch) {
		t.Errorf("Component err = %v, want structural_mismatch", err)
	}

	dst := make([]byte, 8)
	if err := a.ReadValue(3, 1, dst); err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if got := scalar.Decode[float64](dst); got != 4.5 {
		t.Errorf("ReadValue(3, 1) = %v, want 4.5", got)
	}
	if got := a.At(7); got != 4.5 {
		t.Errorf("At(7) = %v, want 4.5", got)
	}
	if err := a.ReadValue(4, 0, dst); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("ReadValue past end err = %v", err)
	}
}

func TestReadAfterTransfer(t *testing.T) {
	a, _ := FromSlice(1, []uint16{1, 2, 3})
	if _, err := a.Buffer().Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	if a.Len() != 3 {
		t.Errorf("Len() after Take = %d, want 3", a.Len())
	}
	err := a.ReadValue(0, 0, make([]byte, 2))
	if !errors.IsKind(err, errors.KindAlreadyTransferred) {
		t.Errorf("ReadValue after Take err = %v, want already_transferred", err)
	}
}

func TestReleaseFreesUntakenBuffers(t *testing.T) {
	released := 0
	free := func() { released++ }
	x := buffer.FromBytes(scalar.Bytes([]int32{1, 2}), free)
	y := buffer.FromBytes(scalar.Bytes([]int32{3, 4}), free)
	a, err := NewSOA(scalar.KindInt32, x, y)
	if err != nil {
		t.Fatalf("NewSOA: %v", err)
	}
	if _, err := x.Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	a.Release()
	a.Release()
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}
	if err := a.ReadValue(0, 1, make([]byte, 4)); !errors.IsKind(err, errors.KindAlreadyTransferred) {
		t.Errorf("ReadValue after Release err = %v, want already_transferred", err)
	}

	aff, _ := NewAffine(scalar.KindFloat32, 1, 2, 1, 0)
	aff.Release()
	if err := aff.ReadValue(1, 0, make([]byte, 4)); err != nil {
		t.Errorf("affine ReadValue after Release = %v", err)
	}
}

func TestSummary(t *testing.T) {
	a, _ := SOAFromSlices([]int8{1}, []int8{2})
	s := Summary(a)
	for _, want := range []string{"kind=s8", "components=2", "tuples=1", "planar"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() = %q, missing %q", s, want)
		}
	}
}

func TestAssociationString(t *testing.T) {
	if AssocPoints.String() != "points" || Association(99).String() != "unknown" {
		t.Errorf("unexpected association names: %s %s", AssocPoints, Association(99))
	}
}
