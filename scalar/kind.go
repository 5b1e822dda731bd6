package scalar

import (
	"math"
	"unsafe"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "s8",
	KindUint8:   "u8",
	KindInt16:   "s16",
	KindUint16:  "u16",
	KindInt32:   "s32",
	KindUint32:  "u32",
	KindInt64:   "s64",
	KindUint64:  "u64",
	KindFloat32: "f32",
	KindFloat64: "f64",
}

var kindSizes = [...]int{
	KindInt8:    1,
	KindUint8:   1,
	KindInt16:   2,
	KindUint16:  2,
	KindInt32:   4,
	KindUint32:  4,
	KindInt64:   8,
	KindUint64:  8,
	KindFloat32: 4,
	KindFloat64: 8,
}

// Kinds returns the supported kinds in dispatch order.
func Kinds() []Kind {
	return []Kind{
		KindInt8, KindUint8, KindInt16, KindUint16,
		KindInt32, KindUint32, KindInt64, KindUint64,
		KindFloat32, KindFloat64,
	}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindFloat64
}

// Size returns the element width in bytes, or 0 for unsupported kinds.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindSizes[k]
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// Parse resolves a kind from its short name ("f32") or Go name ("float32").
func Parse(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == name || k.GoName() == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// GoName returns the Go type name for k.
func (k Kind) GoName() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// Number is the compile-time counterpart of the supported kinds.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// KindOf returns the kind tag for T.
func KindOf[T Number]() Kind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return KindInt8
	case uint8:
		return KindUint8
	case int16:
		return KindInt16
	case uint16:
		return KindUint16
	case int32:
		return KindInt32
	case uint32:
		return KindUint32
	case int64:
		return KindInt64
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	}
	return KindInvalid
}

// SizeOf returns the width of T in bytes.
func SizeOf[T Number]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// MaxElements is the largest element count of T whose byte size stays
// strictly below the platform's signed offset range.
func MaxElements[T Number]() int {
	return math.MaxInt / SizeOf[T]()
}

// FromFloat64 converts v to the value of kind k and returns it as float64
// after round tripping through k, so callers see what k can represent.
func FromFloat64(k Kind, v float64) float64 {
	switch k {
	case KindInt8:
		return float64(int8(v))
	case KindUint8:
		return float64(uint8(v))
	case KindInt16:
		return float64(int16(v))
	case KindUint16:
		return float64(uint16(v))
	case KindInt32:
		return float64(int32(v))
	case KindUint32:
		return float64(uint32(v))
	case KindInt64:
		return float64(int64(v))
	case KindUint64:
		return float64(uint64(v))
	case KindFloat32:
		return float64(float32(v))
	default:
		return v
	}
}
