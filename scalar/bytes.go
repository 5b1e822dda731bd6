package scalar

import "unsafe"

// Cast reinterprets b as a slice of T without copying. Trailing bytes that
// do not fill a whole element are dropped.
func Cast[T Number](b []byte) []T {
	n := len(b) / SizeOf[T]()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// Aligned reports whether b starts on a boundary suitable for T.
func Aligned[T Number](b []byte) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%uintptr(SizeOf[T]()) == 0
}

// Bytes reinterprets s as raw bytes without copying.
func Bytes[T Number](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*SizeOf[T]())
}

// SameMemory reports whether a and b start at the same address.
func SameMemory(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}

// Decode reads one element of T from the front of b. b need not be aligned.
func Decode[T Number](b []byte) T {
	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), SizeOf[T]()), b)
	return v
}

// Encode writes v to the front of b. b need not be aligned.
func Encode[T Number](b []byte, v T) {
	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(&v)), SizeOf[T]()))
}

// EncodeFloat64 writes v converted to kind k into b in native byte order.
// Used by implicit arrays that compute their values.
func EncodeFloat64(k Kind, b []byte, v float64) {
	switch k {
	case KindInt8:
		Encode(b, int8(v))
	case KindUint8:
		Encode(b, uint8(v))
	case KindInt16:
		Encode(b, int16(v))
	case KindUint16:
		Encode(b, uint16(v))
	case KindInt32:
		Encode(b, int32(v))
	case KindUint32:
		Encode(b, uint32(v))
	case KindInt64:
		Encode(b, int64(v))
	case KindUint64:
		Encode(b, uint64(v))
	case KindFloat32:
		Encode(b, float32(v))
	case KindFloat64:
		Encode(b, v)
	}
}

// DecodeFloat64 reads one element of kind k from b and widens it to float64.
func DecodeFloat64(k Kind, b []byte) float64 {
	switch k {
	case KindInt8:
		return float64(Decode[int8](b))
	case KindUint8:
		return float64(Decode[uint8](b))
	case KindInt16:
		return float64(Decode[int16](b))
	case KindUint16:
		return float64(Decode[uint16](b))
	case KindInt32:
		return float64(Decode[int32](b))
	case KindUint32:
		return float64(Decode[uint32](b))
	case KindInt64:
		return float64(Decode[int64](b))
	case KindUint64:
		return float64(Decode[uint64](b))
	case KindFloat32:
		return float64(Decode[float32](b))
	case KindFloat64:
		return Decode[float64](b)
	}
	return 0
}
