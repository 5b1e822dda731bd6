package source

import (
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// Strided maps logical index i to a physical element of Buffer:
//
//	i /= Divisor (when Divisor > 1)
//	i %= Modulo  (when Modulo > 0)
//	physical = i*Stride + Offset
type Strided struct {
	Buffer  *buffer.Buffer
	Len     int
	Stride  int
	Offset  int
	Modulo  int
	Divisor int
}

// Contiguous returns a unit stride column over all of buf.
func Contiguous(kind scalar.Kind, buf *buffer.Buffer) Strided {
	n := 0
	if size := kind.Size(); size > 0 {
		n = buf.Size() / size
	}
	return Strided{Buffer: buf, Len: n, Stride: 1, Divisor: 1}
}

// IsContiguous reports whether the column is the whole buffer in order.
func (s Strided) IsContiguous() bool {
	return s.Stride == 1 && s.Offset == 0 && s.Modulo == 0 && s.Divisor == 1
}

// Index returns the physical element index for logical index i.
func (s Strided) Index(i int) int {
	if s.Divisor > 1 {
		i /= s.Divisor
	}
	if s.Modulo > 0 {
		i %= s.Modulo
	}
	return i*s.Stride + s.Offset
}

// read copies logical element i into dst.
func (s Strided) read(kind scalar.Kind, i int, dst []byte) error {
	if i < 0 || i >= s.Len {
		return errors.OutOfBounds(errors.PhaseConvert, i, s.Len)
	}
	data, err := s.Buffer.Read()
	if err != nil {
		return err
	}
	size := kind.Size()
	start := s.Index(i) * size
	if start < 0 || start+size > len(data) {
		return errors.OutOfBounds(errors.PhaseConvert, start, len(data))
	}
	copy(dst[:size], data[start:start+size])
	return nil
}
