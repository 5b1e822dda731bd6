package convert

import (
	"go.uber.org/zap"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// Fallback reasons recorded when an adoptable layout is wrapped instead.
const (
	reasonDeviceResident = "device_resident"
	reasonStridedColumn  = "strided_column"
)

// target receives the contents of one transferred buffer.
type target[T scalar.Number] interface {
	// adopt installs data without copying; release runs when it is dropped.
	adopt(data []T, release buffer.ReleaseFunc) error
	// allocate installs fresh host storage for n values and returns it.
	allocate(n int) ([]T, error)
}

// receive moves n values out of t into dst. Self-owned regions are adopted
// and foreign-owned regions are copied and released at once. A self-owned
// region that is not aligned for T is copied as well.
func receive[T scalar.Number](c *Converter, t buffer.Ticket, n int, dst target[T]) error {
	need := n * scalar.SizeOf[T]()
	if t.Size() < need {
		buffer.Free(t)
		return errors.New(errors.PhaseTransfer, errors.KindInvalidData).
			Element(scalar.KindOf[T]().String()).
			Detail("transferred %d bytes, want %d", t.Size(), need).
			Build()
	}

	switch v := t.(type) {
	case *buffer.Owned:
		if !scalar.Aligned[T](v.Data) {
			return copyInto(c, t, n, dst)
		}
		var data []T
		if n > 0 {
			data = scalar.Cast[T](v.Data[:need])
		}
		if err := dst.adopt(data, v.Release); err != nil {
			buffer.Free(t)
			return err
		}
		c.metrics.AdoptedBuffer()
	case *buffer.Borrowed:
		return copyInto(c, t, n, dst)
	default:
		buffer.Free(t)
		return errors.InvalidData(errors.PhaseTransfer, "unknown ticket type")
	}
	return nil
}

// copyInto copies n values out of t into fresh storage and releases t.
func copyInto[T scalar.Number](c *Converter, t buffer.Ticket, n int, dst target[T]) error {
	defer buffer.Free(t)
	need := n * scalar.SizeOf[T]()
	data, err := dst.allocate(n)
	if err != nil {
		return err
	}
	copy(scalar.Bytes(data), t.Bytes()[:need])
	c.metrics.CopiedBuffer(need)
	return nil
}

func logNotResident(c *Converter, b *buffer.Buffer) {
	c.logger().Debug("wrapping array with device resident data",
		zap.Error(errors.NotHostResident(errors.PhaseClassify, b.Device())))
}
