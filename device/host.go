package device

import (
	"context"
	"sync/atomic"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
)

// Host allocates buffers on the Go heap.
type Host struct {
	live atomic.Int64
}

// NewHost creates a host device.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) Name() string  { return "host" }
func (h *Host) Unified() bool { return true }

// Upload copies data into a new self-owned buffer.
func (h *Host) Upload(data []byte) (*buffer.Buffer, error) {
	mem := make([]byte, len(data))
	copy(mem, data)
	h.live.Add(1)
	return buffer.FromBytes(mem, h.releaser()), nil
}

// UploadView copies data into a larger container at offset pad and returns a
// foreign-owned view of it. Releasing the view frees the container.
func (h *Host) UploadView(data []byte, pad int) (*buffer.Buffer, error) {
	if pad < 0 {
		return nil, errors.InvalidInput(errors.PhaseDevice, "negative view padding")
	}
	container := make([]byte, pad+len(data))
	copy(container[pad:], data)
	h.live.Add(1)
	return buffer.ViewOf(container, pad, len(data), h.releaser())
}

// Live returns the number of allocations not yet released.
func (h *Host) Live() int {
	return int(h.live.Load())
}

func (h *Host) Close(context.Context) error {
	if n := h.Live(); n > 0 {
		Logger().Debug("host device closed with live allocations")
	}
	return nil
}

func (h *Host) releaser() buffer.ReleaseFunc {
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			h.live.Add(-1)
		}
	}
}
