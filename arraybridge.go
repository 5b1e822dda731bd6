package arraybridge

import (
	"context"

	"github.com/wippyai/arraybridge/buffer"
)

// Device is a memory space that holds source-runtime buffers.
type Device interface {
	Name() string
	// Unified reports whether the device shares its address space with the host.
	Unified() bool
	// Upload copies data into a new device buffer.
	Upload(data []byte) (*buffer.Buffer, error)
	Close(ctx context.Context) error
}

// Allocator hands out host memory for the copy paths of a conversion.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}
