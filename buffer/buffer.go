package buffer

import (
	"sync/atomic"

	"github.com/wippyai/arraybridge/errors"
)

// Storage is the device memory behind a Buffer.
type Storage interface {
	// Size returns the region size in bytes.
	Size() int
	// OnHost reports whether the region is currently host resident.
	OnHost() bool
	// Host returns host-addressable bytes, syncing from the device if needed.
	Host() ([]byte, error)
	// Transfer relinquishes the region. The Buffer calls it at most once.
	Transfer() (Ticket, error)
	// Device names the memory space, for diagnostics.
	Device() string
}

// Buffer is a contiguous region whose ownership can be taken once.
type Buffer struct {
	store Storage
	taken atomic.Bool
}

// New wraps a device storage.
func New(s Storage) *Buffer {
	return &Buffer{store: s}
}

// Size returns the region size in bytes.
func (b *Buffer) Size() int {
	return b.store.Size()
}

// OnHost reports whether the region is host resident right now. It says
// nothing about ownership; see Taken.
func (b *Buffer) OnHost() bool {
	return b.store.OnHost()
}

// Device names the memory space backing the buffer.
func (b *Buffer) Device() string {
	return b.store.Device()
}

// Taken reports whether ownership has already been transferred.
func (b *Buffer) Taken() bool {
	return b.taken.Load()
}

// Read returns host-addressable bytes without transferring ownership.
func (b *Buffer) Read() ([]byte, error) {
	if b.taken.Load() {
		return nil, errors.AlreadyTransferred(errors.PhaseTransfer, b.store.Size())
	}
	return b.store.Host()
}

// Release frees a region whose ownership was never taken. It is a no-op
// after Take or a previous Release.
func (b *Buffer) Release() {
	if !b.taken.CompareAndSwap(false, true) {
		return
	}
	if d, ok := b.store.(discarder); ok {
		d.Discard()
		return
	}
	if t, err := b.store.Transfer(); err == nil {
		Free(t)
	}
}

// discarder is implemented by storages that can drop their region without
// handing it over first.
type discarder interface {
	Discard()
}

// Take transfers ownership of the region to the caller.
func (b *Buffer) Take() (Ticket, error) {
	if !b.taken.CompareAndSwap(false, true) {
		return nil, errors.AlreadyTransferred(errors.PhaseTransfer, b.store.Size())
	}
	t, err := b.store.Transfer()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseTransfer, errors.KindInvalidData, err, "transfer buffer")
	}
	return t, nil
}
