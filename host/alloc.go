package host

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/scalar"
)

// HeapAllocator allocates host memory on the Go heap.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.AllocationFailed(errors.PhaseAllocate, size, 1)
	}
	return make([]byte, size), nil
}

// Freer is implemented by allocators that want their memory handed back
// when the array holding it is destroyed.
type Freer interface {
	Free(b []byte)
}

// ArrowAllocator draws host memory from an Arrow allocator. Every
// allocation is 64-byte aligned and returned to Mem on release.
type ArrowAllocator struct {
	Mem memory.Allocator
}

// NewArrowAllocator wraps mem, or Arrow's default allocator when mem is nil.
func NewArrowAllocator(mem memory.Allocator) *ArrowAllocator {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &ArrowAllocator{Mem: mem}
}

func (a *ArrowAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.AllocationFailed(errors.PhaseAllocate, size, 64)
	}
	return a.Mem.Allocate(size), nil
}

func (a *ArrowAllocator) Free(b []byte) {
	a.Mem.Free(b)
}

// NewAllocator returns the allocator registered under name: "heap" or "arrow".
func NewAllocator(name string) (arraybridge.Allocator, error) {
	switch name {
	case "", "heap":
		return HeapAllocator{}, nil
	case "arrow":
		return NewArrowAllocator(nil), nil
	default:
		return nil, errors.NotFound(errors.PhaseAllocate, "allocator", name)
	}
}

// allocValues allocates n elements of T from alloc. The release func is nil
// unless alloc needs its memory back.
func allocValues[T scalar.Number](alloc arraybridge.Allocator, n int) ([]T, buffer.ReleaseFunc, error) {
	if n < 0 || n >= scalar.MaxElements[T]() {
		return nil, nil, errors.AllocationTooLarge(errors.PhaseAllocate, n, scalar.SizeOf[T]())
	}
	if n == 0 {
		return []T{}, nil, nil
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	raw, err := alloc.Alloc(n * scalar.SizeOf[T]())
	if err != nil {
		return nil, nil, err
	}
	var release buffer.ReleaseFunc
	if f, ok := alloc.(Freer); ok {
		release = func() { f.Free(raw) }
	}
	return scalar.Cast[T](raw), release, nil
}
