package device

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/arraybridge/buffer"
	"github.com/wippyai/arraybridge/errors"
)

const (
	memoryExport = "memory"
	// heapBase keeps offset 0 unused so a zero offset never names a region.
	heapBase   = 8
	allocAlign = 8
	// maxPages keeps the memory size representable as uint32.
	maxPages = 65535
)

// Wasm keeps buffers inside the linear memory of a wazero module. The host
// reads that memory directly, so the device is unified, but every buffer is
// a view into the one memory and can never be adopted on its own.
type Wasm struct {
	runtime wazero.Runtime
	module  api.Module
	mem     api.Memory
	heap    *arena
	mu      sync.Mutex
	live    int
}

// NewWasm instantiates a memory-only module with a fixed number of 64KiB
// pages. The memory never grows, so host views of it stay valid.
func NewWasm(ctx context.Context, pages uint32) (*Wasm, error) {
	if pages == 0 || pages > maxPages {
		return nil, errors.InvalidInput(errors.PhaseDevice, fmt.Sprintf("wasm device pages %d outside [1, %d]", pages, maxPages))
	}
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithMemoryLimitPages(pages))
	mod, err := rt.Instantiate(ctx, memoryModule(memoryExport, pages))
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseDevice, errors.KindAllocation, err, "instantiate memory module")
	}
	mem := mod.ExportedMemory(memoryExport)
	if mem == nil {
		rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseDevice, "export", memoryExport)
	}

	Logger().Debug("wasm device ready", zap.Uint32("pages", pages), zap.Uint32("bytes", mem.Size()))
	return &Wasm{
		runtime: rt,
		module:  mod,
		mem:     mem,
		heap:    newArena(heapBase, mem.Size()),
	}, nil
}

func (w *Wasm) Name() string  { return "wasm" }
func (w *Wasm) Unified() bool { return true }

// Memory returns the linear memory backing all buffers.
func (w *Wasm) Memory() api.Memory { return w.mem }

// Upload copies data into a freshly allocated region of linear memory.
func (w *Wasm) Upload(data []byte) (*buffer.Buffer, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, errors.AllocationTooLarge(errors.PhaseDevice, len(data), 1)
	}
	w.mu.Lock()
	off, ok := w.heap.alloc(uint32(len(data)), allocAlign)
	if ok {
		w.live++
	}
	w.mu.Unlock()
	if !ok {
		return nil, errors.AllocationFailed(errors.PhaseDevice, len(data), allocAlign)
	}

	if !w.mem.Write(off, data) {
		w.free(off, uint32(len(data)))
		return nil, errors.OutOfBounds(errors.PhaseDevice, int(off)+len(data), int(w.mem.Size()))
	}
	return buffer.New(&wasmStorage{dev: w, off: off, size: uint32(len(data))}), nil
}

// Live returns the number of regions not yet freed.
func (w *Wasm) Live() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.live
}

// Available returns the number of free bytes of linear memory.
func (w *Wasm) Available() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return int(w.heap.available())
}

// Close releases the wazero runtime. Host views of the memory become invalid.
func (w *Wasm) Close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}

func (w *Wasm) free(off, size uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.heap.release(off, size)
	w.live--
}

type wasmStorage struct {
	dev   *Wasm
	off   uint32
	size  uint32
	freed sync.Once
}

func (s *wasmStorage) Size() int      { return int(s.size) }
func (s *wasmStorage) OnHost() bool   { return true }
func (s *wasmStorage) Device() string { return s.dev.Name() }

func (s *wasmStorage) Host() ([]byte, error) {
	data, ok := s.dev.mem.Read(s.off, s.size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDevice, int(s.off+s.size), int(s.dev.mem.Size()))
	}
	return data, nil
}

// Discard frees the region without reading it.
func (s *wasmStorage) Discard() {
	s.freed.Do(func() { s.dev.free(s.off, s.size) })
}

// Transfer lends the region: the receiver copies it and then frees it.
func (s *wasmStorage) Transfer() (buffer.Ticket, error) {
	data, err := s.Host()
	if err != nil {
		return nil, err
	}
	return &buffer.Borrowed{
		Data:      data[:len(data):len(data)],
		Container: s.dev.mem,
		Release: func() {
			s.freed.Do(func() { s.dev.free(s.off, s.size) })
		},
	}, nil
}
