package device

import (
	"context"
	"sync"

	"github.com/wippyai/arraybridge/buffer"

	"go.uber.org/zap"
)

// Discrete simulates an accelerator with its own memory. Buffers live in
// device memory until something reads them from the host, which costs a sync.
type Discrete struct {
	mu    sync.Mutex
	syncs int
	live  int
}

// NewDiscrete creates a discrete device.
func NewDiscrete() *Discrete {
	return &Discrete{}
}

func (d *Discrete) Name() string { return "discrete" }

// Unified is always false: host reads require a sync.
func (d *Discrete) Unified() bool { return false }

// Upload copies data into device memory. The buffer is not host resident.
func (d *Discrete) Upload(data []byte) (*buffer.Buffer, error) {
	mem := make([]byte, len(data))
	copy(mem, data)
	d.mu.Lock()
	d.live++
	d.mu.Unlock()
	return buffer.New(&discreteStorage{dev: d, device: mem, size: len(mem)}), nil
}

// Syncs returns the number of device-to-host transfers performed.
func (d *Discrete) Syncs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syncs
}

// Live returns the number of allocations not yet released.
func (d *Discrete) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

func (d *Discrete) Close(context.Context) error {
	return nil
}

type discreteStorage struct {
	dev    *Discrete
	device []byte
	host   []byte
	size   int
	freed  bool
}

func (s *discreteStorage) Size() int      { return s.size }
func (s *discreteStorage) OnHost() bool   { return s.host != nil }
func (s *discreteStorage) Device() string { return s.dev.Name() }

// Host syncs the region to a host mirror on first use.
func (s *discreteStorage) Host() ([]byte, error) {
	if s.host == nil {
		s.host = make([]byte, len(s.device))
		copy(s.host, s.device)
		s.dev.mu.Lock()
		s.dev.syncs++
		s.dev.mu.Unlock()
		Logger().Debug("synced device buffer to host", zap.Int("bytes", len(s.device)))
	}
	return s.host, nil
}

// Transfer hands over the host mirror, which is its own allocation.
func (s *discreteStorage) Transfer() (buffer.Ticket, error) {
	data, err := s.Host()
	if err != nil {
		return nil, err
	}
	s.device = nil
	return &buffer.Owned{Data: data, Release: s.release}, nil
}

// Discard frees the region without syncing it.
func (s *discreteStorage) Discard() {
	s.device, s.host = nil, nil
	s.release()
}

func (s *discreteStorage) release() {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if !s.freed {
		s.freed = true
		s.dev.live--
	}
}
