package buffer

import "github.com/wippyai/arraybridge/errors"

const hostDevice = "host"

// heapStorage is a Go heap allocation that is its own container.
type heapStorage struct {
	data    []byte
	release ReleaseFunc
	size    int
}

// FromBytes wraps data as a self-owned host buffer. release runs when the
// eventual owner frees the memory and may be nil.
func FromBytes(data []byte, release ReleaseFunc) *Buffer {
	return New(&heapStorage{data: data, release: release, size: len(data)})
}

func (s *heapStorage) Size() int      { return s.size }
func (s *heapStorage) OnHost() bool   { return true }
func (s *heapStorage) Device() string { return hostDevice }

func (s *heapStorage) Host() ([]byte, error) {
	return s.data, nil
}

func (s *heapStorage) Transfer() (Ticket, error) {
	t := &Owned{Data: s.data, Release: s.release}
	s.data, s.release = nil, nil
	return t, nil
}

// viewStorage is a window into a larger host container.
type viewStorage struct {
	container []byte
	release   ReleaseFunc
	offset    int
	size      int
}

// ViewOf wraps container[offset:offset+size] as a foreign-owned host buffer.
// release frees the whole container.
func ViewOf(container []byte, offset, size int, release ReleaseFunc) (*Buffer, error) {
	if offset < 0 || size < 0 || offset+size > len(container) {
		return nil, errors.OutOfBounds(errors.PhaseTransfer, offset+size, len(container))
	}
	return New(&viewStorage{
		container: container,
		offset:    offset,
		size:      size,
		release:   release,
	}), nil
}

func (s *viewStorage) Size() int      { return s.size }
func (s *viewStorage) OnHost() bool   { return true }
func (s *viewStorage) Device() string { return hostDevice }

func (s *viewStorage) Host() ([]byte, error) {
	return s.container[s.offset : s.offset+s.size : s.offset+s.size], nil
}

func (s *viewStorage) Transfer() (Ticket, error) {
	t := &Borrowed{
		Data:      s.container[s.offset : s.offset+s.size : s.offset+s.size],
		Container: s.container,
		Release:   s.release,
	}
	s.container, s.release = nil, nil
	return t, nil
}
