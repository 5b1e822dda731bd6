package device

import "sort"

// span is a free range of linear memory.
type span struct {
	off, size uint32
}

// arena is a first-fit allocator over a fixed range of offsets.
type arena struct {
	free []span
}

func newArena(base, limit uint32) *arena {
	return &arena{free: []span{{off: base, size: limit - base}}}
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}

// alloc returns the offset of size bytes aligned to align.
func (a *arena) alloc(size, align uint32) (uint32, bool) {
	if size == 0 {
		size = 1
	}
	for i, s := range a.free {
		start := alignUp(s.off, align)
		end := start + size
		if end < start || end > s.off+s.size {
			continue
		}
		var rest []span
		if start > s.off {
			rest = append(rest, span{off: s.off, size: start - s.off})
		}
		if tail := s.off + s.size - end; tail > 0 {
			rest = append(rest, span{off: end, size: tail})
		}
		a.free = append(a.free[:i], append(rest, a.free[i+1:]...)...)
		return start, true
	}
	return 0, false
}

// release returns a range to the free list, merging neighbours.
func (a *arena) release(off, size uint32) {
	if size == 0 {
		size = 1
	}
	a.free = append(a.free, span{off: off, size: size})
	sort.Slice(a.free, func(i, j int) bool { return a.free[i].off < a.free[j].off })

	merged := a.free[:1]
	for _, s := range a.free[1:] {
		last := &merged[len(merged)-1]
		if last.off+last.size == s.off {
			last.size += s.size
			continue
		}
		merged = append(merged, s)
	}
	a.free = merged
}

// available returns the total number of free bytes.
func (a *arena) available() uint32 {
	var n uint32
	for _, s := range a.free {
		n += s.size
	}
	return n
}
