// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

// slab is the preallocated pool of entry records addressed by stable
// tokens (spec.md §3 "Slab", §4.2). It grows geometrically from
// initialCapacity up to maxCapacity; beyond that alloc fails with
// ErrCapacityExceeded. The free list is LIFO for cache locality,
// matching the teacher's preference for reusing the most recently
// freed structure (spec.md §4.2).
//
// The slab is owned exclusively by the driver goroutine; nothing else
// ever touches it (spec.md §5).
type slab struct {
	entries     []*entry
	free        []uint32 // LIFO stack of free indices
	maxCapacity int
}

func newSlab(initialCapacity, maxCapacity int) *slab {
	s := &slab{
		entries:     make([]*entry, 0, initialCapacity),
		free:        make([]uint32, 0, initialCapacity),
		maxCapacity: maxCapacity,
	}
	s.grow(initialCapacity)
	return s
}

// grow appends n freshly-allocated, generation-0 entries to the slab
// and pushes their indices onto the free list.
func (s *slab) grow(n int) {
	start := len(s.entries)
	for i := 0; i < n; i++ {
		idx := uint32(start + i)
		e := &entry{idx: idx}
		e.next = e
		e.prev = e
		s.entries = append(s.entries, e)
		s.free = append(s.free, idx)
	}
}

// alloc reserves a free entry and returns it, or
// ErrCapacityExceeded if the slab is exhausted and cannot grow
// further (spec.md §4.2).
func (s *slab) alloc() (*entry, error) {
	if len(s.free) == 0 {
		if len(s.entries) >= s.maxCapacity {
			return nil, ErrCapacityExceeded
		}
		want := len(s.entries) * 2
		if want == 0 {
			want = 1
		}
		if want > s.maxCapacity {
			want = s.maxCapacity
		}
		s.grow(want - len(s.entries))
		if len(s.free) == 0 {
			return nil, ErrCapacityExceeded
		}
	}
	idx := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]
	e := s.entries[idx]
	return e, nil
}

// release returns an entry's slot to the free list and bumps its
// generation, so that any Token still referencing it becomes stale
// (spec.md §3 token uniqueness invariant).
func (s *slab) release(e *entry) {
	e.generation++
	e.waker = nil
	e.interval = false
	e.storeState(stateUnregistered)
	s.free = append(s.free, e.idx)
}

// get resolves a token to its entry, returning ErrInvalidToken if the
// token's generation no longer matches (stale/already-freed) or the
// index is out of range.
func (s *slab) get(tok Token) (*entry, error) {
	if int(tok.index) >= len(s.entries) {
		return nil, ErrInvalidToken
	}
	e := s.entries[tok.index]
	if e.generation != tok.generation {
		return nil, ErrInvalidToken
	}
	return e, nil
}

func (s *slab) len() int { return len(s.entries) }
