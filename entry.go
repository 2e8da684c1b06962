// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import "sync/atomic"

// entry states (spec.md §4.8). Unregistered -> Pending -> {Fired |
// Cancelled}; Fired and Cancelled are terminal.
const (
	stateUnregistered int32 = iota
	statePending
	stateFired
	stateCancelled
)

func stateString(s int32) string {
	switch s {
	case stateUnregistered:
		return "unregistered"
	case statePending:
		return "pending"
	case stateFired:
		return "fired"
	case stateCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// entry is one record per live sleep (spec.md §3 "TimerEntry"),
// addressed by a stable Token for its lifetime. It is mutated solely
// by the driver goroutine. state is accessed atomically; waker is set
// by the driver from the register command and cleared when the slab
// releases the entry (see the waker field below).
//
// entry doubles as the intrusive doubly-linked list node for whichever
// wheel slot currently owns it (prev/next), matching the teacher's
// TimerLnk/timerLst design (generalized from a 4-wheel cascade to a
// single hashed wheel, spec.md §4.3).
type entry struct {
	idx        uint32
	generation uint32

	deadline Ticks // absolute tick deadline
	rounds   uint64

	state int32 // atomic, one of state{Unregistered,Pending,Fired,Cancelled}

	// interval marks an entry as owned by an IntervalStream: fire()
	// leaves its slab slot allocated (instead of releasing it) so a
	// later cmdReset can re-arm the same token (spec.md §4.9).
	interval bool

	// waker is only ever touched by the driver goroutine: callers hand
	// it a new value through the command channel rather than writing
	// the field directly, so the channel send/receive pair supplies the
	// happens-before edge spec.md §5 asks for (no separate atomic needed).
	waker func()

	prev, next *entry // slot membership; nil/self (detached) otherwise
	slot       uint32 // which slot list holds this entry; wheel.remove uses it
	onSlot     bool   // debug: is it actually linked into a slot list
}

// detached reports whether e is not currently linked into any list.
func (e *entry) detached() bool {
	return e == e.next || (e.next == nil && e.prev == nil)
}

func (e *entry) loadState() int32 { return atomic.LoadInt32(&e.state) }

func (e *entry) storeState(s int32) { atomic.StoreInt32(&e.state, s) }

// casState attempts old->new, returning whether it succeeded.
func (e *entry) casState(old, new int32) bool {
	return atomic.CompareAndSwapInt32(&e.state, old, new)
}

// token returns the stable address of this slot for as long as
// generation matches (spec.md §3 token uniqueness invariant).
func (e *entry) token() Token {
	return Token{index: e.idx, generation: e.generation}
}
