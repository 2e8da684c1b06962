// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

// hashedWheel is THE CORE data structure (spec.md §4.3): a single
// array of numSlots slot lists plus a wrap-around rounds counter per
// entry, superseding the teacher's four cascaded wheels (wtimer.go's
// W0..W3) per spec.md's explicit "why hashed, not cascading"
// rationale. One wheel with a rounds counter gives O(1) insert and
// amortized O(k/numSlots) per tick, which is sufficient given a
// bounded MaxTimeout.
//
// The wheel is owned exclusively by the driver goroutine (spec.md
// §5); its slot lists reuse the teacher's intrusive entryList.
type hashedWheel struct {
	slots       []entryList
	mask        uint64
	log2Slots   uint
	currentTick Ticks
}

func newHashedWheel(numSlots int) *hashedWheel {
	w := &hashedWheel{
		slots: make([]entryList, numSlots),
		mask:  uint64(numSlots - 1),
	}
	for numSlots>>uint(w.log2Slots) > 1 {
		w.log2Slots++
	}
	for i := range w.slots {
		w.slots[i].init(uint32(i))
	}
	return w
}

func (w *hashedWheel) numSlots() int { return len(w.slots) }

// slotFor computes the slot index and remaining rounds for a deadline
// relative to the wheel's current tick (spec.md §4.3 "Insert").
//
// advance() increments currentTick before visiting a slot, so the
// first tick value it will ever visit again is currentTick+1, not
// currentTick. Counting rounds from (d - currentTick) overcounts by
// one full revolution whenever d-currentTick is an exact multiple of
// numSlots, since that slot's very next visit lands on
// currentTick+numSlots rather than currentTick - subtracting one
// before the shift lines the count up with the ticks advance() will
// actually produce (1, 2, 3, ...).
func (w *hashedWheel) slotFor(deadline Ticks) (slot uint64, rounds uint64) {
	d := deadline.Val()
	slot = d & w.mask
	rounds = (d - w.currentTick.Val() - 1) >> w.log2Slots
	return slot, rounds
}

// insert links e into the slot matching its deadline, computing and
// storing its rounds count. Deadlines at or before currentTick are
// placed in the slot for currentTick+1 with rounds == 0, so the very
// next advance call picks them up (spec.md §4.3: "If deadline_ticks <=
// current_tick, classify as immediately expired and hand back in the
// next expire pass").
func (w *hashedWheel) insert(e *entry) {
	if e.deadline.LE(w.currentTick) {
		// Already due: land in whatever slot the very next advance()
		// call will visit (currentTick+1), not the slot for the
		// current tick, which has already been processed.
		e.rounds = 0
		w.slots[w.currentTick.AddUint64(1).Val()&w.mask].append(e)
		return
	}
	slot, rounds := w.slotFor(e.deadline)
	e.rounds = rounds
	w.slots[slot].append(e)
}

// remove unlinks e from whatever slot currently holds it.
func (w *hashedWheel) remove(e *entry) {
	w.slots[e.slot].rm(e)
}

// advance moves currentTick forward by one and returns every entry
// whose rounds counter has reached zero at the newly-current slot,
// leaving the rest in place with rounds decremented (spec.md §4.3
// "Expire"). Same-slot expirations come out in insertion (FIFO) order,
// matching spec.md §4.4's ordering guarantee.
func (w *hashedWheel) advance() []*entry {
	w.currentTick = w.currentTick.AddUint64(1)
	slotIdx := w.currentTick.Val() & w.mask
	lst := &w.slots[slotIdx]

	var fired []*entry
	lst.forEachSafeRm(func(e *entry) {
		if e.rounds == 0 {
			lst.rm(e)
			fired = append(fired, e)
		} else {
			e.rounds--
		}
	})
	return fired
}
