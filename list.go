// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

// entryList is an intrusive, circular, doubly-linked list of *entry
// values, addressed through a sentinel head node exactly like the
// teacher's timerLst (timer_lst.go): the head is a real entry used
// only for its prev/next fields, which keeps insert/remove branch-free
// (no nil checks at the ends of the list). Every wheel slot is one of
// these.
//
// There is no internal locking: the driver is the sole mutator of any
// entryList, by construction (spec.md §5).
type entryList struct {
	head entry
	slot uint32 // slot index, copied into each appended entry's slot field
}

func (lst *entryList) init(slot uint32) {
	lst.head.next = &lst.head
	lst.head.prev = &lst.head
	lst.head.onSlot = true
	lst.head.slot = slot
	lst.slot = slot
}

func (lst *entryList) isEmpty() bool {
	return lst.head.next == &lst.head
}

// append adds e at the tail of lst. e must be detached.
func (lst *entryList) append(e *entry) {
	if !e.detached() {
		BUG("entryList.append called on a linked entry: idx %d slot %d\n",
			e.idx, e.slot)
	}
	e.prev = lst.head.prev
	e.next = &lst.head
	e.prev.next = e
	lst.head.prev = e
	e.slot = lst.slot
	e.onSlot = true
}

// rm unlinks e from lst and marks it detached.
func (lst *entryList) rm(e *entry) {
	if e == nil || e.next == nil || e.prev == nil {
		PANIC("entryList.rm called on a nil-linked entry\n")
	}
	if e.detached() {
		PANIC("entryList.rm called on an already-detached entry idx %d\n", e.idx)
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = e
	e.prev = e
	e.onSlot = false
}

// forEachSafeRm iterates lst calling f(e) for every element, tolerant
// of f removing the current element (but not other elements). Mirrors
// the teacher's timerLst.forEachSafeRm.
func (lst *entryList) forEachSafeRm(f func(e *entry)) {
	v := lst.head.next
	for v != &lst.head {
		nxt := v.next
		f(v)
		v = nxt
	}
}
