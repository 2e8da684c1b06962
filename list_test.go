// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import "testing"

func newTestEntry(idx uint32) *entry {
	e := &entry{idx: idx}
	e.next = e
	e.prev = e
	return e
}

func TestEntryListAppendRm(t *testing.T) {
	var lst entryList
	lst.init(0)

	if !lst.isEmpty() {
		t.Fatalf("new list should be empty")
	}

	a, b, c := newTestEntry(1), newTestEntry(2), newTestEntry(3)
	lst.append(a)
	lst.append(b)
	lst.append(c)

	if lst.isEmpty() {
		t.Fatalf("list with 3 entries reports empty")
	}

	var order []uint32
	lst.forEachSafeRm(func(e *entry) { order = append(order, e.idx) })
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected iteration order: %v", order)
	}

	lst.rm(b)
	if !b.detached() {
		t.Fatalf("rm should leave b detached")
	}

	var after []uint32
	lst.forEachSafeRm(func(e *entry) { after = append(after, e.idx) })
	if len(after) != 2 || after[0] != 1 || after[1] != 3 {
		t.Fatalf("unexpected order after rm: %v", after)
	}
}

func TestEntryListForEachSafeRm(t *testing.T) {
	var lst entryList
	lst.init(0)

	for i := uint32(1); i <= 5; i++ {
		lst.append(newTestEntry(i))
	}

	var seen []uint32
	lst.forEachSafeRm(func(e *entry) {
		seen = append(seen, e.idx)
		lst.rm(e)
	})

	if len(seen) != 5 {
		t.Fatalf("expected to visit 5 entries, got %d", len(seen))
	}
	if !lst.isEmpty() {
		t.Fatalf("list should be empty after removing everything")
	}
}

func TestEntryListRmPanicsOnDetached(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when removing an already-detached entry")
		}
	}()

	var lst entryList
	lst.init(0)
	e := newTestEntry(1)
	lst.append(e)
	lst.rm(e)
	lst.rm(e) // already detached: should panic
}
