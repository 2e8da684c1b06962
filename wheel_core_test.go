// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import "testing"

func TestHashedWheelImmediateDeadlineFiresNextAdvance(t *testing.T) {
	w := newHashedWheel(8)
	s := newSlab(1, 1)
	e, _ := s.alloc()
	e.deadline = NewTicks(0) // due immediately
	w.insert(e)

	fired := w.advance()
	if len(fired) != 1 || fired[0] != e {
		t.Fatalf("expected e to fire on first advance, got %v", fired)
	}
}

func TestHashedWheelMultiLapRounds(t *testing.T) {
	w := newHashedWheel(8) // 3 bits of slot, so a deadline of 11 wraps one lap
	s := newSlab(1, 1)
	e, _ := s.alloc()
	e.deadline = NewTicks(11)
	w.insert(e)

	if e.rounds != 1 {
		t.Fatalf("rounds = %d, want 1 for an 11-tick deadline on an 8-slot wheel", e.rounds)
	}

	for i := 0; i < 11; i++ {
		fired := w.advance()
		if i < 10 {
			if len(fired) != 0 {
				t.Fatalf("advance %d fired early: %v", i, fired)
			}
			continue
		}
		if len(fired) != 1 || fired[0] != e {
			t.Fatalf("advance %d = %v, want e to fire", i, fired)
		}
	}
}

// TestHashedWheelExactMultipleOfNumSlots guards against an off-by-one
// revolution: a deadline exactly numSlots ticks out must fire on that
// tick, not one full revolution late.
func TestHashedWheelExactMultipleOfNumSlots(t *testing.T) {
	w := newHashedWheel(8)
	s := newSlab(1, 1)
	e, _ := s.alloc()
	e.deadline = NewTicks(8)
	w.insert(e)

	if e.rounds != 0 {
		t.Fatalf("rounds = %d, want 0 for a deadline exactly one revolution out", e.rounds)
	}

	for i := 0; i < 8; i++ {
		fired := w.advance()
		if i < 7 {
			if len(fired) != 0 {
				t.Fatalf("advance %d fired early: %v", i, fired)
			}
			continue
		}
		if len(fired) != 1 || fired[0] != e {
			t.Fatalf("advance %d = %v, want e to fire exactly at tick 8", i, fired)
		}
	}
}

func TestHashedWheelRemove(t *testing.T) {
	w := newHashedWheel(8)
	s := newSlab(1, 1)
	e, _ := s.alloc()
	e.deadline = NewTicks(3)
	w.insert(e)
	w.remove(e)

	for i := 0; i < 5; i++ {
		if fired := w.advance(); len(fired) != 0 {
			t.Fatalf("removed entry fired anyway: %v", fired)
		}
	}
}

func TestHashedWheelFIFOWithinSlot(t *testing.T) {
	w := newHashedWheel(8)
	s := newSlab(4, 4)

	var want []uint32
	for i := 0; i < 3; i++ {
		e, _ := s.alloc()
		e.deadline = NewTicks(2)
		w.insert(e)
		want = append(want, e.idx)
	}

	w.advance()
	fired := w.advance()
	if len(fired) != 3 {
		t.Fatalf("expected 3 entries to fire together, got %d", len(fired))
	}
	for i, e := range fired {
		if e.idx != want[i] {
			t.Fatalf("fire order[%d] = %d, want %d (FIFO within slot)", i, e.idx, want[i])
		}
	}
}
