// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"math"
	"testing"
)

func TestTicksCompare(t *testing.T) {
	cases := []struct {
		a, b       Ticks
		lt, gt, eq bool
	}{
		{NewTicks(1), NewTicks(2), true, false, false},
		{NewTicks(2), NewTicks(1), false, true, false},
		{NewTicks(5), NewTicks(5), false, false, true},
		// wraparound: a is "before" b even though a > b numerically
		{NewTicks(math.MaxUint64), NewTicks(0), true, false, false},
		{NewTicks(0), NewTicks(math.MaxUint64), false, true, false},
	}
	for _, c := range cases {
		if got := c.a.LT(c.b); got != c.lt {
			t.Errorf("%d.LT(%d) = %v, want %v", c.a, c.b, got, c.lt)
		}
		if got := c.a.GT(c.b); got != c.gt {
			t.Errorf("%d.GT(%d) = %v, want %v", c.a, c.b, got, c.gt)
		}
		if got := c.a.EQ(c.b); got != c.eq {
			t.Errorf("%d.EQ(%d) = %v, want %v", c.a, c.b, got, c.eq)
		}
	}
}

func TestTicksAddSub(t *testing.T) {
	a := NewTicks(10)
	if got := a.AddUint64(5); got != NewTicks(15) {
		t.Errorf("AddUint64 = %v, want 15", got)
	}
	if got := a.SubUint64(5); got != NewTicks(5) {
		t.Errorf("SubUint64 = %v, want 5", got)
	}
	if got := a.Add(NewTicks(5)).Sub(NewTicks(5)); got != a {
		t.Errorf("Add then Sub = %v, want %v", got, a)
	}
}

func TestTicksLEGE(t *testing.T) {
	a, b := NewTicks(3), NewTicks(3)
	if !a.LE(b) || !a.GE(b) {
		t.Fatalf("equal ticks should satisfy both LE and GE")
	}
}
