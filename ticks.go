// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"strconv"
)

// Ticks represents a monotonically increasing count of driver ticks.
// It has no fixed reference value: two Ticks can be compared safely as
// long as the true difference between them does not exceed half the
// uint64 range, which in practice never happens for a wheel bounded by
// MaxTimeout (spec.md §3 "Ticks" invariant, simplified from the
// teacher's 48-bit packed Ticks since a single hashed wheel no longer
// needs to fit the tick counter alongside wheel-selection bits).
type Ticks uint64

// NewTicks creates a Ticks value from a raw uint64.
func NewTicks(u uint64) Ticks { return Ticks(u) }

// Val returns the ticks value as a uint64.
func (t Ticks) Val() uint64 { return uint64(t) }

// EQ reports whether t == u, accounting for uint64 wraparound.
func (t Ticks) EQ(u Ticks) bool { return t == u }

// NE reports whether t != u.
func (t Ticks) NE(u Ticks) bool { return t != u }

// LT reports whether t < u, interpreting t-u as a signed 64-bit delta
// (so callers can compare ticks across a wraparound boundary).
func (t Ticks) LT(u Ticks) bool { return int64(t-u) < 0 }

// GT reports whether t > u.
func (t Ticks) GT(u Ticks) bool { return int64(t-u) > 0 }

// GE reports whether t >= u.
func (t Ticks) GE(u Ticks) bool { return int64(t-u) >= 0 }

// LE reports whether t <= u.
func (t Ticks) LE(u Ticks) bool { return int64(t-u) <= 0 }

// Add returns t+u.
func (t Ticks) Add(u Ticks) Ticks { return t + u }

// Sub returns t-u.
func (t Ticks) Sub(u Ticks) Ticks { return t - u }

// AddUint64 returns t+u.
func (t Ticks) AddUint64(u uint64) Ticks { return t + Ticks(u) }

// SubUint64 returns t-u.
func (t Ticks) SubUint64(u uint64) Ticks { return t - Ticks(u) }

// String formats the ticks value for debugging/log output.
func (t Ticks) String() string { return strconv.FormatUint(uint64(t), 10) }
