// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

// Commands are how caller goroutines talk to the single driver
// goroutine that owns the wheel and slab (spec.md §4.5 "Registration
// protocol"). A buffered Go channel stands in for the MPSC queue: many
// producers send, the driver is the lone consumer, and the channel
// itself supplies the happens-before edge between a caller's writes
// (deadline, waker) and the driver's reads.
type commandKind int

const (
	cmdRegister commandKind = iota
	cmdCancel
	cmdReset
)

// command is the single envelope type carried over the driver's
// channel; only the fields relevant to kind are populated, mirroring
// the teacher's tagged-request style in wtimer_run.go.
type command struct {
	kind commandKind

	// register: ticksFromNow is relative to whatever tick the driver
	// is on when it processes the command, not an absolute Ticks value
	// - the caller has no safe way to read wheel.currentTick itself,
	// since that field belongs exclusively to the driver goroutine.
	ticksFromNow uint64
	waker        func()
	reply        chan registerReply
	// interval marks the resulting entry as reusable across firings via
	// cmdReset instead of being released on fire (spec.md §4.9).
	interval bool

	// cancel / reset
	tok  Token
	done chan error

	// reset: re-arm an already-fired entry ticksFromNow ticks after its
	// previous deadline.
}

// registerReply carries back the token for a freshly registered entry,
// or an error if the slab was exhausted (spec.md §6 ErrCapacityExceeded)
// or the facility is shutting down (spec.md §6 ErrShuttingDown).
type registerReply struct {
	tok Token
	err error
}
