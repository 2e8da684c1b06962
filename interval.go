// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"context"
	"time"
)

// IntervalStream fires repeatedly every period, reusing a single slab
// entry across firings instead of registering a fresh one each time
// (spec.md §4.9 "Interval"). Grounded on the original's Interval/
// poll_next: each re-arm schedules from the previous deadline rather
// than from "now", so a slow consumer does not accumulate drift -
// translated here from Rust's lazy poll_next into an explicit Next
// call, matching this package's synchronous-registration style.
type IntervalStream struct {
	timer  *Timer
	period time.Duration
	s      *Sleep
}

// Interval starts a new IntervalStream that fires every d (spec.md
// §4.9). The first firing happens after d has elapsed, exactly like a
// plain Sleep(d).
func (t *Timer) Interval(d time.Duration) (*IntervalStream, error) {
	return t.intervalFrom(d, d)
}

// IntervalAt starts an IntervalStream whose first firing happens at
// start, and every d thereafter (spec.md §4.9 "IntervalAt"). A start
// already in the past fires on the very next tick, same as Sleep(0).
func (t *Timer) IntervalAt(start time.Time, d time.Duration) (*IntervalStream, error) {
	first := start.Sub(t.cfg.Clock.Now())
	if first < 0 {
		first = 0
	}
	return t.intervalFrom(first, d)
}

func (t *Timer) intervalFrom(first, period time.Duration) (*IntervalStream, error) {
	if period <= 0 {
		return nil, ErrInvalidParameters
	}
	if first > t.cfg.MaxTimeout || period > t.cfg.MaxTimeout {
		return nil, ErrTooLong
	}
	s, err := t.sleep(first, true)
	if err != nil {
		return nil, err
	}
	return &IntervalStream{timer: t, period: period, s: s}, nil
}

// Next blocks until the next tick fires, then re-arms the stream for
// the following one. It returns ctx.Err() if ctx is cancelled before
// the tick fires, leaving the stream still armed for a later Next
// call. It returns ErrShuttingDown if the owning Timer is closed while
// waiting.
func (is *IntervalStream) Next(ctx context.Context) error {
	select {
	case <-is.s.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan error, 1)
	is.s.rearm()
	if !is.timer.drv.send(command{
		kind:         cmdReset,
		tok:          is.s.tok,
		ticksFromNow: ticksFromDuration(is.period, is.timer.cfg.TickDuration),
		done:         done,
	}) {
		return ErrShuttingDown
	}
	return <-done
}

// Stop cancels the stream's underlying entry, so any in-flight Next
// call unblocks with ErrInvalidToken (its re-arm finds the entry already
// released) instead of waiting out a tick that will never come.
func (is *IntervalStream) Stop() error {
	return is.s.Cancel()
}
