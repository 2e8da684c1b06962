// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"context"
	"io"
	"sync"
	"time"
)

// Timer is the top-level facility (spec.md §4.1): it owns one driver
// goroutine, one wheel, one slab, and hands out Sleep handles built
// against them. Construct one with New and Close it when done; a
// Timer is safe for concurrent use by any number of goroutines.
type Timer struct {
	cfg       *Config
	drv       *driver
	closeOnce sync.Once
}

// New builds and starts a Timer (spec.md §4.1 "Construction").
func New(opts ...Option) (*Timer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	drv := newDriver(cfg)
	drv.start()
	return &Timer{cfg: cfg, drv: drv}, nil
}

// Close stops the driver goroutine and wakes every still-pending Sleep
// (spec.md §4.7): its Done channel closes and its Wait returns nil, not
// ErrShuttingDown. Later registrations and cancellations return
// ErrShuttingDown. Idempotent.
func (t *Timer) Close() {
	t.closeOnce.Do(func() { t.drv.stop() })
}

// ticksFromDuration rounds d up to a whole number of ticks, so a
// caller never wakes earlier than requested (spec.md §4.1 "Duration
// resolution").
func ticksFromDuration(d time.Duration, tick time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	n := uint64(d / tick)
	if d%tick != 0 {
		n++
	}
	return n
}

// Sleep registers a new one-shot timer that fires after d (spec.md
// §4.4). Durations beyond MaxTimeout are rejected with ErrTooLong
// before ever reaching the driver.
func (t *Timer) Sleep(d time.Duration) (*Sleep, error) {
	return t.sleep(d, false)
}

// sleep is Sleep's internal form, with an extra interval flag only
// IntervalStream sets: it marks the resulting entry's slot as reusable
// across firings instead of released on fire (spec.md §4.9).
func (t *Timer) sleep(d time.Duration, interval bool) (*Sleep, error) {
	if d > t.cfg.MaxTimeout {
		return nil, ErrTooLong
	}
	s := newSleep(t.drv, invalidToken)
	reply := make(chan registerReply, 1)
	if !t.drv.send(command{
		kind:         cmdRegister,
		ticksFromNow: ticksFromDuration(d, t.cfg.TickDuration),
		waker:        s.waker,
		reply:        reply,
		interval:     interval,
	}) {
		return nil, ErrShuttingDown
	}
	res := <-reply
	if res.err != nil {
		return nil, res.err
	}
	s.tok = res.tok
	return s, nil
}

// timeoutResult carries op's outcome across Timeout's internal
// goroutine boundary.
type timeoutResult[T any] struct {
	val T
	err error
}

// Timeout races op against a d-duration sleep (spec.md §4.5
// "Timeout combinator"), returning op's result if it finishes first or
// a timedOutError if the sleep wins. op is started in its own
// goroutine and is not forcibly killed on timeout - it is the caller's
// responsibility to make op respect ctx cancellation if abandoning it
// promptly matters, matching the original's cooperative-cancellation
// model (spec.md §4.5 Non-goals: "no hard goroutine cancellation").
func Timeout[T any](ctx context.Context, t *Timer, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T

	s, err := t.Sleep(d)
	if err != nil {
		return zero, err
	}
	defer s.Cancel()

	resultCh := make(chan timeoutResult[T], 1)
	go func() {
		v, err := op(ctx)
		resultCh <- timeoutResult[T]{val: v, err: err}
	}()

	select {
	case r := <-resultCh:
		return r.val, r.err
	case <-s.Done():
		return zero, timedOutError{}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TimeoutStream applies a fresh per-item deadline to values pulled off
// an existing channel (spec.md §4.5 "TimeoutStream"), so a producer
// that stalls between items surfaces a timedOutError instead of
// blocking Next forever.
type TimeoutStream[T any] struct {
	timer *Timer
	d     time.Duration
	in    <-chan T
}

// NewTimeoutStream wraps in with a d-duration per-item deadline.
func NewTimeoutStream[T any](t *Timer, d time.Duration, in <-chan T) *TimeoutStream[T] {
	return &TimeoutStream[T]{timer: t, d: d, in: in}
}

// Next returns the next value from the wrapped channel, io.EOF once it
// closes, a timedOutError if d elapses first, or ctx.Err() if ctx is
// cancelled first.
func (ts *TimeoutStream[T]) Next(ctx context.Context) (T, error) {
	var zero T

	s, err := ts.timer.Sleep(ts.d)
	if err != nil {
		return zero, err
	}
	defer s.Cancel()

	select {
	case v, ok := <-ts.in:
		if !ok {
			return zero, io.EOF
		}
		return v, nil
	case <-s.Done():
		return zero, timedOutError{}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
