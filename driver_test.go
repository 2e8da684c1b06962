// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"testing"
	"time"

	"github.com/derision-test/glock"
)

func newTestDriver(t *testing.T, clk glock.Clock) *driver {
	t.Helper()
	cfg, err := newConfig(
		WithTickDuration(10*time.Millisecond),
		WithNumSlots(16),
		WithMaxTimeout(time.Minute),
		WithInitialCapacity(4),
		WithMaxCapacity(16),
		WithClock(clk),
	)
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	d := newDriver(cfg)
	d.start()
	t.Cleanup(d.stop)
	return d
}

func TestDriverRegisterAndFire(t *testing.T) {
	clk := glock.NewMockClock()
	d := newTestDriver(t, clk)

	fired := make(chan struct{})
	reply := make(chan registerReply, 1)
	d.cmds <- command{
		kind:         cmdRegister,
		ticksFromNow: 1,
		waker:        func() { close(fired) },
		reply:        reply,
	}
	res := <-reply
	if res.err != nil {
		t.Fatalf("register: %v", res.err)
	}

	clk.BlockingAdvance(10 * time.Millisecond)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("timer did not fire within 1s wall-clock")
	}
}

func TestDriverCancelBeforeFire(t *testing.T) {
	clk := glock.NewMockClock()
	d := newTestDriver(t, clk)

	waked := make(chan struct{})
	reply := make(chan registerReply, 1)
	d.cmds <- command{
		kind:         cmdRegister,
		ticksFromNow: 100,
		waker:        func() { close(waked) },
		reply:        reply,
	}
	res := <-reply
	if res.err != nil {
		t.Fatalf("register: %v", res.err)
	}

	done := make(chan error, 1)
	d.cmds <- command{kind: cmdCancel, tok: res.tok, done: done}
	if err := <-done; err != nil {
		t.Fatalf("cancel: %v", err)
	}

	select {
	case <-waked:
		t.Fatalf("waker should not be invoked by Cancel")
	default:
	}

	// A second cancel on an already-cancelled token should fail.
	done2 := make(chan error, 1)
	d.cmds <- command{kind: cmdCancel, tok: res.tok, done: done2}
	if err := <-done2; err != ErrInvalidToken {
		t.Fatalf("re-cancel on released token = %v, want ErrInvalidToken", err)
	}
}

func TestDriverShutdownWakesPending(t *testing.T) {
	clk := glock.NewMockClock()
	cfg, err := newConfig(
		WithTickDuration(10*time.Millisecond),
		WithNumSlots(16),
		WithMaxTimeout(time.Minute),
		WithInitialCapacity(4),
		WithMaxCapacity(16),
		WithClock(clk),
	)
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	d := newDriver(cfg)
	d.start()

	waked := make(chan struct{})
	reply := make(chan registerReply, 1)
	d.cmds <- command{
		kind:         cmdRegister,
		ticksFromNow: 1000,
		waker:        func() { close(waked) },
		reply:        reply,
	}
	if res := <-reply; res.err != nil {
		t.Fatalf("register: %v", res.err)
	}

	d.stop()

	select {
	case <-waked:
	default:
		t.Fatalf("expected shutdown to invoke the waker of a still-pending entry")
	}
}
