// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/derision-test/glock"
)

// driver is the single goroutine that exclusively owns the wheel and
// slab (spec.md §5 "Driver loop"). Every other goroutine talks to it
// only through the cmds channel; this is what lets wheel/slab mutation
// stay lock-free. Modeled on the teacher's wtimer_run.go/
// wtimer_ticker.go Start/Shutdown pair, generalized from a package-level
// singleton to a per-Timer instance.
type driver struct {
	cfg   *Config
	wheel *hashedWheel
	slab  *slab
	clock glock.Clock

	cmds    chan command
	closeCh chan struct{}
	doneCh  chan struct{}

	wg sync.WaitGroup

	// stopped is set before closeCh is closed, so send() has a
	// non-racy way to refuse new commands instead of relying solely on
	// select's pseudo-random case choice once closeCh is ready.
	stopped int32

	// lastNow detects backwards wall-clock jumps the way the teacher's
	// wtimer_ticker.go badTime handling does, logging instead of
	// silently mis-firing (spec.md §4.6).
	lastNow time.Time
}

func newDriver(cfg *Config) *driver {
	return &driver{
		cfg:     cfg,
		wheel:   newHashedWheel(cfg.NumSlots),
		slab:    newSlab(cfg.InitialCapacity, cfg.MaxCapacity),
		clock:   cfg.Clock,
		cmds:    make(chan command, 256),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (d *driver) start() {
	d.lastNow = d.clock.Now()
	if m := d.cfg.metrics; m != nil {
		m.slabSize.Set(float64(d.slab.len()))
	}
	d.wg.Add(1)
	go d.run()
}

// send enqueues cmd for the driver, reporting false instead of
// blocking forever if the driver has already begun shutting down.
// Commands that do make it into the channel before closeCh closes are
// still answered with ErrShuttingDown by drainShutdown, so callers only
// need to handle the false case here as a fast path.
func (d *driver) send(cmd command) bool {
	if atomic.LoadInt32(&d.stopped) == 1 {
		return false
	}
	select {
	case d.cmds <- cmd:
		return true
	case <-d.closeCh:
		return false
	}
}

// stop signals the driver to exit and waits for it, waking every
// still-pending entry through drainShutdown (spec.md §4.7 "Shutdown").
func (d *driver) stop() {
	atomic.StoreInt32(&d.stopped, 1)
	close(d.closeCh)
	<-d.doneCh
	d.wg.Wait()
}

func (d *driver) run() {
	defer close(d.doneCh)
	defer d.wg.Done()

	tick := d.clock.After(d.cfg.TickDuration)
	for {
		select {
		case <-d.closeCh:
			d.drainShutdown()
			return
		case cmd := <-d.cmds:
			d.handleCommand(cmd)
		case now := <-tick:
			d.handleTick(now)
			tick = d.clock.After(d.cfg.TickDuration)
		}
	}
}

// handleTick advances the wheel by however many ticks have genuinely
// elapsed, firing everything that expires along the way. A backwards
// jump (NTP step, suspended VM) logs a warning and is treated as zero
// elapsed ticks rather than winding the wheel backwards (spec.md §4.6,
// teacher's wtimer_ticker.go "bad time" handling).
func (d *driver) handleTick(now time.Time) {
	elapsed := now.Sub(d.lastNow)
	if elapsed < 0 {
		WARN("wall clock went backwards by %s, treating as zero elapsed ticks\n", -elapsed)
		d.lastNow = now
		return
	}
	d.lastNow = now

	n := int64(elapsed / d.cfg.TickDuration)
	if n < 1 {
		n = 1
	}
	const maxCatchUpTicks = 1 << 20
	if n > maxCatchUpTicks {
		WARN("clamping %d elapsed ticks to %d (large clock jump)\n", n, maxCatchUpTicks)
		n = maxCatchUpTicks
	}

	for i := int64(0); i < n; i++ {
		for _, e := range d.wheel.advance() {
			d.fire(e)
		}
	}
}

// fire transitions e from Pending to Fired and invokes its waker
// outside of any lock. Losing the Pending -> Fired CAS means a
// concurrent Cancel already claimed the entry, in which case there is
// nothing further to do (spec.md §4.8 state machine). A one-shot
// entry's slab slot is released immediately; an interval entry is left
// allocated in the Fired state so handleReset can re-arm it, or
// handleCancel can release it if the stream is stopped before its next
// reset (spec.md §4.9 "Interval reuses its entry").
func (d *driver) fire(e *entry) {
	if !e.casState(statePending, stateFired) {
		return
	}
	if e.waker != nil {
		e.waker()
	}
	d.cfg.metrics.onFired()
	if !e.interval {
		d.slab.release(e)
	}
}

func (d *driver) handleCommand(cmd command) {
	switch cmd.kind {
	case cmdRegister:
		d.handleRegister(cmd)
	case cmdCancel:
		d.handleCancel(cmd)
	case cmdReset:
		d.handleReset(cmd)
	}
}

func (d *driver) handleRegister(cmd command) {
	before := d.slab.len()
	e, err := d.slab.alloc()
	if err != nil {
		cmd.reply <- registerReply{err: err}
		return
	}
	if d.slab.len() != before {
		d.cfg.metrics.onSlabGrow(d.slab.len())
	}

	e.deadline = d.wheel.currentTick.AddUint64(cmd.ticksFromNow)
	e.waker = cmd.waker
	e.interval = cmd.interval
	e.storeState(statePending)
	d.wheel.insert(e)
	d.cfg.metrics.onRegister()

	cmd.reply <- registerReply{tok: e.token()}
}

// handleCancel moves e straight to Cancelled if it is still Pending,
// unlinking it from the wheel and releasing its slot (spec.md §4.4
// "Cancel"). Racing against a fire is resolved by the CAS: whichever
// side wins the Pending transition owns the release.
//
// An interval entry can also be cancelled while sitting between a fire
// and its next reset (state Fired, not linked into any wheel slot,
// slab slot still held per fire's interval handling). That transition
// is handled here too, so Stop() still reclaims the slot instead of
// leaking it.
func (d *driver) handleCancel(cmd command) {
	e, err := d.slab.get(cmd.tok)
	if err != nil {
		cmd.done <- err
		return
	}
	if e.casState(statePending, stateCancelled) {
		d.wheel.remove(e)
		d.cfg.metrics.onCancelled()
		d.slab.release(e)
		cmd.done <- nil
		return
	}
	if e.interval && e.casState(stateFired, stateCancelled) {
		// fire already took this entry off live_timers; only the
		// cancellation itself is counted here.
		if m := d.cfg.metrics; m != nil {
			m.cancelledTotal.Inc()
		}
		d.slab.release(e)
		cmd.done <- nil
		return
	}
	cmd.done <- ErrInactiveTimer
}

// handleReset re-arms an Interval's entry for its next deadline without
// allocating a new slab slot (spec.md §4.9 "Interval reuses its
// entry"). The entry must still be in the slab (not yet released) but
// no longer linked into any wheel slot.
func (d *driver) handleReset(cmd command) {
	e, err := d.slab.get(cmd.tok)
	if err != nil {
		cmd.done <- err
		return
	}
	if !e.casState(stateFired, statePending) {
		cmd.done <- ErrActiveTimer
		return
	}
	// Schedule relative to the entry's own last deadline, not "now",
	// so a steady consumer sees no drift (spec.md §4.9 "Interval must
	// not accumulate scheduling error"). If the consumer fell behind
	// far enough that the computed deadline is already past, collapse
	// the whole backlog into a single immediate catch-up tick and
	// realign to "now" instead of firing once per missed period.
	next := e.deadline.AddUint64(cmd.ticksFromNow)
	if next.LE(d.wheel.currentTick) {
		next = d.wheel.currentTick
	}
	e.deadline = next
	d.wheel.insert(e)
	d.cfg.metrics.onRegister()
	cmd.done <- nil
}

// drainShutdown marks every still-pending entry Cancelled and calls its
// waker so no caller is left blocked forever on Wait/Done (spec.md
// §4.7), then answers any commands still queued with ErrShuttingDown
// rather than leaving callers hanging. The waker carries no error, so a
// Sleep woken here looks to Wait/Done the same as one that fired.
func (d *driver) drainShutdown() {
	for i := range d.wheel.slots {
		lst := &d.wheel.slots[i]
		lst.forEachSafeRm(func(e *entry) {
			if e.casState(statePending, stateCancelled) {
				if e.waker != nil {
					e.waker()
				}
			}
		})
	}
	for {
		select {
		case cmd := <-d.cmds:
			d.replyShutdown(cmd)
		default:
			return
		}
	}
}

func (d *driver) replyShutdown(cmd command) {
	switch cmd.kind {
	case cmdRegister:
		cmd.reply <- registerReply{err: ErrShuttingDown}
	case cmdCancel, cmdReset:
		cmd.done <- ErrShuttingDown
	}
}
