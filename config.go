// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"time"

	"github.com/derision-test/glock"
)

// Defaults mirror spec.md §4.1's "reasonable defaults" note: one
// revolution of a 10ms tick over 1<<14 slots is roughly 163s, so
// deadlines within that span need no lap rounds, which is plenty for
// the common Sleep/Timeout use cases this package targets.
const (
	defaultTickDuration    = 10 * time.Millisecond
	defaultNumSlots        = 1 << 14
	defaultMaxTimeout      = 10 * time.Minute
	defaultInitialCapacity = 1024
	defaultMaxCapacity     = 1 << 20
)

// Config holds the fully-resolved parameters for a Timer (spec.md
// §4.1 "Configuration"). Build it through New's functional Options
// rather than constructing it directly, the way sourcegraph's
// goroutine.NewPeriodicGoroutine and its withClock Option do.
type Config struct {
	TickDuration    time.Duration
	NumSlots        int
	MaxTimeout      time.Duration
	InitialCapacity int
	MaxCapacity     int
	Clock           glock.Clock
	metrics         *metricsConfig
}

// Option configures a Timer at construction time.
type Option func(*Config)

// WithTickDuration sets the driver's ticker period. Must be >= 1ms.
func WithTickDuration(d time.Duration) Option {
	return func(c *Config) { c.TickDuration = d }
}

// WithNumSlots sets the wheel's slot count. Must be a power of two,
// >= 8 (spec.md §4.3 "the slot count must be a power of two so that
// slot selection can use a mask instead of a modulo").
func WithNumSlots(n int) Option {
	return func(c *Config) { c.NumSlots = n }
}

// WithMaxTimeout bounds how far in the future a Sleep/Timeout/Interval
// deadline may be requested (spec.md §4.1, §6 ErrTooLong).
func WithMaxTimeout(d time.Duration) Option {
	return func(c *Config) { c.MaxTimeout = d }
}

// WithInitialCapacity sets how many slab entries are preallocated at
// Timer construction.
func WithInitialCapacity(n int) Option {
	return func(c *Config) { c.InitialCapacity = n }
}

// WithMaxCapacity bounds how large the entry slab may grow before
// registration starts failing with ErrCapacityExceeded.
func WithMaxCapacity(n int) Option {
	return func(c *Config) { c.MaxCapacity = n }
}

// WithClock overrides the facility's time source, almost always to
// inject a glock.MockClock in tests (spec.md §4.6 "the driver must
// not call time.Now/time.NewTicker directly, to stay testable without
// a real clock").
func WithClock(clk glock.Clock) Option {
	return func(c *Config) { c.Clock = clk }
}

// WithMetrics turns on Prometheus instrumentation for the resulting
// Timer, registering its collectors against reg (spec.md §9's optional
// observability surface). Passing a nil reg leaves metrics disabled.
func WithMetrics(reg prometheusRegisterer, namespace string) Option {
	return func(c *Config) {
		if reg == nil {
			return
		}
		c.metrics = newMetricsConfig(reg, namespace)
	}
}

func newConfig(opts ...Option) (*Config, error) {
	c := &Config{
		TickDuration:    defaultTickDuration,
		NumSlots:        defaultNumSlots,
		MaxTimeout:      defaultMaxTimeout,
		InitialCapacity: defaultInitialCapacity,
		MaxCapacity:     defaultMaxCapacity,
	}
	for _, o := range opts {
		o(c)
	}
	if c.Clock == nil {
		c.Clock = glock.NewRealClock()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.TickDuration < time.Millisecond {
		ERR("invalid TickDuration %s: must be >= 1ms\n", c.TickDuration)
		return ErrInvalidParameters
	}
	if c.NumSlots < 8 || c.NumSlots&(c.NumSlots-1) != 0 {
		ERR("invalid NumSlots %d: must be a power of two >= 8\n", c.NumSlots)
		return ErrInvalidParameters
	}
	if c.MaxTimeout < c.TickDuration {
		ERR("invalid MaxTimeout %s: must be >= TickDuration %s\n",
			c.MaxTimeout, c.TickDuration)
		return ErrInvalidParameters
	}
	if c.MaxCapacity <= 0 {
		ERR("invalid MaxCapacity %d: must be > 0\n", c.MaxCapacity)
		return ErrInvalidParameters
	}
	if c.InitialCapacity < 0 || c.InitialCapacity > c.MaxCapacity {
		ERR("invalid InitialCapacity %d: must be in [0, MaxCapacity %d]\n",
			c.InitialCapacity, c.MaxCapacity)
		return ErrInvalidParameters
	}
	return nil
}

// maxLapRounds is how many full trips around the wheel MaxTimeout can
// span, given TickDuration and NumSlots. Nothing in the package calls
// it; the rounds counter itself is arbitrary-width.
func (c *Config) maxLapRounds() uint64 {
	ticks := uint64(c.MaxTimeout / c.TickDuration)
	return ticks / uint64(c.NumSlots)
}
