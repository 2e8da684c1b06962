// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

// Package wheel provides a high performance hashed timer wheel,
// optimised for a high number of concurrently pending timers (100k+)
// with relatively low precision requirements.
//
// The wheel itself is the hard part: an entry slab addressed by
// generational tokens, a single hashed wheel with a per-entry rounds
// counter (no cascading), and a background driver goroutine that owns
// both exclusively. Sleep, Timeout and Interval are thin combinators
// built on top of the one-shot registration protocol.
package wheel

// NAME identifies the package for logging/metrics labels.
const NAME = "wheel"
