// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import "fmt"

// Token addresses a single slab entry. It is the arena+index handle
// that spec.md §9 calls for in place of a cyclic handle<->driver
// reference: neither side owns the other, the token is just an
// opaque key the command queue carries between them. The generation
// field lets the slab tell a freed-then-reused slot apart from a
// stale reference to the entry that used to live there (spec.md §3,
// "token uniqueness" invariant).
type Token struct {
	index      uint32
	generation uint32
}

// invalidToken is the zero-value sentinel used before a handle has
// been registered with the driver.
var invalidToken = Token{}

func (t Token) valid() bool { return t != invalidToken }

func (t Token) String() string {
	return fmt.Sprintf("tok(%d/%d)", t.index, t.generation)
}
