// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Arena is the set of downward (consumed) primitives the allocator core
// assumes, per spec §6. It is the seam between the allocator algorithms
// (the subject of this package) and the operating system: a sequential,
// monotonically non-decreasing program-break primitive and page-aligned
// anonymous mapping. Arena implementations are not expected to be safe for
// concurrent use; Heap serializes all access to its Arena with its own
// mutex (§4.7, §5).
type Arena interface {
	// PageSize returns the platform page size in bytes.
	PageSize() uintptr

	// ExtendBreak advances the arena's program break by exactly
	// deltaBytes and returns the new break address. The break never
	// shrinks.
	ExtendBreak(deltaBytes uintptr) unsafe.Pointer

	// Base returns the current start of the break-managed region. It is
	// fixed once the arena has been grown for the first time.
	Base() unsafe.Pointer

	// MapAnonymous returns a page-aligned, private, read/write anonymous
	// mapping of at least size bytes.
	MapAnonymous(size uintptr) (unsafe.Pointer, error)

	// Unmap releases a mapping previously returned by MapAnonymous. size
	// must be the same value passed to the corresponding MapAnonymous
	// call.
	Unmap(p unsafe.Pointer, size uintptr) error
}
