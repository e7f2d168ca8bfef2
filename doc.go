// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package heapalloc implements a general purpose dynamic memory allocator:
variable sized allocation, deallocation, zero initialized allocation and
resize, for a single process.

The terms MUST or MUST NOT, where used in this documentation, are a
requirement for any alternative implementation aiming for compatibility with
this one.

Heap

A Heap owns a contiguous byte range [start, end) grown from an Arena (see
arena.go) via a sequential, monotonically non-decreasing break primitive.
Requests at or above mmapThreshold bypass the heap entirely and are served by
anonymous page mappings (see large.go); everything below that threshold is
served from the heap.

Block layout

Every heap block, free or allocated, begins with a header (see block.go)
carrying its payload length, a back-reference to the previous free block and
a forward-reference to the next free block or the heapEnd sentinel. An
allocated block's next field is nil; that is the sole in-band flag
distinguishing allocated from free blocks. The header is sized so that the
payload start satisfies 8 byte alignment, and payload lengths are always
rounded up to a multiple of 8.

Free list

Free blocks are kept on a single, address-ordered, doubly linked list
spanning the whole heap: no per-size-class segregation, no per-thread
caches. The list's head references the lowest addressed free block, its
tail the highest. No two free blocks are ever physically adjacent; deallocation
eagerly coalesces with physically adjacent neighbors before the block
re-enters the list.

Placement

Allocate walks the free list from its head and takes the first block large
enough (first-fit). A chosen block is split if the leftover is large enough
to host another free block; otherwise the whole block is consumed and the
leftover bytes are donated to the allocation, never recovered later.

Growth

When no free block fits, or when the list empties after an allocation, the
heap grows by a fixed multiple of the page size (see grow.go) via the Arena.
The heap never shrinks back to the OS.

Concurrency

A single, non-recursive mutex serializes every public entry point. Allocate
and Deallocate do their work in lock-less internal variants, and Callocate
and Resize are built from those same variants, so the lock is taken exactly
once per public call.
*/
package heapalloc
