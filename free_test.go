// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeallocateNilIsNoOp(t *testing.T) {
	h := newTestHeap(64, 1<<20)
	h.Deallocate(nil)
	assert.False(t, h.initialized)
}

func TestDeallocateReusesFreedBlock(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(32)
	h.Deallocate(p)

	p2 := h.Allocate(32)
	assert.Equal(t, p, p2, "an immediately refreed block should be handed back out again")
}

func TestDeallocateCoalescesWithPhysicallyAdjacentNeighbors(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	a := h.Allocate(32)
	b := h.Allocate(32)
	h.Allocate(32) // c: keeps b from merging rightward on its own

	before := len(collectFree(h))

	h.Deallocate(b)
	// b alone adds one free block unless it merges with a neighbor; since a
	// and c are still allocated, no merge happens here.
	assert.Equal(t, before+1, len(collectFree(h)))

	h.Deallocate(a)
	// a is physically adjacent to (now free) b: must coalesce into one
	// block rather than appear as two entries.
	free := collectFree(h)
	assert.Equal(t, before+1, len(free))
}

func TestDeallocateFullCoalesceBackToSingleBlock(t *testing.T) {
	h := newTestHeap(4096, 1<<20)
	h.ensureInit()

	totalFree := h.free.head.length

	a := h.Allocate(32)
	b := h.Allocate(32)
	c := h.Allocate(32)

	h.Deallocate(c)
	h.Deallocate(a)
	h.Deallocate(b)

	assert.NoError(t, h.Verify(nil, nil))
	assert.Same(t, h.free.head, h.free.tail, "freeing every block must coalesce back to a single run")
	assert.True(t, h.free.head.length <= totalFree && h.free.head.length > 0)
}

func TestDeallocateOutOfOrderFreesStillCoalesce(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	a := h.Allocate(16)
	b := h.Allocate(16)
	c := h.Allocate(16)
	d := h.Allocate(16)

	// Free in an order that exercises the "before head" and "interior"
	// positional cases rather than a simple left-to-right sweep.
	h.Deallocate(c)
	h.Deallocate(a)
	h.Deallocate(d)
	h.Deallocate(b)

	assert.NoError(t, h.Verify(nil, nil))
	assert.Same(t, h.free.head, h.free.tail)
}

func collectFree(h *Heap) []*block {
	var out []*block
	h.free.forEach(func(b *block) bool {
		out = append(out, b)
		return true
	})

	return out
}
