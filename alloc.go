// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Allocate services a variable sized allocation request (§4.1). It returns
// nil for a zero size request, with no state change, and nil is also the
// only failure signal -- there is no structured error channel (§7).
func (h *Heap) Allocate(size int) unsafe.Pointer {
	h.enter()
	defer h.leave()

	return h.allocate(uintptr(size))
}

func (h *Heap) allocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	s := roundUp8(size)
	if s >= mmapThreshold {
		return h.allocateLarge(s)
	}

	h.ensureInit()

	var hit *block
	h.free.forEach(func(b *block) bool {
		if b.length >= s {
			hit = b
			return false
		}

		return true
	})

	if hit != nil {
		return h.placeInto(hit, s)
	}

	return h.allocateMiss(s)
}

// allocateMiss handles the case where no free block is large enough: grow
// the heap, either by extending a tail block flush with the break or by
// installing a brand new block past it, then place into that block (§4.1
// "On a miss").
func (h *Heap) allocateMiss(s uintptr) unsafe.Pointer {
	if tail := h.free.tail; tail != nil && tail.end() == h.end {
		need := s + uintptr(blockHeaderSize) - tail.length
		_, grown := h.grow(need)
		tail.length += grown
		return h.placeInto(tail, s)
	}

	region, grown := h.grow(s + uintptr(blockHeaderSize))
	nb := (*block)(unsafe.Pointer(region))
	nb.length = grown - uintptr(blockHeaderSize)
	h.free.pushBack(nb)
	return h.placeInto(nb, s)
}

// placeInto converts free block b, known to satisfy b.length >= s, into an
// allocated block of size s and returns its payload address (§4.1 steps
// 1-4).
func (h *Heap) placeInto(b *block, s uintptr) unsafe.Pointer {
	if b.length-s >= splitThreshold {
		// Split: carve the allocation off the front, install the
		// leftover as a new free block in b's exact list position.
		newFreeAddr := b.addr() + uintptr(blockHeaderSize) + s
		newFree := (*block)(unsafe.Pointer(newFreeAddr))
		newFree.length = b.length - s - uintptr(blockHeaderSize)
		h.free.replace(b, newFree)
		b.length = s
	} else {
		// Whole-block consumption: the leftover bytes, strictly less
		// than splitThreshold, are donated to the allocation.
		h.free.unlink(b)
	}

	b.next = nil // §3: next == nil marks an allocated block.

	if h.free.empty() {
		region, grown := h.grow(1)
		nb := (*block)(unsafe.Pointer(region))
		nb.length = grown - uintptr(blockHeaderSize)
		h.free.pushBack(nb)
	}

	return b.payload()
}
