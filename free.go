// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Deallocate returns a previously allocated block to the free list,
// coalescing with physically adjacent neighbors (§4.3). ptr == nil is a
// no-op. Passing a pointer not obtained from Allocate/Callocate/Resize, or
// double-freeing, is undefined behavior, per §7.
func (h *Heap) Deallocate(ptr unsafe.Pointer) {
	h.enter()
	defer h.leave()

	h.deallocate(ptr)
}

func (h *Heap) deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	if !h.inHeap(uintptr(ptr)) {
		h.deallocateLarge(ptr)
		return
	}

	h.deallocateBlock(blockFromPayload(ptr))
}

// deallocateBlock implements the three positional cases of §4.3.
func (h *Heap) deallocateBlock(b *block) {
	switch {
	case b.addr() > h.free.tail.addr():
		h.freeCaseA(b)
	case b.addr() < h.free.head.addr():
		h.freeCaseB(b)
	default:
		h.freeCaseC(b)
	}
}

// freeCaseA handles B past the current tail: absorb into the tail if
// physically adjacent, otherwise append.
func (h *Heap) freeCaseA(b *block) {
	tail := h.free.tail
	if tail.end() == b.addr() {
		tail.length += b.length + uintptr(blockHeaderSize)
		return
	}

	h.free.pushBack(b)
}

// freeCaseB handles B before the current head: absorb the head into B if
// physically adjacent, otherwise prepend B.
func (h *Heap) freeCaseB(b *block) {
	head := h.free.head
	if b.end() == head.addr() {
		b.length += head.length + uintptr(blockHeaderSize)
		b.prev = nil
		b.next = head.next
		if head.next != nil && head.next != heapEnd {
			head.next.prev = b
		} else {
			h.free.tail = b
		}
		h.free.head = b
		return
	}

	h.free.pushFront(b)
}

// freeCaseC handles B strictly between head and tail: merge with the
// physically next block if it is free, otherwise locate B's free-list
// neighbors by directional scan, then check for a left merge.
func (h *Heap) freeCaseC(b *block) {
	var prevFree *block

	next := (*block)(unsafe.Pointer(b.end()))
	if next.free() {
		b.length += next.length + uintptr(blockHeaderSize)
		b.next = next.next
		if next.next != nil && next.next != heapEnd {
			next.next.prev = b
		} else {
			h.free.tail = b
		}

		prevFree = next.prev
	} else {
		var nextFree *block
		prevFree, nextFree = h.locateFreeNeighbors(b)
		b.next = nextFree
		nextFree.prev = b
	}

	if prevFree != nil && prevFree.end() == b.addr() {
		prevFree.length += b.length + uintptr(blockHeaderSize)
		prevFree.next = b.next
		if b.next != nil && b.next != heapEnd {
			b.next.prev = prevFree
		} else {
			h.free.tail = prevFree
		}
		return
	}

	prevFree.next = b
	b.prev = prevFree
}

// locateFreeNeighbors finds the free blocks immediately below and above b
// in address order by scanning from whichever list end is nearer (§4.3
// "Directional scan").
func (h *Heap) locateFreeNeighbors(b *block) (prevFree, nextFree *block) {
	mid := (h.start + h.end) / 2
	if b.addr() < mid {
		cur := h.free.head
		for cur != nil && cur.addr() < b.addr() {
			prevFree = cur
			cur = cur.next
		}

		return prevFree, cur
	}

	cur := h.free.tail
	for cur != nil && cur.addr() > b.addr() {
		nextFree = cur
		cur = cur.prev
	}

	return cur, nextFree
}
