// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Stats summarizes a Heap's current state, in the spirit of lldb.AllocStats.
type Stats struct {
	HeapBytes        uintptr // end - start
	FreeBytes        uintptr // sum of free block payloads (header excluded)
	FreeBlocks       int
	AllocatedBytes   uintptr // sum of allocated block payloads, in-heap only
	AllocatedBlocks  int
	LargeAllocations int
	LargeBytes       uintptr // total bytes mapped for large allocations, prefix included
}

// Verify walks the heap's physical tiling and its free list, checking every
// invariant listed in §8. Violations are reported to log, one at a time, in
// the order encountered; log returning false aborts the walk early, mirroring
// lldb.Allocator.Verify. If stats is non-nil it receives a snapshot collected
// during the same pass. Verify returns the first error log chose to abort
// on, or nil if the walk completed (whether or not violations were found).
//
// Verify is intended for tests and diagnostics, not the allocation hot path.
func (h *Heap) Verify(log func(error) bool, stats *Stats) error {
	h.enter()
	defer h.leave()

	if !h.initialized {
		return nil
	}

	// abort reports err to log (if any) and returns it if the walk should
	// stop, or nil to keep going.
	abort := func(err error) error {
		if log != nil && log(err) {
			return nil
		}

		return err
	}

	if h.arena.PageSize() != 0 && h.end%h.arena.PageSize() != 0 {
		if err := abort(verifyErrorf(h.end, "end_brk is not page aligned")); err != nil {
			return err
		}
	}

	byAddr := make(map[uintptr]*block)

	var prevPhysical *block
	for cur := h.start; cur < h.end; {
		b := (*block)(unsafe.Pointer(cur))

		if verr := h.verifyBlock(cur, b, prevPhysical); verr != nil {
			if err := abort(verr); err != nil {
				return err
			}
		}

		if stats != nil {
			if b.free() {
				stats.FreeBytes += b.length
				stats.FreeBlocks++
			} else {
				stats.AllocatedBytes += b.length
				stats.AllocatedBlocks++
			}
		}

		byAddr[cur] = b
		prevPhysical = b
		cur = b.end()
	}

	if stats != nil {
		stats.HeapBytes = h.end - h.start
		for _, mappingLen := range h.large {
			stats.LargeAllocations++
			stats.LargeBytes += mappingLen
		}
	}

	if verr := h.verifyFreeList(byAddr); verr != nil {
		if err := abort(verr); err != nil {
			return err
		}
	}

	return nil
}

// verifyBlock checks the per-block invariants of §8: payload alignment,
// length alignment, tiling within end_brk, and no two physically adjacent
// free blocks (a missed coalesce).
func (h *Heap) verifyBlock(cur uintptr, b, prevPhysical *block) error {
	if uintptr(b.payload())%alignQuantum != 0 {
		return verifyErrorf(cur, "payload is not 8-byte aligned")
	}

	if b.length%alignQuantum != 0 {
		return verifyErrorf(cur, "block length %d is not a multiple of %d", b.length, alignQuantum)
	}

	if b.end() > h.end {
		return verifyErrorf(cur, "block extends past end_brk")
	}

	if prevPhysical != nil && prevPhysical.free() && b.free() {
		return verifyErrorf(cur, "physically adjacent to a free block without having been coalesced")
	}

	return nil
}

// verifyFreeList checks that the free list is address ordered, properly
// back-linked, terminated correctly at both ends, and in exact agreement
// with which physical blocks are actually free.
func (h *Heap) verifyFreeList(byAddr map[uintptr]*block) error {
	anyFree := false
	for _, b := range byAddr {
		if b.free() {
			anyFree = true
			break
		}
	}

	if anyFree != !h.free.empty() {
		return verifyErrorf(h.start, "free list emptiness disagrees with physical tiling")
	}

	if h.free.empty() {
		return nil
	}

	if h.free.head.prev != nil {
		return verifyErrorf(h.free.head.addr(), "free list head has a non-nil prev")
	}

	if h.free.tail.next != heapEnd {
		return verifyErrorf(h.free.tail.addr(), "free list tail does not terminate at heapEnd")
	}

	seen := make(map[uintptr]bool, len(byAddr))

	var prevFree *block
	var err error
	h.free.forEach(func(b *block) bool {
		if _, ok := byAddr[b.addr()]; !ok {
			err = verifyErrorf(b.addr(), "free list entry does not correspond to a physical block")
			return false
		}

		if !b.free() {
			err = verifyErrorf(b.addr(), "free list entry is marked allocated (next == nil)")
			return false
		}

		if prevFree != nil {
			if b.addr() <= prevFree.addr() {
				err = verifyErrorf(b.addr(), "free list is not in strictly increasing address order")
				return false
			}

			if b.prev != prevFree {
				err = verifyErrorf(b.addr(), "free block's prev does not match its predecessor in the list")
				return false
			}
		}

		seen[b.addr()] = true
		prevFree = b
		return true
	})
	if err != nil {
		return err
	}

	for addr, b := range byAddr {
		if b.free() && !seen[addr] {
			return verifyErrorf(addr, "physically free block is not reachable from the free list")
		}
	}

	return nil
}
