// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"sync"
	"unsafe"

	"modernc.org/mathutil"
)

// Configuration constants, §6.
const (
	// mmapThreshold is the rounded request size at or above which
	// allocation bypasses the heap and is served by an anonymous
	// mapping (§4.6).
	mmapThreshold = 128 * 1024

	// heapGrowthIncrement is the multiple of the page size the heap
	// grows by, rounded up to (§4.2).
	heapGrowthIncrement = 4

	// splitThreshold is the minimum leftover size, including header,
	// required to carve a new free block off an allocation (§4.1).
	splitThreshold = uintptr(blockHeaderSize) + alignQuantum
)

// Heap is a single allocator instance: a program-managed heap grown from an
// Arena, plus the free list and large-allocation bookkeeping needed to
// service Allocate, Deallocate, Callocate and Resize (§4). Per §9's
// allowance ("a rewrite may encapsulate them in a single allocator value"),
// all of the process-wide state spec.md describes as globals lives here
// instead, behind one mutex -- the same "Big Kernel Lock" shape as
// dbm.DB.bkl, entered and left by (*Heap).enter/(*Heap).leave.
type Heap struct {
	mu sync.Mutex

	arena Arena

	initialized bool
	start       uintptr // start_brk
	end         uintptr // end_brk, monotonically non-decreasing

	free freeList

	large map[uintptr]uintptr // payload address -> mapping size, for Verify/Stats only
}

// NewHeap returns a Heap backed by arena. The heap is lazily initialized on
// the first allocation (§3 "Lifecycles").
func NewHeap(arena Arena) *Heap {
	return &Heap{arena: arena, large: map[uintptr]uintptr{}}
}

// defaultHeap is the process-wide Heap used by the package-level
// Allocate/Deallocate/Callocate/Resize functions, mirroring libc's process
// global malloc/free/calloc/realloc.
var defaultHeap = newDefaultHeap()

func newDefaultHeap() *Heap {
	arena, err := NewDefaultArena()
	if err != nil {
		// Spec §7: OS allocation failure propagation is undefined in
		// the core; the process-wide default heap has nowhere to
		// report construction failure to, so it panics rather than
		// silently handing out a heap that cannot grow at all.
		panic("heapalloc: failed to initialize default arena: " + err.Error())
	}

	return NewHeap(arena)
}

func (h *Heap) enter() { h.mu.Lock() }
func (h *Heap) leave() { h.mu.Unlock() }

// ensureInit performs lazy heap initialization (§3): acquire one page,
// install one free block spanning it, and set both free list ends to that
// block. Callers must hold h.mu.
func (h *Heap) ensureInit() {
	if h.initialized {
		return
	}

	h.start = uintptr(h.arena.Base())
	// Boot is exactly one page, independent of heapGrowthIncrement: §3
	// "Lifecycles" and the §8 scenario 2 worked example both pin
	// end_brk - start_brk to a single page on first init; only
	// subsequent growth (grow.go) rounds up by heapGrowthIncrement.
	newBreak := h.arena.ExtendBreak(h.arena.PageSize())
	h.end = uintptr(newBreak)

	b := (*block)(unsafe.Pointer(h.start))
	b.length = h.end - h.start - uintptr(blockHeaderSize)
	h.free.pushBack(b)

	h.initialized = true
}

// roundUpPages rounds bytes up to a multiple of pageSize * heapGrowthIncrement.
func roundUpPages(bytes, pageSize uintptr) uintptr {
	pages := (bytes + pageSize - 1) / pageSize
	pages = uintptr(mathutil.MaxInt64(int64(pages), 1))
	increment := uintptr(heapGrowthIncrement)
	rounded := (pages + increment - 1) / increment * increment
	return rounded * pageSize
}

// inHeap reports whether p falls within [start, end], the in-heap range
// per §7 ("pointers equal to end_brk are treated as in-heap").
func (h *Heap) inHeap(p uintptr) bool {
	return p >= h.start && p <= h.end
}
