// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Resize changes the size of the allocation at ptr, preserving its content
// up to the smaller of the old and new sizes (§4.5). A nil ptr behaves as
// Allocate; a zero newSize behaves as Deallocate and returns nil. Resize
// never returns the original pointer: a new region is always obtained, the
// content copied, and the old region freed.
func (h *Heap) Resize(ptr unsafe.Pointer, newSize int) unsafe.Pointer {
	h.enter()
	defer h.leave()

	if ptr == nil {
		return h.allocate(uintptr(newSize))
	}

	if newSize == 0 {
		h.deallocate(ptr)
		return nil
	}

	oldSize := h.payloadSize(ptr)

	newPtr := h.allocate(uintptr(newSize))
	if newPtr == nil {
		return nil
	}

	copyBytes(newPtr, ptr, minUintptr(oldSize, uintptr(newSize)))
	h.deallocate(ptr)
	return newPtr
}

// payloadSize reports the usable size of a live allocation, whether it
// lives inside the heap or in a large out-of-heap mapping.
func (h *Heap) payloadSize(ptr unsafe.Pointer) uintptr {
	if !h.inHeap(uintptr(ptr)) {
		return largePayloadSize(ptr)
	}

	return blockFromPayload(ptr).length
}

func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Add(dst, i)) = *(*byte)(unsafe.Add(src, i))
	}
}

func minUintptr(a, b uintptr) uintptr {
	if a < b {
		return a
	}

	return b
}
