// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// wordSize is the platform's size_t-equivalent width.
const wordSize = unsafe.Sizeof(uintptr(0))

// largePrefixWords is the number of size_t-sized words prepended to a large
// (mmap-backed) allocation ahead of its payload: one on 64-bit hosts, two
// on 32-bit hosts, so that the payload itself always starts 8-byte aligned
// (§3 "Large (out-of-heap) allocations").
var largePrefixWords = func() uintptr {
	if wordSize >= 8 {
		return 1
	}

	return 2
}()

// largePrefixSize is the total prefix byte length; it is 8 on both 32-bit
// and 64-bit hosts by construction (1*8 or 2*4).
var largePrefixSize = largePrefixWords * wordSize

// allocateLarge services requests at or above mmapThreshold (§4.6): an
// anonymous, page-aligned mapping with an embedded length prefix, entirely
// bypassing the heap and free list.
func (h *Heap) allocateLarge(s uintptr) unsafe.Pointer {
	mappingLen := roundUpToPageSize(s+largePrefixSize, h.arena.PageSize())

	base, err := h.arena.MapAnonymous(mappingLen)
	if err != nil {
		return nil
	}

	*(*uintptr)(base) = mappingLen

	payload := unsafe.Add(base, largePrefixSize)
	h.large[uintptr(payload)] = mappingLen
	return payload
}

// deallocateLarge releases a mapping obtained from allocateLarge (§4.3
// "outside the heap").
func (h *Heap) deallocateLarge(ptr unsafe.Pointer) {
	base := unsafe.Add(ptr, -int(largePrefixSize))
	mappingLen := *(*uintptr)(base)

	delete(h.large, uintptr(ptr))
	h.arena.Unmap(base, mappingLen)
}

// largePayloadSize returns the usable payload size of a large allocation:
// the stored mapping length minus the prefix. Because the mapping length is
// rounded up to whole pages, this can exceed the size originally requested.
// Per §9's design note, this must subtract the full prefix size, not just
// one word, to avoid under-counting on 32-bit hosts.
func largePayloadSize(ptr unsafe.Pointer) uintptr {
	base := unsafe.Add(ptr, -int(largePrefixSize))
	mappingLen := *(*uintptr)(base)
	return mappingLen - largePrefixSize
}

func roundUpToPageSize(n, pageSize uintptr) uintptr {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
