// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"math"
	"unsafe"
)

// Callocate allocates space for count elements of elemSize bytes each and
// zero-initializes it (§4.4). It reports overflow of count*elemSize by
// returning nil rather than silently wrapping and under-allocating, per the
// §9 design note on integer overflow in the sizing multiply.
func (h *Heap) Callocate(count, elemSize int) unsafe.Pointer {
	if count < 0 || elemSize < 0 {
		return nil
	}

	total, overflowed := mulOverflows(uintptr(count), uintptr(elemSize))
	if overflowed || total > math.MaxInt {
		return nil
	}

	h.enter()
	defer h.leave()

	p := h.allocate(total)
	if p == nil {
		return nil
	}

	zero(p, total)
	return p
}

func mulOverflows(a, b uintptr) (product uintptr, overflowed bool) {
	if a == 0 || b == 0 {
		return 0, false
	}

	product = a * b
	return product, product/a != b
}

func zero(p unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Add(p, i)) = 0
	}
}
