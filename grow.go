// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

// grow advances the break by at least bytes, rounded up to a whole number
// of pages and then up to a multiple of heapGrowthIncrement pages (§4.2).
// It returns the address of the start of the newly acquired region (the
// break's value before growth) and the number of bytes acquired. Callers
// must hold h.mu and have already called ensureInit.
func (h *Heap) grow(bytes uintptr) (newRegionStart uintptr, grown uintptr) {
	grown = roundUpPages(bytes, h.arena.PageSize())
	newRegionStart = h.end
	h.end = uintptr(h.arena.ExtendBreak(grown))
	return
}
