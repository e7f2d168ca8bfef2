// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocateRoutesLargeRequestsThroughMmap(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(mmapThreshold)
	assert.NotNil(t, p)
	assert.False(t, h.initialized, "a large request must never touch the heap's break")
	assert.False(t, h.inHeap(uintptr(p)))
}

func TestLargeAllocationIsWritable(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(mmapThreshold + 100)
	assert.NotNil(t, p)

	for i := 0; i < 100; i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(i)
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, byte(i), *(*byte)(unsafe.Add(p, i)))
	}
}

func TestLargeAllocationDeallocateRemovesBookkeeping(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(mmapThreshold)
	assert.Len(t, h.large, 1)

	h.Deallocate(p)
	assert.Len(t, h.large, 0)
}

func TestLargePayloadSizeAccountsForPrefix(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(mmapThreshold)
	mappingLen := h.large[uintptr(p)]

	assert.Equal(t, mappingLen-largePrefixSize, largePayloadSize(p))
}

func TestResizeOnLargeAllocationPreservesContent(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(mmapThreshold)
	*(*byte)(p) = 0xAB

	p2 := h.Resize(p, mmapThreshold*2)
	assert.NotNil(t, p2)
	assert.Equal(t, byte(0xAB), *(*byte)(p2))
}
