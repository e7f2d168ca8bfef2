// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestResizeNilActsAsAllocate(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Resize(nil, 16)
	assert.NotNil(t, p)
	assert.Equal(t, uintptr(16), blockFromPayload(p).length)
}

func TestResizeZeroActsAsDeallocate(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(16)
	got := h.Resize(p, 0)
	assert.Nil(t, got)
}

func TestResizeGrowingPreservesContent(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(16)
	for i := 0; i < 16; i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(i + 1)
	}

	p2 := h.Resize(p, 64)
	assert.NotNil(t, p2)
	assert.NotEqual(t, p, p2, "Resize must never return the original pointer")

	for i := 0; i < 16; i++ {
		assert.Equal(t, byte(i+1), *(*byte)(unsafe.Add(p2, i)))
	}
}

func TestResizeShrinkingPreservesPrefix(t *testing.T) {
	h := newTestHeap(4096, 1<<20)

	p := h.Allocate(64)
	for i := 0; i < 64; i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(i)
	}

	p2 := h.Resize(p, 8)
	assert.NotNil(t, p2)

	for i := 0; i < 8; i++ {
		assert.Equal(t, byte(i), *(*byte)(unsafe.Add(p2, i)))
	}
}
