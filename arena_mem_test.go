// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMemArenaExtendBreakIsMonotonic(t *testing.T) {
	a := newMemArena(1024, 64)

	p1 := a.ExtendBreak(64)
	p2 := a.ExtendBreak(64)

	assert.Equal(t, uintptr(p1)+64, uintptr(p2))
	assert.Equal(t, uintptr(128), a.committed)
}

func TestMemArenaExtendBreakPanicsOnExhaustion(t *testing.T) {
	a := newMemArena(64, 64)
	a.ExtendBreak(64)

	assert.Panics(t, func() {
		a.ExtendBreak(1)
	})
}

func TestMemArenaMapAnonymousRoundTrip(t *testing.T) {
	a := newMemArena(1024, 64)

	p, err := a.MapAnonymous(128)
	assert.NoError(t, err)
	assert.NotNil(t, p)

	*(*byte)(p) = 7
	assert.Equal(t, byte(7), *(*byte)(p))

	assert.NoError(t, a.Unmap(p, 128))
}

func TestMemArenaBaseIsStableAcrossGrowth(t *testing.T) {
	a := newMemArena(1024, 64)
	base := a.Base()

	a.ExtendBreak(64)
	a.ExtendBreak(64)

	assert.Equal(t, uintptr(base), uintptr(a.Base()))
}

func TestMemArenaDistinctMappingsDoNotAlias(t *testing.T) {
	a := newMemArena(1024, 64)

	p1, _ := a.MapAnonymous(32)
	p2, _ := a.MapAnonymous(32)

	*(*byte)(p1) = 1
	*(*byte)(p2) = 2

	assert.Equal(t, byte(1), *(*byte)(p1))
	assert.Equal(t, byte(2), *(*byte)(p2))
	assert.NotEqual(t, unsafe.Pointer(p1), unsafe.Pointer(p2))
}
