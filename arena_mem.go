// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// memArena is an in-process Arena fake backed by a single fixed-capacity
// Go byte slice, used only for deterministic unit testing of the
// placement engine without touching real OS memory. It mirrors the role
// lldb.MemFiler plays for lldb.Allocator tests.
type memArena struct {
	backing   []byte
	committed uintptr
	pageSz    uintptr
	mapped    map[unsafe.Pointer][]byte
}

// newMemArena returns a memArena whose break-managed region can grow up to
// capacity bytes. Go's garbage collector never moves heap-allocated slice
// backing arrays, so pointers handed out into backing remain valid for the
// arena's lifetime.
func newMemArena(capacity uintptr, pageSize uintptr) *memArena {
	return &memArena{
		backing: make([]byte, capacity),
		pageSz:  pageSize,
		mapped:  map[unsafe.Pointer][]byte{},
	}
}

func (a *memArena) PageSize() uintptr { return a.pageSz }

func (a *memArena) Base() unsafe.Pointer {
	return unsafe.Pointer(&a.backing[0])
}

func (a *memArena) ExtendBreak(deltaBytes uintptr) unsafe.Pointer {
	newCommitted := a.committed + deltaBytes
	if newCommitted > uintptr(len(a.backing)) {
		panic("heapalloc: memArena capacity exhausted")
	}

	a.committed = newCommitted
	return unsafe.Add(unsafe.Pointer(&a.backing[0]), a.committed)
}

func (a *memArena) MapAnonymous(size uintptr) (unsafe.Pointer, error) {
	b := make([]byte, size)
	p := unsafe.Pointer(&b[0])
	a.mapped[p] = b
	return p, nil
}

func (a *memArena) Unmap(p unsafe.Pointer, size uintptr) error {
	delete(a.mapped, p)
	return nil
}
