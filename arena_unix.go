// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package heapalloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// defaultReservation64 and defaultReservation32 are the sizes of the virtual
// address range reserved up front for the heap's program break. Reservation costs no physical memory
// (the pages start out PROT_NONE); only ExtendBreak commits pages, by
// upgrading their protection to read/write, mirroring the
// reserve-then-commit technique operating system kernels and language
// runtimes use for growable heaps (reserve wide, commit narrow).
const defaultReservation64 = 1 << 40 // 1 TiB of address space, 64-bit hosts
const defaultReservation32 = 1 << 28 // 256 MiB, 32-bit hosts

// unixArena implements Arena on POSIX systems via golang.org/x/sys/unix,
// standing in for spec §6's "sbrk-equivalent program-break growth" and
// "page-aligned anonymous mapping/unmapping" primitives, which have no
// direct analogue reachable from Go.
type unixArena struct {
	reservation []byte // PROT_NONE reservation; committed prefix backs the heap
	committed   uintptr
	pageSz      uintptr
}

// newUnixArena reserves a fixed virtual address range and returns an Arena
// over it. The reservation is never grown; ExtendBreak commits pages within
// it until exhausted.
func newUnixArena() (*unixArena, error) {
	reserveSize := defaultReservation64
	if unsafe.Sizeof(uintptr(0)) == 4 {
		reserveSize = defaultReservation32
	}

	b, err := unix.Mmap(-1, 0, reserveSize, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	return &unixArena{
		reservation: b,
		pageSz:      uintptr(unix.Getpagesize()),
	}, nil
}

func (a *unixArena) PageSize() uintptr { return a.pageSz }

func (a *unixArena) Base() unsafe.Pointer {
	return unsafe.Pointer(&a.reservation[0])
}

func (a *unixArena) ExtendBreak(deltaBytes uintptr) unsafe.Pointer {
	newCommitted := a.committed + deltaBytes
	if newCommitted > uintptr(len(a.reservation)) {
		panic("heapalloc: arena reservation exhausted")
	}

	if err := unix.Mprotect(a.reservation[a.committed:newCommitted], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		panic("heapalloc: mprotect failed committing heap pages: " + err.Error())
	}

	a.committed = newCommitted
	return unsafe.Add(unsafe.Pointer(&a.reservation[0]), a.committed)
}

func (a *unixArena) MapAnonymous(size uintptr) (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	return unsafe.Pointer(&b[0]), nil
}

func (a *unixArena) Unmap(p unsafe.Pointer, size uintptr) error {
	b := unsafe.Slice((*byte)(p), size)
	return unix.Munmap(b)
}

// NewDefaultArena returns the production Arena implementation for the
// current platform.
func NewDefaultArena() (Arena, error) {
	return newUnixArena()
}
