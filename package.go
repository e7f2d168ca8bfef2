// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Allocate is Heap.Allocate on the process-wide default heap, mirroring
// libc's malloc.
func Allocate(size int) unsafe.Pointer { return defaultHeap.Allocate(size) }

// Deallocate is Heap.Deallocate on the process-wide default heap, mirroring
// libc's free.
func Deallocate(ptr unsafe.Pointer) { defaultHeap.Deallocate(ptr) }

// Callocate is Heap.Callocate on the process-wide default heap, mirroring
// libc's calloc.
func Callocate(count, elemSize int) unsafe.Pointer { return defaultHeap.Callocate(count, elemSize) }

// Resize is Heap.Resize on the process-wide default heap, mirroring libc's
// realloc.
func Resize(ptr unsafe.Pointer, newSize int) unsafe.Pointer {
	return defaultHeap.Resize(ptr, newSize)
}
