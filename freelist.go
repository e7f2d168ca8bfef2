// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

// freeList is the heap's single, address-ordered, doubly linked list of
// free blocks (§3). Unlike lldb's flt (a table of size-segregated lists),
// this allocator keeps exactly one list, in strictly increasing address
// order, per the spec's Non-goal of "no size-class segregation".
type freeList struct {
	head, tail *block
}

// empty reports whether the list holds no free blocks.
func (fl *freeList) empty() bool { return fl.head == nil }

// unlink removes b from the list. b's own fields are left untouched by
// design; the caller (the placement engine) overwrites b.next with nil to
// mark it allocated immediately after calling unlink.
func (fl *freeList) unlink(b *block) {
	switch {
	case b.prev == nil && (b.next == nil || b.next == heapEnd):
		fl.head, fl.tail = nil, nil
	case b.prev == nil:
		fl.head = b.next
		b.next.prev = nil
	case b.next == nil || b.next == heapEnd:
		fl.tail = b.prev
		b.prev.next = heapEnd
	default:
		b.prev.next = b.next
		b.next.prev = b.prev
	}
}

// forEach walks the list in address order starting at head, calling visit
// for each block until visit returns false or the list is exhausted.
func (fl *freeList) forEach(visit func(b *block) bool) {
	cur := fl.head
	for cur != nil {
		if !visit(cur) {
			return
		}

		if cur.next == heapEnd {
			return
		}

		cur = cur.next
	}
}

// replace swaps old for neu in old's exact list position, inheriting old's
// prev/next links (§4.1 split: "splicing it into the free list in B's
// position"). old's own links are left stale; the caller is responsible
// for not reading them afterwards.
func (fl *freeList) replace(old, neu *block) {
	neu.prev = old.prev
	neu.next = old.next

	if old.prev != nil {
		old.prev.next = neu
	} else {
		fl.head = neu
	}

	if old.next != nil && old.next != heapEnd {
		old.next.prev = neu
	} else {
		fl.tail = neu
	}
}

// pushFront installs b as the new lowest addressed free block. Used by
// deallocate's "before head" case.
func (fl *freeList) pushFront(b *block) {
	b.prev = nil
	if fl.head == nil {
		b.next = heapEnd
		fl.head, fl.tail = b, b
		return
	}

	b.next = fl.head
	fl.head.prev = b
	fl.head = b
}

// pushBack installs b as the new highest addressed free block. Used by
// deallocate's "past tail" case and by heap growth.
func (fl *freeList) pushBack(b *block) {
	b.next = heapEnd
	if fl.tail == nil {
		b.prev = nil
		fl.head, fl.tail = b, b
		return
	}

	b.prev = fl.tail
	fl.tail.next = b
	fl.tail = b
}
