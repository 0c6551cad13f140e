// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend provides the spatial strategies behind an index:
// a flat linear scan ([Flat]), a uniform grid ([Grid]), an incrementally
// maintained R-tree ([RTree]) and a bulk-built bounding volume hierarchy
// ([BVH]). All of them implement [Backend].
//
// Backends identify entries by small non-negative integer slots chosen
// by the caller (the index), and store only boxes; payloads and keys
// live in the index.
package backend

import (
	"iter"

	"cogentcore.org/boxtree/aabb"
)

// Backend is the contract every spatial strategy satisfies.
// Query sequences are lazy, finite and may be ranged over any number
// of times; their order is backend defined. A Backend must not be
// mutated while one of its query sequences is being ranged over.
type Backend[T aabb.Scalar] interface {
	// Insert adds the slot with the given box. Inserting a slot that
	// is already present replaces its box.
	Insert(slot int, b aabb.Box[T])

	// Update changes the box of the slot, inserting it if absent.
	Update(slot int, b aabb.Box[T])

	// Remove removes the slot. Removing an absent slot does nothing.
	Remove(slot int)

	// QueryPoint returns the slots whose box contains the point.
	QueryPoint(x, y T) iter.Seq[int]

	// QueryRect returns the slots whose box overlaps the rectangle.
	QueryRect(r aabb.Box[T]) iter.Seq[int]

	// Rebuild replaces the entire contents with the given entries,
	// using the bulk construction of the strategy where it has one.
	Rebuild(entries []Entry[T])

	// Clear removes all slots.
	Clear()

	// Len returns the number of slots present.
	Len() int
}

// Flusher is implemented by backends that defer part of their work
// to the end of a batch of changes. The index calls Flush once at the
// end of every commit.
type Flusher interface {
	Flush()
}

// Entry is a slot and its box, used for bulk construction.
type Entry[T aabb.Scalar] struct {
	Slot int
	Box  aabb.Box[T]
}

// slotBoxes is a dense slot-indexed box table shared by the
// backends that need to look up the current box of a slot.
type slotBoxes[T aabb.Scalar] struct {
	boxes []aabb.Box[T]
	live  []bool
	n     int
}

func (s *slotBoxes[T]) ensure(slot int) {
	if slot < len(s.boxes) {
		return
	}
	s.boxes = append(s.boxes, make([]aabb.Box[T], slot+1-len(s.boxes))...)
	s.live = append(s.live, make([]bool, slot+1-len(s.live))...)
}

func (s *slotBoxes[T]) has(slot int) bool {
	return slot >= 0 && slot < len(s.live) && s.live[slot]
}

func (s *slotBoxes[T]) set(slot int, b aabb.Box[T]) {
	s.ensure(slot)
	if !s.live[slot] {
		s.live[slot] = true
		s.n++
	}
	s.boxes[slot] = b
}

func (s *slotBoxes[T]) unset(slot int) {
	if !s.has(slot) {
		return
	}
	s.live[slot] = false
	s.boxes[slot] = aabb.Box[T]{}
	s.n--
}

func (s *slotBoxes[T]) reset() {
	s.boxes = s.boxes[:0]
	s.live = s.live[:0]
	s.n = 0
}
