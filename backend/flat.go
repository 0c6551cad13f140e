// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"iter"

	"cogentcore.org/boxtree/aabb"
)

// Flat stores boxes in a slot-indexed slice and answers every query
// with a linear scan. Inserts, updates and removals are O(1), which
// makes it the right choice for small sets or update-heavy workloads.
// The zero value is ready to use.
type Flat[T aabb.Scalar] struct {
	slots slotBoxes[T]
}

// NewFlat returns a new empty [Flat] backend.
func NewFlat[T aabb.Scalar]() *Flat[T] {
	return &Flat[T]{}
}

func (f *Flat[T]) Insert(slot int, b aabb.Box[T]) { f.slots.set(slot, b) }

func (f *Flat[T]) Update(slot int, b aabb.Box[T]) { f.slots.set(slot, b) }

func (f *Flat[T]) Remove(slot int) { f.slots.unset(slot) }

func (f *Flat[T]) Clear() { f.slots.reset() }

func (f *Flat[T]) Len() int { return f.slots.n }

func (f *Flat[T]) Rebuild(entries []Entry[T]) {
	f.slots.reset()
	for _, e := range entries {
		f.slots.set(e.Slot, e.Box)
	}
}

func (f *Flat[T]) QueryPoint(x, y T) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, b := range f.slots.boxes {
			if f.slots.live[i] && b.ContainsPoint(x, y) {
				if !yield(i) {
					return
				}
			}
		}
	}
}

func (f *Flat[T]) QueryRect(r aabb.Box[T]) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, b := range f.slots.boxes {
			if f.slots.live[i] && b.Overlaps(r) {
				if !yield(i) {
					return
				}
			}
		}
	}
}
