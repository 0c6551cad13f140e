// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "cogentcore.org/boxtree/aabb"

// Move is a box that changed in one commit.
type Move[T aabb.Scalar] struct {
	Old, New aabb.Box[T]
}

// Damage summarizes the changes applied by one commit. The boxes are
// a conservative bound of what changed: they may overlap and are not
// a minimal cover.
type Damage[T aabb.Scalar] struct {

	// Added are the boxes of entries that became visible.
	Added []aabb.Box[T]

	// Removed are the last committed boxes of entries that went away.
	Removed []aabb.Box[T]

	// Moved are the old and new boxes of entries that changed
	// or were invalidated.
	Moved []Move[T]
}

// IsEmpty returns whether nothing changed.
func (d *Damage[T]) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Moved) == 0
}

// Rects returns every damaged rectangle: added, removed, and both the
// old and new box of each move.
func (d *Damage[T]) Rects() []aabb.Box[T] {
	rs := make([]aabb.Box[T], 0, len(d.Added)+len(d.Removed)+2*len(d.Moved))
	rs = append(rs, d.Added...)
	rs = append(rs, d.Removed...)
	for _, m := range d.Moved {
		rs = append(rs, m.Old, m.New)
	}
	return rs
}

// Union returns the bounding box of all damaged rectangles,
// and false if there are none.
func (d *Damage[T]) Union() (aabb.Box[T], bool) {
	return aabb.Union(d.Rects()...)
}
