// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"fmt"

	"cogentcore.org/boxtree/aabb"
	"cogentcore.org/core/math32"
)

// toAABB converts a math32 box to an index box.
func toAABB(b math32.Box2) aabb.Box[float32] {
	return aabb.New(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// validBox returns an error if the box has a NaN coordinate
// or is inverted.
func validBox(b math32.Box2) error {
	return aabb.Check(toAABB(b))
}

// validMatrix returns an error if the matrix has a NaN or
// infinite component.
func validMatrix(m math32.Matrix2) error {
	for _, v := range [...]float32{m.XX, m.YX, m.XY, m.YY, m.X0, m.Y0} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			err := fmt.Errorf("boxtree: non-finite transform %v: %w", m, aabb.ErrInvalidGeometry)
			if aabb.Debug {
				panic(err)
			}
			return err
		}
	}
	return nil
}

// clipState is a world space clip.
type clipState struct {
	rect math32.Box2

	// has is whether there is a clip at all.
	has bool

	// empty is whether the clip contains nothing, because
	// clips that were intersected are disjoint.
	empty bool
}

// apply returns the part of b inside the clip, and false if nothing is.
func (c clipState) apply(b math32.Box2) (math32.Box2, bool) {
	switch {
	case !c.has:
		return b, true
	case c.empty || !c.rect.IntersectsBox(b):
		return math32.Box2{}, false
	}
	return b.Intersect(c.rect), true
}

// intersect returns the intersection of two clips.
func (c clipState) intersect(o clipState) clipState {
	switch {
	case !c.has:
		return o
	case !o.has:
		return c
	case c.empty || o.empty || !c.rect.IntersectsBox(o.rect):
		return clipState{has: true, empty: true}
	}
	return clipState{rect: c.rect.Intersect(o.rect), has: true}
}

// clipFor composes the world clip of a node from the inherited world
// clip and the local clip of the node, according to its behavior.
// The local clip is transformed loosely, as bounds are.
func clipFor(ln *LocalNode, wt math32.Matrix2, parent clipState) clipState {
	if ln.ClipBehavior == ClipNone {
		return clipState{}
	}
	if ln.Clip == nil {
		return parent
	}
	own := clipState{rect: ln.Clip.Rect.MulMatrix2(wt), has: true}
	if ln.ClipBehavior == ClipPreferLocal {
		return own
	}
	return own.intersect(parent)
}
