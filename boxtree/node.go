// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"fmt"

	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/math32"
)

// NodeID is a generational handle to a node of a [Tree]. When a node
// is removed its slot may be reused, but the generation changes, so
// that old handles are reported as stale instead of aliasing the new
// node. The zero NodeID never refers to a node.
type NodeID struct {
	slot uint32
	gen  uint32
}

// IsZero returns whether this is the zero NodeID.
func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string {
	if id.IsZero() {
		return "NodeID(none)"
	}
	return fmt.Sprintf("NodeID(%d@%d)", id.slot, id.gen)
}

// Clip is a clip rectangle with optionally rounded corners, in the
// local coordinates of its node. The world bounds of clipped nodes use
// the axis-aligned bounds of the clip; hit testing honors the corners.
type Clip struct {

	// Rect is the clip rectangle.
	Rect math32.Box2

	// Radius is the corner radius; zero means square corners.
	Radius float32
}

// ContainsPoint returns whether the point, in the local coordinates
// of the node, lies inside the clip.
func (c Clip) ContainsPoint(p math32.Vector2) bool {
	if !c.Rect.ContainsPoint(p) {
		return false
	}
	size := c.Rect.Size()
	r := min(c.Radius, size.X/2, size.Y/2)
	if r <= 0 {
		return true
	}
	cx := math32.Clamp(p.X, c.Rect.Min.X+r, c.Rect.Max.X-r)
	cy := math32.Clamp(p.Y, c.Rect.Min.Y+r, c.Rect.Max.Y-r)
	return p.Sub(math32.Vec2(cx, cy)).Length() <= r
}

// LocalNode is the local data of a node, set by layout. All of it is
// expressed in the coordinate space of the parent, through Transform.
type LocalNode struct {

	// Bounds are the bounds of the content, untransformed. For content
	// that is not axis-aligned, use a conservative box.
	Bounds math32.Box2

	// Transform maps local coordinates to parent coordinates.
	// The zero matrix is treated as the identity.
	Transform math32.Matrix2

	// Clip is the optional local clip.
	Clip *Clip

	// ClipBehavior is how Clip combines with the clips of ancestors.
	ClipBehavior ClipBehaviors

	// Z is the stacking order of the node. It is global rather than
	// per parent: higher values are on top everywhere.
	Z int32

	// Flags control visibility, picking and focus.
	Flags NodeFlags
}

// NewLocal returns a [LocalNode] with the given bounds, the identity
// transform and the [DefaultFlags].
func NewLocal(bounds math32.Box2) LocalNode {
	return LocalNode{Bounds: bounds, Transform: math32.Identity2(), Flags: DefaultFlags()}
}

// transform returns the local transform, mapping the zero matrix to
// the identity.
func (ln *LocalNode) transform() math32.Matrix2 {
	if ln.Transform == (math32.Matrix2{}) {
		return math32.Identity2()
	}
	return ln.Transform
}

// Filter restricts the results of queries to nodes that have all of
// the required flags set. The zero Filter accepts every node.
type Filter struct {
	Required NodeFlags
}

// Visible returns a copy of the filter that also requires [Visible].
func (f Filter) Visible() Filter {
	f.Required.SetFlag(true, Visible)
	return f
}

// Pickable returns a copy of the filter that also requires [Pickable].
func (f Filter) Pickable() Filter {
	f.Required.SetFlag(true, Pickable)
	return f
}

// Focusable returns a copy of the filter that also requires [Focusable].
func (f Filter) Focusable() Filter {
	f.Required.SetFlag(true, Focusable)
	return f
}

// Matches returns whether the flags satisfy the filter.
func (f Filter) Matches(flags NodeFlags) bool {
	return flags&f.Required == f.Required
}

// Hit is the result of [Tree.HitTest].
type Hit struct {

	// Node is the topmost node under the point.
	Node NodeID

	// Path runs from the root of Node to Node, inclusive.
	Path []NodeID
}

// world is the data of a node derived at commit.
type world struct {
	transform math32.Matrix2
	bounds    math32.Box2

	// clip is the clip passed on to children.
	clip clipState

	// hitClip is the local clip hit tests honor, nil for none.
	hitClip *Clip

	// culled is whether the bounds are entirely clipped away,
	// which keeps the node out of the index.
	culled bool
}

// node is the arena storage of one slot.
type node struct {
	gen   uint32
	alive bool

	// seq orders nodes by insertion.
	seq uint64

	parent   NodeID
	children []NodeID
	local    LocalNode
	world    world

	// key is the index entry of the node; zero while not indexed.
	key index.Key

	// dirty is set when local data changed since the last commit,
	// and descendantDirty when some descendant is dirty. repaint is
	// set when only the flags or z changed.
	dirty           bool
	descendantDirty bool
	repaint         bool
}
