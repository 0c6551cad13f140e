// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"cmp"
	"iter"
	"slices"

	"cogentcore.org/core/math32"
)

// candidate is a node under a hit test point.
type candidate struct {
	id    NodeID
	z     int32
	depth int
	seq   uint64
}

// HitTestPoint returns the nodes matching the filter whose committed
// world bounds contain the point, topmost first. Nodes with a local
// clip are only hit inside that clip, rounded corners included.
//
// The order is by z descending; among equal z, deeper nodes come first,
// and among equal depth, more recently inserted nodes come first.
func (t *Tree) HitTestPoint(pt math32.Vector2, f Filter) []NodeID {
	var cs []candidate
	for _, id := range t.index.QueryPoint(pt.X, pt.Y) {
		n := t.node(id)
		if n == nil || !f.Matches(n.local.Flags) || !t.inLocalClip(n, pt) {
			continue
		}
		cs = append(cs, candidate{id: id, z: n.local.Z, depth: t.Depth(id), seq: n.seq})
	}
	slices.SortFunc(cs, func(a, b candidate) int {
		if c := cmp.Compare(b.z, a.z); c != 0 {
			return c
		}
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	ids := make([]NodeID, len(cs))
	for i, c := range cs {
		ids[i] = c.id
	}
	return ids
}

// inLocalClip returns whether the world point lies inside the local
// clip of the node as of the last commit, which is always the case
// without one.
func (t *Tree) inLocalClip(n *node, pt math32.Vector2) bool {
	c := n.world.hitClip
	if c == nil {
		return true
	}
	return c.ContainsPoint(n.world.transform.Inverse().MulVector2AsPoint(pt))
}

// HitTest returns the topmost node matching the filter under the point,
// as ordered by [Tree.HitTestPoint], with its path from the root.
func (t *Tree) HitTest(pt math32.Vector2, f Filter) (Hit, bool) {
	ids := t.HitTestPoint(pt, f)
	if len(ids) == 0 {
		return Hit{}, false
	}
	return Hit{Node: ids[0], Path: t.Path(ids[0])}, true
}

// IntersectRect returns the nodes matching the filter whose committed
// world bounds overlap the rectangle, in no particular order.
func (t *Tree) IntersectRect(r math32.Box2, f Filter) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, id := range t.index.QueryRect(toAABB(r)) {
			n := t.node(id)
			if n == nil || !f.Matches(n.local.Flags) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}
