// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"iter"
	"slices"
)

// Roots returns the root nodes in insertion order.
func (t *Tree) Roots() []NodeID { return slices.Clone(t.roots) }

// ChildrenOf returns the children of the node in order,
// and nil if the id is stale.
func (t *Tree) ChildrenOf(id NodeID) []NodeID {
	n := t.node(id)
	if n == nil {
		return nil
	}
	return slices.Clone(n.children)
}

// ParentOf returns the parent of the node, and false if the node
// is a root or the id is stale.
func (t *Tree) ParentOf(id NodeID) (NodeID, bool) {
	n := t.node(id)
	if n == nil || n.parent.IsZero() {
		return NodeID{}, false
	}
	return n.parent, true
}

// Depth returns the depth of the node, where roots have depth 1,
// and 0 if the id is stale.
func (t *Tree) Depth(id NodeID) int {
	if t.node(id) == nil {
		return 0
	}
	d := 0
	for ; !id.IsZero(); id = t.nodes[id.slot].parent {
		d++
	}
	return d
}

// Path returns the path from the root of the node to the node,
// inclusive, and nil if the id is stale.
func (t *Tree) Path(id NodeID) []NodeID {
	if t.node(id) == nil {
		return nil
	}
	var path []NodeID
	for ; !id.IsZero(); id = t.nodes[id.slot].parent {
		path = append(path, id)
	}
	slices.Reverse(path)
	return path
}

// siblings returns the list that holds the node: the children of its
// parent, or the roots.
func (t *Tree) siblings(id NodeID) []NodeID {
	if p := t.nodes[id.slot].parent; !p.IsZero() {
		return t.nodes[p.slot].children
	}
	return t.roots
}

// NextDepthFirst returns the node after the given one in depth first
// pre-order, continuing from the last node of one root to the next
// root. It returns false at the end, and for a stale id.
func (t *Tree) NextDepthFirst(id NodeID) (NodeID, bool) {
	n := t.node(id)
	if n == nil {
		return NodeID{}, false
	}
	if len(n.children) > 0 {
		return n.children[0], true
	}
	for cur := id; !cur.IsZero(); cur = t.nodes[cur.slot].parent {
		sibs := t.siblings(cur)
		if i := slices.Index(sibs, cur); i >= 0 && i+1 < len(sibs) {
			return sibs[i+1], true
		}
	}
	return NodeID{}, false
}

// PrevDepthFirst returns the node before the given one in depth first
// pre-order, the inverse of [Tree.NextDepthFirst]. It returns false at
// the start, and for a stale id.
func (t *Tree) PrevDepthFirst(id NodeID) (NodeID, bool) {
	if t.node(id) == nil {
		return NodeID{}, false
	}
	sibs := t.siblings(id)
	if i := slices.Index(sibs, id); i > 0 {
		return t.lastInSubtree(sibs[i-1]), true
	}
	return t.ParentOf(id)
}

// lastInSubtree returns the last node of the subtree in pre-order.
func (t *Tree) lastInSubtree(id NodeID) NodeID {
	for {
		ch := t.nodes[id.slot].children
		if len(ch) == 0 {
			return id
		}
		id = ch[len(ch)-1]
	}
}

// All returns all nodes in depth first pre-order, root by root.
// The tree must not be modified during iteration.
func (t *Tree) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if len(t.roots) == 0 {
			return
		}
		for id, ok := t.roots[0], true; ok; id, ok = t.NextDepthFirst(id) {
			if !yield(id) {
				return
			}
		}
	}
}
