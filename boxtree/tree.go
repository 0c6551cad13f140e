// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boxtree provides [Tree], a retained hierarchy of boxes with
// local transforms and clips, backed by a spatial [index.Index] of
// their world bounds for hit testing and rectangle queries.
//
// Layout sets the [LocalNode] data of nodes; [Tree.Commit] then
// derives world transforms, bounds and clips for everything that
// changed, updates the index, and returns the [index.Damage] to
// repaint. Queries observe the state of the last commit, while the
// structure of the tree (parents, children, traversal) reflects
// changes immediately.
package boxtree

import (
	"fmt"
	"math"
	"slices"

	"cogentcore.org/boxtree/backend"
	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

var (
	// ErrStaleHandle is returned for a [NodeID] whose node was removed,
	// or that never belonged to the tree.
	ErrStaleHandle = errors.New("stale node handle")

	// ErrCycleRejected is returned by [Tree.Reparent] when the new
	// parent is the node itself or one of its descendants.
	ErrCycleRejected = errors.New("reparent would create a cycle")
)

// Tree is a hierarchy of boxes. It is not safe for concurrent use.
type Tree struct {
	index *index.Index[float32, NodeID]
	nodes []node
	free  []uint32
	roots []NodeID

	// seq is the insertion counter.
	seq uint64

	// n is the number of live nodes.
	n int
}

// New returns a new empty [Tree] whose index uses the backend
// selected by the config.
func New(cfg index.Config[float32]) (*Tree, error) {
	b, err := index.NewBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("boxtree.New: %w", err)
	}
	return NewWithBackend(b), nil
}

// NewWithBackend returns a new empty [Tree] whose index uses the given
// backend, which it owns.
func NewWithBackend(b backend.Backend[float32]) *Tree {
	return &Tree{index: index.New[float32, NodeID](b)}
}

// Index returns the spatial index of the tree, which holds the
// committed world bounds of the nodes that are not clipped away.
// It must not be modified.
func (t *Tree) Index() *index.Index[float32, NodeID] { return t.index }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return t.n }

// node returns the node of a live id, and nil otherwise.
func (t *Tree) node(id NodeID) *node {
	if id.IsZero() || int(id.slot) >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[id.slot]
	if !n.alive || n.gen != id.gen {
		return nil
	}
	return n
}

// get returns the node of the id, or a wrapped [ErrStaleHandle].
func (t *Tree) get(id NodeID) (*node, error) {
	n := t.node(id)
	if n == nil {
		return nil, fmt.Errorf("boxtree: %v: %w", id, ErrStaleHandle)
	}
	return n, nil
}

// IsAlive returns whether the id refers to a node of the tree.
func (t *Tree) IsAlive(id NodeID) bool { return t.node(id) != nil }

func validLocal(ln *LocalNode) error {
	if err := validBox(ln.Bounds); err != nil {
		return err
	}
	if err := validMatrix(ln.Transform); err != nil {
		return err
	}
	if ln.Clip != nil {
		if err := validBox(ln.Clip.Rect); err != nil {
			return err
		}
	}
	return nil
}

// Insert adds a node with the given local data as the last child of
// parent, or as a new root if parent is the zero [NodeID]. The node
// enters the index at the next [Tree.Commit].
func (t *Tree) Insert(parent NodeID, local LocalNode) (NodeID, error) {
	var p *node
	if !parent.IsZero() {
		var err error
		if p, err = t.get(parent); err != nil {
			return NodeID{}, fmt.Errorf("boxtree.Insert: parent: %w", err)
		}
	}
	if err := validLocal(&local); err != nil {
		return NodeID{}, fmt.Errorf("boxtree.Insert: %w", err)
	}
	if local.Clip != nil {
		c := *local.Clip
		local.Clip = &c
	}
	var slot uint32
	if k := len(t.free); k > 0 {
		slot = t.free[k-1]
		t.free = t.free[:k-1]
	} else {
		slot = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{gen: 1})
		if p != nil {
			p = &t.nodes[parent.slot]
		}
	}
	t.seq++
	n := &t.nodes[slot]
	n.alive = true
	n.seq = t.seq
	n.parent = parent
	n.local = local
	id := NodeID{slot: slot, gen: n.gen}
	if p != nil {
		p.children = append(p.children, id)
	} else {
		t.roots = append(t.roots, id)
	}
	t.n++
	t.markDirty(slot)
	return id, nil
}

// markDirty marks the node as needing a world update, and its
// ancestors as having a dirty descendant.
func (t *Tree) markDirty(slot uint32) {
	t.nodes[slot].dirty = true
	t.markAncestors(t.nodes[slot].parent)
}

// markRepaint marks the node as needing a repaint only.
func (t *Tree) markRepaint(slot uint32) {
	t.nodes[slot].repaint = true
	t.markAncestors(t.nodes[slot].parent)
}

func (t *Tree) markAncestors(id NodeID) {
	for !id.IsZero() {
		n := &t.nodes[id.slot]
		if n.descendantDirty {
			return
		}
		n.descendantDirty = true
		id = n.parent
	}
}

// unlink removes the node from the children of its parent,
// or from the roots.
func (t *Tree) unlink(id NodeID) {
	n := &t.nodes[id.slot]
	if n.parent.IsZero() {
		t.roots = slices.DeleteFunc(t.roots, func(r NodeID) bool { return r == id })
		return
	}
	p := &t.nodes[n.parent.slot]
	p.children = slices.DeleteFunc(p.children, func(c NodeID) bool { return c == id })
	n.parent = NodeID{}
}

// Remove removes the node and all of its descendants. Their handles
// become stale immediately, and their bounds are reported as removed
// at the next [Tree.Commit].
func (t *Tree) Remove(id NodeID) error {
	if _, err := t.get(id); err != nil {
		return fmt.Errorf("boxtree.Remove: %w", err)
	}
	t.unlink(id)
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur.slot]
		stack = append(stack, n.children...)
		if !n.key.IsZero() {
			if err := t.index.Remove(n.key); err != nil {
				return fmt.Errorf("boxtree.Remove: %w", err)
			}
		}
		t.release(cur.slot)
	}
	return nil
}

// release clears a slot and makes it available for reuse, retiring
// it instead once its generations are exhausted.
func (t *Tree) release(slot uint32) {
	n := &t.nodes[slot]
	*n = node{gen: n.gen}
	t.n--
	if n.gen == math.MaxUint32 {
		return
	}
	n.gen++
	t.free = append(t.free, slot)
}

// Reparent moves the node, with its subtree, to be the last child of
// parent, or a root if parent is the zero [NodeID]. It returns
// [ErrCycleRejected], leaving the tree unchanged, if parent is the node
// itself or one of its descendants.
func (t *Tree) Reparent(id, parent NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.Reparent: %w", err)
	}
	if !parent.IsZero() {
		if _, err := t.get(parent); err != nil {
			return fmt.Errorf("boxtree.Reparent: parent: %w", err)
		}
		for a := parent; !a.IsZero(); a = t.nodes[a.slot].parent {
			if a == id {
				return fmt.Errorf("boxtree.Reparent: %v under %v: %w", id, parent, ErrCycleRejected)
			}
		}
	}
	if n.parent == parent {
		return nil
	}
	t.unlink(id)
	n.parent = parent
	if parent.IsZero() {
		t.roots = append(t.roots, id)
	} else {
		p := &t.nodes[parent.slot]
		p.children = append(p.children, id)
	}
	t.markDirty(id.slot)
	return nil
}

// SetLocal replaces all of the local data of the node.
func (t *Tree) SetLocal(id NodeID, local LocalNode) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetLocal: %w", err)
	}
	if err := validLocal(&local); err != nil {
		return fmt.Errorf("boxtree.SetLocal: %w", err)
	}
	if local.Clip != nil {
		c := *local.Clip
		local.Clip = &c
	}
	n.local = local
	t.markDirty(id.slot)
	return nil
}

// SetLocalBounds sets the local bounds of the node.
func (t *Tree) SetLocalBounds(id NodeID, b math32.Box2) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetLocalBounds: %w", err)
	}
	if err := validBox(b); err != nil {
		return fmt.Errorf("boxtree.SetLocalBounds: %w", err)
	}
	if n.local.Bounds == b {
		return nil
	}
	n.local.Bounds = b
	t.markDirty(id.slot)
	return nil
}

// SetLocalTransform sets the transform of the node to its parent.
func (t *Tree) SetLocalTransform(id NodeID, m math32.Matrix2) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetLocalTransform: %w", err)
	}
	if err := validMatrix(m); err != nil {
		return fmt.Errorf("boxtree.SetLocalTransform: %w", err)
	}
	if n.local.Transform == m {
		return nil
	}
	n.local.Transform = m
	t.markDirty(id.slot)
	return nil
}

// SetLocalClip sets the local clip of the node.
func (t *Tree) SetLocalClip(id NodeID, c Clip) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetLocalClip: %w", err)
	}
	if err := validBox(c.Rect); err != nil {
		return fmt.Errorf("boxtree.SetLocalClip: %w", err)
	}
	if n.local.Clip != nil && *n.local.Clip == c {
		return nil
	}
	n.local.Clip = &c
	t.markDirty(id.slot)
	return nil
}

// ClearLocalClip removes the local clip of the node.
func (t *Tree) ClearLocalClip(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.ClearLocalClip: %w", err)
	}
	if n.local.Clip == nil {
		return nil
	}
	n.local.Clip = nil
	t.markDirty(id.slot)
	return nil
}

// SetClipBehavior sets how the local clip of the node combines
// with the clips of its ancestors.
func (t *Tree) SetClipBehavior(id NodeID, cb ClipBehaviors) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetClipBehavior: %w", err)
	}
	if n.local.ClipBehavior == cb {
		return nil
	}
	n.local.ClipBehavior = cb
	t.markDirty(id.slot)
	return nil
}

// SetFlags sets the flags of the node. The bounds of the node do not
// change, but it is reported for repaint at the next [Tree.Commit].
func (t *Tree) SetFlags(id NodeID, flags NodeFlags) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetFlags: %w", err)
	}
	if n.local.Flags == flags {
		return nil
	}
	n.local.Flags = flags
	t.markRepaint(id.slot)
	return nil
}

// SetZ sets the z order of the node. The bounds of the node do not
// change, but it is reported for repaint at the next [Tree.Commit].
func (t *Tree) SetZ(id NodeID, z int32) error {
	n, err := t.get(id)
	if err != nil {
		return fmt.Errorf("boxtree.SetZ: %w", err)
	}
	if n.local.Z == z {
		return nil
	}
	n.local.Z = z
	t.markRepaint(id.slot)
	return nil
}

// Local returns a copy of the local data of the node.
func (t *Tree) Local(id NodeID) (LocalNode, bool) {
	n := t.node(id)
	if n == nil {
		return LocalNode{}, false
	}
	ln := n.local
	if ln.Clip != nil {
		c := *ln.Clip
		ln.Clip = &c
	}
	return ln, true
}

// Z returns the z order of the node.
func (t *Tree) Z(id NodeID) (int32, bool) {
	n := t.node(id)
	if n == nil {
		return 0, false
	}
	return n.local.Z, true
}

// Flags returns the flags of the node.
func (t *Tree) Flags(id NodeID) (NodeFlags, bool) {
	n := t.node(id)
	if n == nil {
		return 0, false
	}
	return n.local.Flags, true
}

// WorldTransform returns the local to world transform of the node
// as of the last commit.
func (t *Tree) WorldTransform(id NodeID) (math32.Matrix2, bool) {
	n := t.node(id)
	if n == nil {
		return math32.Matrix2{}, false
	}
	return n.world.transform, true
}

// WorldBounds returns the clipped world bounds of the node as of the
// last commit. It returns false for a stale id, and for a node that
// is clipped away entirely or has not been committed yet.
func (t *Tree) WorldBounds(id NodeID) (math32.Box2, bool) {
	n := t.node(id)
	if n == nil || n.key.IsZero() {
		return math32.Box2{}, false
	}
	return n.world.bounds, true
}
