// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"iter"
	"slices"

	"cogentcore.org/boxtree/aabb"
	"lukechampine.com/uint128"
)

const (
	// RTreeMaxEntries is the maximum number of children of an R-tree node.
	RTreeMaxEntries = 8

	// RTreeMinEntries is the minimum number of children of a non-root
	// R-tree node after a removal.
	RTreeMinEntries = 3
)

// rnode is an R-tree node. The children of a leaf are slots; the
// children of an inner node are node indexes.
type rnode[T aabb.Scalar] struct {
	box      aabb.Box[T]
	parent   int32
	leaf     bool
	children []int32
}

// RTree is a dynamic R-tree that is updated in place on every change.
// Entries go to the leaf whose box needs the least enlargement,
// overflowing nodes are split with a surface area heuristic, and
// underflowing nodes are dissolved with their entries reinserted.
// It suits scenes with frequent incremental changes and clustered
// or non-uniform boxes.
//
// A is the accumulator type used for areas and W computes them;
// see [NewRTreeFloat] and [NewRTreeInt].
type RTree[T aabb.Scalar, A any, W aabb.Widener[T, A]] struct {
	nodes     []rnode[T]
	freeNodes []int32
	root      int32
	slots     slotBoxes[T]

	// leafOf is the leaf node holding each live slot.
	leafOf []int32

	w W
}

// NewRTreeFloat returns a new [RTree] for floating point boxes.
func NewRTreeFloat[T float32 | float64]() *RTree[T, float64, aabb.FloatAcc[T]] {
	return &RTree[T, float64, aabb.FloatAcc[T]]{root: -1}
}

// NewRTreeInt returns a new [RTree] for integer boxes, with areas
// accumulated in 128 bits.
func NewRTreeInt[T int8 | int16 | int32 | int64 | int]() *RTree[T, uint128.Uint128, aabb.IntAcc[T]] {
	return &RTree[T, uint128.Uint128, aabb.IntAcc[T]]{root: -1}
}

// NewRTreeF32 returns a new float32 [RTree].
func NewRTreeF32() *RTree[float32, float64, aabb.FloatAcc[float32]] { return NewRTreeFloat[float32]() }

// NewRTreeF64 returns a new float64 [RTree].
func NewRTreeF64() *RTree[float64, float64, aabb.FloatAcc[float64]] { return NewRTreeFloat[float64]() }

// NewRTreeI64 returns a new int64 [RTree].
func NewRTreeI64() *RTree[int64, uint128.Uint128, aabb.IntAcc[int64]] { return NewRTreeInt[int64]() }

func (rt *RTree[T, A, W]) newNode(leaf bool, parent int32) int32 {
	if n := len(rt.freeNodes); n > 0 {
		id := rt.freeNodes[n-1]
		rt.freeNodes = rt.freeNodes[:n-1]
		rt.nodes[id] = rnode[T]{parent: parent, leaf: leaf, children: rt.nodes[id].children[:0]}
		return id
	}
	rt.nodes = append(rt.nodes, rnode[T]{parent: parent, leaf: leaf})
	return int32(len(rt.nodes) - 1)
}

func (rt *RTree[T, A, W]) freeNode(id int32) {
	rt.nodes[id].children = rt.nodes[id].children[:0]
	rt.nodes[id].parent = -1
	rt.freeNodes = append(rt.freeNodes, id)
}

// childBox returns the box of a child of node n.
func (rt *RTree[T, A, W]) childBox(n, c int32) aabb.Box[T] {
	if rt.nodes[n].leaf {
		return rt.slots.boxes[c]
	}
	return rt.nodes[c].box
}

// refit recomputes the box of node n from its children.
func (rt *RTree[T, A, W]) refit(n int32) {
	ch := rt.nodes[n].children
	if len(ch) == 0 {
		rt.nodes[n].box = aabb.Box[T]{}
		return
	}
	b := rt.childBox(n, ch[0])
	for _, c := range ch[1:] {
		b = b.Union(rt.childBox(n, c))
	}
	rt.nodes[n].box = b
}

// refitUp refits node n and all of its ancestors.
func (rt *RTree[T, A, W]) refitUp(n int32) {
	for ; n >= 0; n = rt.nodes[n].parent {
		rt.refit(n)
	}
}

func (rt *RTree[T, A, W]) setLeafOf(slot int, leaf int32) {
	if slot >= len(rt.leafOf) {
		rt.leafOf = append(rt.leafOf, make([]int32, slot+1-len(rt.leafOf))...)
	}
	rt.leafOf[slot] = leaf
}

func (rt *RTree[T, A, W]) Insert(slot int, b aabb.Box[T]) {
	if rt.slots.has(slot) {
		rt.Remove(slot)
	}
	rt.slots.set(slot, b)
	rt.insertSlot(slot, b)
}

// insertSlot places a slot whose box is already recorded.
func (rt *RTree[T, A, W]) insertSlot(slot int, b aabb.Box[T]) {
	if rt.root < 0 {
		rt.root = rt.newNode(true, -1)
	}
	leaf := rt.chooseLeaf(b)
	rt.nodes[leaf].children = append(rt.nodes[leaf].children, int32(slot))
	rt.setLeafOf(slot, leaf)
	if len(rt.nodes[leaf].children) == 1 {
		rt.nodes[leaf].box = b
	} else {
		rt.nodes[leaf].box = rt.nodes[leaf].box.Union(b)
	}
	for n := rt.nodes[leaf].parent; n >= 0; n = rt.nodes[n].parent {
		rt.nodes[n].box = rt.nodes[n].box.Union(b)
	}
	for n := leaf; n >= 0 && len(rt.nodes[n].children) > RTreeMaxEntries; {
		n = rt.split(n)
	}
}

// chooseLeaf descends from the root to the leaf whose box needs the
// least area enlargement to include b. Ties go to the smaller
// resulting area, then to the node with fewer children.
func (rt *RTree[T, A, W]) chooseLeaf(b aabb.Box[T]) int32 {
	n := rt.root
	for !rt.nodes[n].leaf {
		best := int32(-1)
		var bestGrow, bestArea A
		bestCount := 0
		for _, c := range rt.nodes[n].children {
			cb := rt.nodes[c].box
			area := rt.w.Area(cb.Union(b))
			grow := rt.w.Sub(area, rt.w.Area(cb))
			count := len(rt.nodes[c].children)
			if best < 0 || rt.w.Less(grow, bestGrow) ||
				(!rt.w.Less(bestGrow, grow) && (rt.w.Less(area, bestArea) ||
					(!rt.w.Less(bestArea, area) && count < bestCount))) {
				best, bestGrow, bestArea, bestCount = c, grow, area, count
			}
		}
		n = best
	}
	return n
}

// split divides the overflowing node n in two and returns its parent,
// which may now overflow in turn, or -1 when a new root was grown.
func (rt *RTree[T, A, W]) split(n int32) int32 {
	items := slices.Clone(rt.nodes[n].children)
	box := func(c int32) aabb.Box[T] { return rt.childBox(n, c) }
	k := splitSAH[T, A, W](items, box, RTreeMinEntries, false)

	parent := rt.nodes[n].parent
	m := rt.newNode(rt.nodes[n].leaf, parent)
	rt.nodes[n].children = append(rt.nodes[n].children[:0], items[:k]...)
	rt.nodes[m].children = append(rt.nodes[m].children, items[k:]...)
	for _, c := range rt.nodes[m].children {
		if rt.nodes[m].leaf {
			rt.leafOf[c] = m
		} else {
			rt.nodes[c].parent = m
		}
	}
	rt.refit(n)
	rt.refit(m)

	if parent < 0 {
		r := rt.newNode(false, -1)
		rt.nodes[r].children = append(rt.nodes[r].children, n, m)
		rt.nodes[n].parent = r
		rt.nodes[m].parent = r
		rt.refit(r)
		rt.root = r
		return -1
	}
	rt.nodes[parent].children = append(rt.nodes[parent].children, m)
	return parent
}

func (rt *RTree[T, A, W]) Update(slot int, b aabb.Box[T]) {
	if !rt.slots.has(slot) {
		rt.Insert(slot, b)
		return
	}
	if rt.slots.boxes[slot] == b {
		return
	}
	leaf := rt.leafOf[slot]
	if rt.nodes[leaf].box.ContainsBox(b) {
		rt.slots.set(slot, b)
		rt.refitUp(leaf)
		return
	}
	rt.Remove(slot)
	rt.Insert(slot, b)
}

func (rt *RTree[T, A, W]) Remove(slot int) {
	if !rt.slots.has(slot) {
		return
	}
	leaf := rt.leafOf[slot]
	ch := rt.nodes[leaf].children
	if i := slices.Index(ch, int32(slot)); i >= 0 {
		rt.nodes[leaf].children = slices.Delete(ch, i, i+1)
	}
	rt.slots.unset(slot)
	rt.leafOf[slot] = -1
	rt.condense(leaf)
}

// condense walks up from leaf after a removal, dissolving non-root
// nodes that fell below [RTreeMinEntries] and refitting the rest,
// then reinserts the slots of the dissolved subtrees.
func (rt *RTree[T, A, W]) condense(leaf int32) {
	var orphans []int32
	n := leaf
	for n != rt.root {
		parent := rt.nodes[n].parent
		if len(rt.nodes[n].children) < RTreeMinEntries {
			pc := rt.nodes[parent].children
			if i := slices.Index(pc, n); i >= 0 {
				rt.nodes[parent].children = slices.Delete(pc, i, i+1)
			}
			orphans = rt.dissolve(n, orphans)
		} else {
			rt.refit(n)
		}
		n = parent
	}
	rt.refit(rt.root)
	for !rt.nodes[rt.root].leaf && len(rt.nodes[rt.root].children) == 1 {
		old := rt.root
		rt.root = rt.nodes[old].children[0]
		rt.nodes[rt.root].parent = -1
		rt.freeNode(old)
	}
	if len(rt.nodes[rt.root].children) == 0 {
		rt.freeNode(rt.root)
		rt.root = -1
	}
	for _, s := range orphans {
		rt.insertSlot(int(s), rt.slots.boxes[s])
	}
}

// dissolve frees the subtree at n and appends its slots to orphans.
func (rt *RTree[T, A, W]) dissolve(n int32, orphans []int32) []int32 {
	if rt.nodes[n].leaf {
		orphans = append(orphans, rt.nodes[n].children...)
	} else {
		for _, c := range rt.nodes[n].children {
			orphans = rt.dissolve(c, orphans)
		}
	}
	rt.freeNode(n)
	return orphans
}

func (rt *RTree[T, A, W]) QueryPoint(x, y T) iter.Seq[int] {
	return rt.query(func(b aabb.Box[T]) bool { return b.ContainsPoint(x, y) })
}

func (rt *RTree[T, A, W]) QueryRect(r aabb.Box[T]) iter.Seq[int] {
	return rt.query(r.Overlaps)
}

func (rt *RTree[T, A, W]) query(hit func(aabb.Box[T]) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		if rt.root < 0 {
			return
		}
		stack := []int32{rt.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nd := &rt.nodes[n]
			if !hit(nd.box) {
				continue
			}
			if !nd.leaf {
				stack = append(stack, nd.children...)
				continue
			}
			for _, s := range nd.children {
				if hit(rt.slots.boxes[s]) && !yield(int(s)) {
					return
				}
			}
		}
	}
}

// Rebuild bulk loads the entries with sort-tile-recursive packing.
func (rt *RTree[T, A, W]) Rebuild(entries []Entry[T]) {
	rt.Clear()
	if len(entries) == 0 {
		return
	}
	level := make([]int32, 0, len(entries))
	for _, e := range entries {
		if rt.slots.has(e.Slot) {
			continue
		}
		rt.slots.set(e.Slot, e.Box)
		level = append(level, int32(e.Slot))
	}
	leaf := true
	for {
		box := func(c int32) aabb.Box[T] {
			if leaf {
				return rt.slots.boxes[c]
			}
			return rt.nodes[c].box
		}
		groups := packSTR(level, box, RTreeMaxEntries)
		next := make([]int32, 0, len(groups))
		for _, g := range groups {
			n := rt.newNode(leaf, -1)
			rt.nodes[n].children = g
			for _, c := range g {
				if leaf {
					rt.setLeafOf(int(c), n)
				} else {
					rt.nodes[c].parent = n
				}
			}
			rt.refit(n)
			next = append(next, n)
		}
		leaf = false
		level = next
		if len(level) == 1 {
			break
		}
	}
	rt.root = level[0]
}

func (rt *RTree[T, A, W]) Clear() {
	rt.nodes = rt.nodes[:0]
	rt.freeNodes = rt.freeNodes[:0]
	rt.root = -1
	rt.slots.reset()
	rt.leafOf = rt.leafOf[:0]
}

func (rt *RTree[T, A, W]) Len() int { return rt.slots.n }

// Height returns the number of levels in the tree, zero when empty.
func (rt *RTree[T, A, W]) Height() int {
	h := 0
	for n := rt.root; n >= 0; h++ {
		if rt.nodes[n].leaf {
			return h + 1
		}
		n = rt.nodes[n].children[0]
	}
	return h
}
