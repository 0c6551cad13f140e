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

// BVHLeafSize is the maximum number of entries in a BVH leaf.
const BVHLeafSize = 4

// bnode is a BVH node: a leaf with slots, or an inner node with
// exactly two children.
type bnode[T aabb.Scalar] struct {
	box         aabb.Box[T]
	parent      int32
	left, right int32
	slots       []int32
}

func (n *bnode[T]) isLeaf() bool { return n.left < 0 }

// BVH is a binary bounding volume hierarchy built top down by
// recursive surface area heuristic partitioning. Between builds it is
// maintained incrementally: inserts descend by least enlargement and
// refit the path, leaves that grow past [BVHLeafSize] are rebuilt
// locally, and removals refit and collapse empty leaves. It suits
// static or mostly static scenes, and scenes populated in bulk.
//
// A is the accumulator type used for areas and W computes them;
// see [NewBVHFloat] and [NewBVHInt].
type BVH[T aabb.Scalar, A any, W aabb.Widener[T, A]] struct {
	nodes     []bnode[T]
	freeNodes []int32
	root      int32
	slots     slotBoxes[T]
	leafOf    []int32

	// built is the number of entries in the last full build, and
	// inserted the number of new entries added incrementally since.
	built, inserted int

	w W
}

// NewBVHFloat returns a new [BVH] for floating point boxes.
func NewBVHFloat[T float32 | float64]() *BVH[T, float64, aabb.FloatAcc[T]] {
	return &BVH[T, float64, aabb.FloatAcc[T]]{root: -1}
}

// NewBVHInt returns a new [BVH] for integer boxes, with areas
// accumulated in 128 bits.
func NewBVHInt[T int8 | int16 | int32 | int64 | int]() *BVH[T, uint128.Uint128, aabb.IntAcc[T]] {
	return &BVH[T, uint128.Uint128, aabb.IntAcc[T]]{root: -1}
}

// NewBVHF32 returns a new float32 [BVH].
func NewBVHF32() *BVH[float32, float64, aabb.FloatAcc[float32]] { return NewBVHFloat[float32]() }

// NewBVHF64 returns a new float64 [BVH].
func NewBVHF64() *BVH[float64, float64, aabb.FloatAcc[float64]] { return NewBVHFloat[float64]() }

// NewBVHI64 returns a new int64 [BVH].
func NewBVHI64() *BVH[int64, uint128.Uint128, aabb.IntAcc[int64]] { return NewBVHInt[int64]() }

func (bv *BVH[T, A, W]) newNode(parent int32) int32 {
	if n := len(bv.freeNodes); n > 0 {
		id := bv.freeNodes[n-1]
		bv.freeNodes = bv.freeNodes[:n-1]
		bv.nodes[id] = bnode[T]{parent: parent, left: -1, right: -1, slots: bv.nodes[id].slots[:0]}
		return id
	}
	bv.nodes = append(bv.nodes, bnode[T]{parent: parent, left: -1, right: -1})
	return int32(len(bv.nodes) - 1)
}

func (bv *BVH[T, A, W]) freeNode(id int32) {
	bv.nodes[id].slots = bv.nodes[id].slots[:0]
	bv.nodes[id].left, bv.nodes[id].right, bv.nodes[id].parent = -1, -1, -1
	bv.freeNodes = append(bv.freeNodes, id)
}

func (bv *BVH[T, A, W]) setLeafOf(slot int, leaf int32) {
	if slot >= len(bv.leafOf) {
		bv.leafOf = append(bv.leafOf, make([]int32, slot+1-len(bv.leafOf))...)
	}
	bv.leafOf[slot] = leaf
}

func (bv *BVH[T, A, W]) slotBox(s int32) aabb.Box[T] { return bv.slots.boxes[s] }

// refit recomputes the box of node n from its slots or children.
func (bv *BVH[T, A, W]) refit(n int32) {
	nd := &bv.nodes[n]
	if !nd.isLeaf() {
		nd.box = bv.nodes[nd.left].box.Union(bv.nodes[nd.right].box)
		return
	}
	nd.box = boundsOf(nd.slots, bv.slotBox)
}

func (bv *BVH[T, A, W]) refitUp(n int32) {
	for ; n >= 0; n = bv.nodes[n].parent {
		bv.refit(n)
	}
}

// build turns node id into the root of a SAH hierarchy over items,
// which it reorders. Parent links of id are left unchanged.
func (bv *BVH[T, A, W]) build(id int32, items []int32) {
	if len(items) <= BVHLeafSize {
		bv.nodes[id].left, bv.nodes[id].right = -1, -1
		bv.nodes[id].slots = append(bv.nodes[id].slots[:0], items...)
		for _, s := range items {
			bv.setLeafOf(int(s), id)
		}
		bv.refit(id)
		return
	}
	k := splitSAH[T, A, W](items, bv.slotBox, 1, true)
	l := bv.newNode(id)
	r := bv.newNode(id)
	bv.nodes[id].slots = bv.nodes[id].slots[:0]
	bv.nodes[id].left, bv.nodes[id].right = l, r
	bv.build(l, items[:k])
	bv.build(r, items[k:])
	bv.refit(id)
}

// fullBuild rebuilds the whole hierarchy over the current slots.
func (bv *BVH[T, A, W]) fullBuild() {
	items := make([]int32, 0, bv.slots.n)
	for s, live := range bv.slots.live {
		if live {
			items = append(items, int32(s))
		}
	}
	bv.nodes = bv.nodes[:0]
	bv.freeNodes = bv.freeNodes[:0]
	bv.root = -1
	bv.built, bv.inserted = len(items), 0
	if len(items) == 0 {
		return
	}
	bv.root = bv.newNode(-1)
	bv.build(bv.root, items)
}

func (bv *BVH[T, A, W]) Insert(slot int, b aabb.Box[T]) {
	if bv.slots.has(slot) {
		bv.Remove(slot)
	}
	bv.slots.set(slot, b)
	bv.insertSlot(slot, b)
	bv.inserted++
}

// insertSlot descends by least enlargement to a leaf, adds the slot,
// refits the path and rebuilds the leaf locally if it overflows.
func (bv *BVH[T, A, W]) insertSlot(slot int, b aabb.Box[T]) {
	if bv.root < 0 {
		bv.root = bv.newNode(-1)
	}
	n := bv.root
	for !bv.nodes[n].isLeaf() {
		l, r := bv.nodes[n].left, bv.nodes[n].right
		la := bv.w.Area(bv.nodes[l].box.Union(b))
		ra := bv.w.Area(bv.nodes[r].box.Union(b))
		lg := bv.w.Sub(la, bv.w.Area(bv.nodes[l].box))
		rg := bv.w.Sub(ra, bv.w.Area(bv.nodes[r].box))
		if bv.w.Less(rg, lg) || (!bv.w.Less(lg, rg) && bv.w.Less(ra, la)) {
			n = r
		} else {
			n = l
		}
	}
	bv.nodes[n].slots = append(bv.nodes[n].slots, int32(slot))
	bv.setLeafOf(slot, n)
	if len(bv.nodes[n].slots) > BVHLeafSize {
		bv.build(n, slices.Clone(bv.nodes[n].slots))
	}
	bv.refitUp(n)
}

func (bv *BVH[T, A, W]) Update(slot int, b aabb.Box[T]) {
	if !bv.slots.has(slot) {
		bv.Insert(slot, b)
		return
	}
	if bv.slots.boxes[slot] == b {
		return
	}
	leaf := bv.leafOf[slot]
	if bv.nodes[leaf].box.ContainsBox(b) {
		bv.slots.set(slot, b)
		bv.refitUp(leaf)
		return
	}
	bv.removeSlot(slot)
	bv.slots.set(slot, b)
	bv.insertSlot(slot, b)
}

func (bv *BVH[T, A, W]) Remove(slot int) {
	if !bv.slots.has(slot) {
		return
	}
	bv.removeSlot(slot)
	bv.slots.unset(slot)
}

// removeSlot detaches the slot from its leaf. An emptied leaf is
// removed and its sibling takes the place of their parent.
func (bv *BVH[T, A, W]) removeSlot(slot int) {
	leaf := bv.leafOf[slot]
	bv.leafOf[slot] = -1
	ls := bv.nodes[leaf].slots
	if i := slices.Index(ls, int32(slot)); i >= 0 {
		bv.nodes[leaf].slots = slices.Delete(ls, i, i+1)
	}
	if len(bv.nodes[leaf].slots) > 0 {
		bv.refitUp(leaf)
		return
	}
	p := bv.nodes[leaf].parent
	if p < 0 {
		bv.freeNode(leaf)
		bv.root = -1
		return
	}
	sib := bv.nodes[p].left
	if sib == leaf {
		sib = bv.nodes[p].right
	}
	g := bv.nodes[p].parent
	bv.nodes[sib].parent = g
	switch {
	case g < 0:
		bv.root = sib
	case bv.nodes[g].left == p:
		bv.nodes[g].left = sib
	default:
		bv.nodes[g].right = sib
	}
	bv.freeNode(leaf)
	bv.freeNode(p)
	if g >= 0 {
		bv.refitUp(g)
	}
}

// Flush performs a full build when more entries were inserted
// incrementally than the last full build contained, which is the case
// after populating an empty hierarchy one entry at a time.
func (bv *BVH[T, A, W]) Flush() {
	if bv.inserted > bv.built {
		bv.fullBuild()
	}
}

func (bv *BVH[T, A, W]) QueryPoint(x, y T) iter.Seq[int] {
	return bv.query(func(b aabb.Box[T]) bool { return b.ContainsPoint(x, y) })
}

func (bv *BVH[T, A, W]) QueryRect(r aabb.Box[T]) iter.Seq[int] {
	return bv.query(r.Overlaps)
}

func (bv *BVH[T, A, W]) query(hit func(aabb.Box[T]) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		if bv.root < 0 {
			return
		}
		stack := []int32{bv.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nd := &bv.nodes[n]
			if !hit(nd.box) {
				continue
			}
			if !nd.isLeaf() {
				stack = append(stack, nd.right, nd.left)
				continue
			}
			for _, s := range nd.slots {
				if hit(bv.slots.boxes[s]) && !yield(int(s)) {
					return
				}
			}
		}
	}
}

func (bv *BVH[T, A, W]) Rebuild(entries []Entry[T]) {
	bv.slots.reset()
	bv.leafOf = bv.leafOf[:0]
	for _, e := range entries {
		bv.slots.set(e.Slot, e.Box)
	}
	bv.fullBuild()
}

func (bv *BVH[T, A, W]) Clear() {
	bv.nodes = bv.nodes[:0]
	bv.freeNodes = bv.freeNodes[:0]
	bv.root = -1
	bv.slots.reset()
	bv.leafOf = bv.leafOf[:0]
	bv.built, bv.inserted = 0, 0
}

func (bv *BVH[T, A, W]) Len() int { return bv.slots.n }

// Nodes returns the number of nodes in the hierarchy.
func (bv *BVH[T, A, W]) Nodes() int { return len(bv.nodes) - len(bv.freeNodes) }
