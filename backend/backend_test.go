// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"cogentcore.org/boxtree/aabb"
	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

type namedBackend[T aabb.Scalar] struct {
	name string
	new  func() Backend[T]
}

func floatBackends() []namedBackend[float64] {
	return []namedBackend[float64]{
		{"flat", func() Backend[float64] { return NewFlat[float64]() }},
		{"grid", func() Backend[float64] { return NewGrid[float64](16) }},
		{"rtree", func() Backend[float64] { return NewRTreeF64() }},
		{"bvh", func() Backend[float64] { return NewBVHF64() }},
	}
}

func intBackends() []namedBackend[int64] {
	return []namedBackend[int64]{
		{"flat", func() Backend[int64] { return NewFlat[int64]() }},
		{"grid", func() Backend[int64] { return NewGrid[int64](16) }},
		{"rtree", func() Backend[int64] { return NewRTreeI64() }},
		{"bvh", func() Backend[int64] { return NewBVHI64() }},
	}
}

func collect(seq func(func(int) bool)) []int {
	var out []int
	seq(func(s int) bool {
		out = append(out, s)
		return true
	})
	slices.Sort(out)
	return out
}

func randBox(rnd *randx.SysRand, world float64) aabb.Box[float64] {
	x := rnd.Float64() * world
	y := rnd.Float64() * world
	w := rnd.Float64() * world / 10
	h := rnd.Float64() * world / 10
	return aabb.FromXYWH(x, y, w, h)
}

func TestBackendsBasic(t *testing.T) {
	for _, nb := range floatBackends() {
		t.Run(nb.name, func(t *testing.T) {
			b := nb.new()
			b.Insert(0, aabb.New(0.0, 0, 10, 10))
			b.Insert(1, aabb.New(5.0, 5, 15, 15))
			if f, ok := b.(Flusher); ok {
				f.Flush()
			}
			assert.Equal(t, 2, b.Len())
			assert.Equal(t, []int{0, 1}, collect(b.QueryPoint(6, 6)))
			assert.Equal(t, []int{0}, collect(b.QueryPoint(1, 1)))
			assert.Empty(t, collect(b.QueryPoint(100, 100)))
			assert.Equal(t, []int{1}, collect(b.QueryRect(aabb.New(12.0, 12, 20, 20))))

			// shared edges overlap
			assert.Equal(t, []int{0, 1}, collect(b.QueryRect(aabb.New(10.0, 10, 10, 10))))

			b.Update(0, aabb.New(20.0, 0, 30, 10))
			assert.Equal(t, []int{1}, collect(b.QueryPoint(6, 6)))
			assert.Equal(t, []int{0}, collect(b.QueryPoint(25, 5)))

			b.Remove(1)
			b.Remove(1)
			assert.Equal(t, 1, b.Len())
			assert.Empty(t, collect(b.QueryPoint(6, 6)))

			b.Update(7, aabb.New(0.0, 0, 1, 1))
			assert.Equal(t, 2, b.Len(), "update of an absent slot inserts it")

			b.Clear()
			assert.Zero(t, b.Len())
			assert.Empty(t, collect(b.QueryRect(aabb.New(-1e9, -1e9, 1e9, 1e9))))
		})
	}
}

func TestQueryEarlyStop(t *testing.T) {
	for _, nb := range floatBackends() {
		t.Run(nb.name, func(t *testing.T) {
			b := nb.new()
			for i := range 50 {
				b.Insert(i, aabb.New(0.0, 0, 10, 10))
			}
			n := 0
			for range b.QueryPoint(5, 5) {
				n++
				if n == 3 {
					break
				}
			}
			assert.Equal(t, 3, n)
			// sequences are restartable
			assert.Len(t, collect(b.QueryPoint(5, 5)), 50)
			assert.Len(t, collect(b.QueryPoint(5, 5)), 50)
		})
	}
}

// TestBackendsAgree runs the same random operations against every
// backend and checks that all queries agree with the flat scan.
func TestBackendsAgree(t *testing.T) {
	const world = 1000.0
	rnd := randx.NewSysRand(42)
	backs := floatBackends()
	bs := make([]Backend[float64], len(backs))
	for i, nb := range backs {
		bs[i] = nb.new()
	}
	live := map[int]bool{}
	apply := func(f func(b Backend[float64])) {
		for _, b := range bs {
			f(b)
		}
	}
	for step := range 3000 {
		slot := rnd.Intn(400)
		switch op := rnd.Intn(10); {
		case op < 5:
			bx := randBox(rnd, world)
			apply(func(b Backend[float64]) { b.Insert(slot, bx) })
			live[slot] = true
		case op < 8:
			bx := randBox(rnd, world)
			apply(func(b Backend[float64]) { b.Update(slot, bx) })
			live[slot] = true
		default:
			apply(func(b Backend[float64]) { b.Remove(slot) })
			delete(live, slot)
		}
		if step%50 == 0 {
			apply(func(b Backend[float64]) {
				if f, ok := b.(Flusher); ok {
					f.Flush()
				}
			})
		}
		if step%25 != 0 {
			continue
		}
		x, y := rnd.Float64()*world, rnd.Float64()*world
		r := randBox(rnd, world)
		want := collect(bs[0].QueryPoint(x, y))
		wantR := collect(bs[0].QueryRect(r))
		for i, b := range bs[1:] {
			name := backs[i+1].name
			require.Equal(t, len(live), b.Len(), name)
			require.Equal(t, want, collect(b.QueryPoint(x, y)), "%s point at step %d", name, step)
			require.Equal(t, wantR, collect(b.QueryRect(r)), "%s rect at step %d", name, step)
		}
	}
	checkRTree(t, bs[2].(*RTree[float64, float64, aabb.FloatAcc[float64]]))
	checkBVH(t, bs[3].(*BVH[float64, float64, aabb.FloatAcc[float64]]))
}

func TestIntBackendsAgree(t *testing.T) {
	rnd := randx.NewSysRand(7)
	backs := intBackends()
	bs := make([]Backend[int64], len(backs))
	var entries []Entry[int64]
	for i := range 300 {
		x := rnd.Int63n(2000) - 1000
		y := rnd.Int63n(2000) - 1000
		entries = append(entries, Entry[int64]{i, aabb.FromXYWH(x, y, rnd.Int63n(100), rnd.Int63n(100))})
	}
	for i, nb := range backs {
		bs[i] = nb.new()
		bs[i].Rebuild(entries)
	}
	for range 200 {
		r := aabb.FromXYWH(rnd.Int63n(2000)-1000, rnd.Int63n(2000)-1000, rnd.Int63n(300), rnd.Int63n(300))
		want := collect(bs[0].QueryRect(r))
		for i, b := range bs[1:] {
			require.Equal(t, want, collect(b.QueryRect(r)), backs[i+1].name)
		}
	}
	checkRTree(t, bs[2].(*RTree[int64, uint128.Uint128, aabb.IntAcc[int64]]))
	checkBVH(t, bs[3].(*BVH[int64, uint128.Uint128, aabb.IntAcc[int64]]))
}

func TestHugeIntBoxes(t *testing.T) {
	const lim = 1 << 62
	for _, nb := range intBackends() {
		if nb.name == "grid" {
			continue
		}
		t.Run(nb.name, func(t *testing.T) {
			b := nb.new()
			for i := range 20 {
				v := int64(i) * (lim / 20)
				b.Insert(i, aabb.New(-lim, -lim, v, v))
			}
			b.Insert(20, aabb.New[int64](0, 0, 1, 1))
			assert.Len(t, collect(b.QueryPoint(-lim, -lim)), 20)
			assert.Contains(t, collect(b.QueryPoint(1, 1)), 20)
		})
	}
}

func TestGridDedup(t *testing.T) {
	g := NewGrid[float64](10)
	g.Insert(0, aabb.New(0.0, 0, 95, 95))
	assert.Equal(t, 100, g.Cells())
	assert.Equal(t, []int{0}, collect(g.QueryRect(aabb.New(-5.0, -5, 200, 200))))

	g.Update(0, aabb.New(0.0, 0, 5, 5))
	assert.Equal(t, 1, g.Cells(), "moving a box unregisters its old cells")
	g.Remove(0)
	assert.Zero(t, g.Cells())
}

func TestGridNegativeAndOversized(t *testing.T) {
	g := NewGridOrigin[int64](8, 4, 4)
	g.Insert(0, aabb.New[int64](-20, -20, -10, -10))
	g.Insert(1, aabb.New[int64](-1<<40, -1<<40, 1<<40, 1<<40))
	assert.Equal(t, []int{0, 1}, collect(g.QueryPoint(-15, -15)))
	assert.Equal(t, []int{1}, collect(g.QueryPoint(1<<39, 0)))
	assert.Equal(t, []int{0, 1}, collect(g.QueryRect(aabb.New[int64](-12, -12, 0, 0))))
	g.Remove(1)
	assert.Equal(t, []int{0}, collect(g.QueryPoint(-15, -15)))

	assert.Panics(t, func() { NewGrid[float64](0) })
}

func TestGridOriginNearLimits(t *testing.T) {
	boxes := []aabb.Box[int64]{
		aabb.New[int64](0, 0, math.MaxInt64, 10),
		aabb.New[int64](math.MinInt64, -5, -1, 5),
		aabb.New[int64](-3, -3, 3, 3),
	}
	for _, ox := range []int64{-10, 10, math.MinInt64, math.MaxInt64} {
		t.Run(fmt.Sprint(ox), func(t *testing.T) {
			g := NewGridOrigin[int64](16, ox, 0)
			f := NewFlat[int64]()
			for i, b := range boxes {
				g.Insert(i, b)
				f.Insert(i, b)
			}
			for _, p := range [][2]int64{{5, 5}, {math.MaxInt64, 5}, {math.MinInt64, 0}, {0, 0}, {-1, 4}} {
				assert.Equal(t, collect(f.QueryPoint(p[0], p[1])), collect(g.QueryPoint(p[0], p[1])), "point %v", p)
			}
			for _, r := range []aabb.Box[int64]{
				aabb.New[int64](1, 1, 2, 2),
				aabb.New[int64](math.MaxInt64-1, 0, math.MaxInt64, 1),
				aabb.New[int64](math.MinInt64, math.MinInt64, math.MaxInt64, math.MaxInt64),
			} {
				assert.Equal(t, collect(f.QueryRect(r)), collect(g.QueryRect(r)), "rect %v", r)
			}
		})
	}
}

func TestGridSingleCellQuery(t *testing.T) {
	g := NewGrid[float64](10)
	g.Insert(0, aabb.New(1.0, 1, 4, 4))
	g.Insert(1, aabb.New(2.0, 2, 8, 8))
	g.Insert(2, aabb.New(0.0, 0, 25, 25))
	g.Insert(3, aabb.New(6.0, 6, 9, 9))
	assert.Equal(t, []int{0, 1, 2}, collect(g.QueryRect(aabb.New(3.0, 3, 5, 5))))
	assert.Equal(t, []int{0, 1, 2, 3}, collect(g.QueryRect(aabb.New(3.0, 3, 15, 15))))
}

func TestSplitKeepsScoredOrder(t *testing.T) {
	// all x centers are equal and the x order wins with {a, b} | {c, d},
	// while the y order interleaves them as a, c, b, d
	a := aabb.New(-1.0, 0, 1, 10)
	b := aabb.New(-1.0, 1, 1, 11)
	c := aabb.New(-50.0, 5, 50, 6)
	d := aabb.New(-50.0, 6, 50, 7)
	items := []aabb.Box[float64]{a, b, c, d}
	id := func(b aabb.Box[float64]) aabb.Box[float64] { return b }
	k := splitSAH[float64, float64, aabb.FloatAcc[float64]](items, id, 1, false)
	require.Equal(t, 2, k)
	assert.ElementsMatch(t, []aabb.Box[float64]{a, b}, items[:k])
	assert.ElementsMatch(t, []aabb.Box[float64]{c, d}, items[k:])
}

func TestRTreeSplitsAndCondenses(t *testing.T) {
	rt := NewRTreeF64()
	rnd := randx.NewSysRand(3)
	for i := range 500 {
		rt.Insert(i, randBox(rnd, 1000))
	}
	checkRTree(t, rt)
	assert.Greater(t, rt.Height(), 2)
	for i := range 480 {
		rt.Remove(i)
		if i%40 == 0 {
			checkRTree(t, rt)
		}
	}
	checkRTree(t, rt)
	assert.Equal(t, 20, rt.Len())
	for i := 480; i < 500; i++ {
		rt.Remove(i)
	}
	assert.Zero(t, rt.Height())
	assert.Empty(t, collect(rt.QueryRect(aabb.New(-1e9, -1e9, 1e9, 1e9))))
}

func TestRTreeBulk(t *testing.T) {
	rt := NewRTreeF32()
	var entries []Entry[float32]
	for i := range 1000 {
		x := float32(i%40) * 10
		y := float32(i/40) * 10
		entries = append(entries, Entry[float32]{i, aabb.FromXYWH(x, y, 5, 5)})
	}
	rt.Rebuild(entries)
	checkRTree(t, rt)
	assert.Equal(t, 1000, rt.Len())
	assert.Equal(t, []int{41}, collect(rt.QueryPoint(12, 12)))
	rt.Insert(2000, aabb.New[float32](0, 0, 400, 250))
	checkRTree(t, rt)
	assert.Equal(t, []int{41, 2000}, collect(rt.QueryPoint(12, 12)))
}

func TestBVHFlush(t *testing.T) {
	bv := NewBVHF64()
	rnd := randx.NewSysRand(5)
	for i := range 200 {
		bv.Insert(i, randBox(rnd, 1000))
	}
	checkBVH(t, bv)
	assert.Equal(t, 200, bv.inserted)
	bv.Flush()
	assert.Equal(t, 200, bv.built)
	assert.Zero(t, bv.inserted)
	checkBVH(t, bv)

	for i := range 200 {
		bv.Update(i, randBox(rnd, 1000))
	}
	bv.Flush()
	assert.Zero(t, bv.inserted, "updates are not counted as inserts")
	checkBVH(t, bv)

	for i := range 200 {
		bv.Remove(i)
	}
	assert.Zero(t, bv.Nodes())
	assert.Equal(t, -1, int(bv.root))
}

func checkRTree[T aabb.Scalar, A any, W aabb.Widener[T, A]](t *testing.T, rt *RTree[T, A, W]) {
	t.Helper()
	if rt.root < 0 {
		assert.Zero(t, rt.Len())
		return
	}
	seen := map[int32]bool{}
	leafDepth := -1
	var walk func(n int32, depth int)
	walk = func(n int32, depth int) {
		nd := rt.nodes[n]
		require.LessOrEqual(t, len(nd.children), RTreeMaxEntries)
		if n != rt.root {
			require.NotEmpty(t, nd.children)
		}
		for _, c := range nd.children {
			require.True(t, nd.box.ContainsBox(rt.childBox(n, c)), "node box contains child")
			if nd.leaf {
				require.False(t, seen[c], "slot %d reachable once", c)
				seen[c] = true
				require.Equal(t, n, rt.leafOf[c])
				continue
			}
			require.Equal(t, n, rt.nodes[c].parent)
			walk(c, depth+1)
		}
		if nd.leaf {
			if leafDepth < 0 {
				leafDepth = depth
			}
			require.Equal(t, leafDepth, depth, "leaves at equal depth")
		}
	}
	walk(rt.root, 0)
	require.Len(t, seen, rt.Len())
	for s := range seen {
		require.True(t, rt.slots.has(int(s)))
	}
}

func checkBVH[T aabb.Scalar, A any, W aabb.Widener[T, A]](t *testing.T, bv *BVH[T, A, W]) {
	t.Helper()
	if bv.root < 0 {
		assert.Zero(t, bv.Len())
		return
	}
	seen := map[int32]bool{}
	var walk func(n int32)
	walk = func(n int32) {
		nd := bv.nodes[n]
		if nd.isLeaf() {
			require.LessOrEqual(t, len(nd.slots), BVHLeafSize)
			for _, s := range nd.slots {
				require.True(t, nd.box.ContainsBox(bv.slots.boxes[s]), fmt.Sprint("leaf box contains slot ", s))
				require.False(t, seen[s])
				seen[s] = true
				require.Equal(t, n, bv.leafOf[s])
			}
			return
		}
		for _, c := range []int32{nd.left, nd.right} {
			require.Equal(t, n, bv.nodes[c].parent)
			require.True(t, nd.box.ContainsBox(bv.nodes[c].box))
			walk(c)
		}
	}
	walk(bv.root)
	require.Len(t, seen, bv.Len())
}
