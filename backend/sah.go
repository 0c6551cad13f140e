// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"cmp"
	"math"
	"slices"

	"cogentcore.org/boxtree/aabb"
)

// sortByCenter stably sorts items by the center of their box along
// axis 0 (x) or 1 (y).
func sortByCenter[T aabb.Scalar, E any](items []E, box func(E) aabb.Box[T], axis int) {
	slices.SortStableFunc(items, func(a, b E) int {
		ax, ay := box(a).Center()
		bx, by := box(b).Center()
		if axis == 0 {
			return cmp.Compare(ax, bx)
		}
		return cmp.Compare(ay, by)
	})
}

// boundsOf returns the union of the boxes of items.
func boundsOf[T aabb.Scalar, E any](items []E, box func(E) aabb.Box[T]) aabb.Box[T] {
	if len(items) == 0 {
		return aabb.Box[T]{}
	}
	u := box(items[0])
	for _, it := range items[1:] {
		u = u.Union(box(it))
	}
	return u
}

// splitSAH reorders items and returns the position k that splits them
// into items[:k] and items[k:], each of at least minSide entries.
// Both axes are tried, sorting by box center. When weighted is false
// the split minimizes area(L)+area(R), breaking ties by the weighted
// cost area(L)*|L|+area(R)*|R|; when weighted is true the two criteria
// swap roles. len(items) must be at least 2*minSide and minSide >= 1.
func splitSAH[T aabb.Scalar, A any, W aabb.Widener[T, A], E any](items []E, box func(E) aabb.Box[T], minSide int, weighted bool) int {
	var w W
	n := len(items)
	prefix := make([]aabb.Box[T], n)
	suffix := make([]aabb.Box[T], n)

	var (
		found                      bool
		bestAxis, bestK            int
		bestPrimary, bestSecondary A
		byX                        []E
	)
	for axis := range 2 {
		sortByCenter(items, box, axis)
		prefix[0] = box(items[0])
		for i := 1; i < n; i++ {
			prefix[i] = prefix[i-1].Union(box(items[i]))
		}
		suffix[n-1] = box(items[n-1])
		for i := n - 2; i >= 0; i-- {
			suffix[i] = suffix[i+1].Union(box(items[i]))
		}
		for k := minSide; k <= n-minSide; k++ {
			la, ra := w.Area(prefix[k-1]), w.Area(suffix[k])
			sum := w.Add(la, ra)
			cost := w.Add(w.Cost(la, k), w.Cost(ra, n-k))
			p, s := sum, cost
			if weighted {
				p, s = cost, sum
			}
			if !found || w.Less(p, bestPrimary) || (!w.Less(bestPrimary, p) && w.Less(s, bestSecondary)) {
				found = true
				bestAxis, bestK = axis, k
				bestPrimary, bestSecondary = p, s
			}
		}
		if axis == 0 {
			// sorting the y order by x again may permute ties
			byX = slices.Clone(items)
		}
	}
	if bestAxis == 0 {
		copy(items, byX)
	}
	return bestK
}

// packSTR groups items into runs of at most size entries using
// sort-tile-recursive packing: items are sorted by center x, cut into
// vertical slabs, and each slab is sorted by center y and chunked.
func packSTR[T aabb.Scalar, E any](items []E, box func(E) aabb.Box[T], size int) [][]E {
	n := len(items)
	if n == 0 {
		return nil
	}
	groups := (n + size - 1) / size
	slabs := int(math.Ceil(math.Sqrt(float64(groups))))
	per := slabs * size
	sortByCenter(items, box, 0)
	var out [][]E
	for lo := 0; lo < n; lo += per {
		slab := items[lo:min(lo+per, n)]
		sortByCenter(slab, box, 1)
		for c := 0; c < len(slab); c += size {
			out = append(out, slices.Clone(slab[c:min(c+size, len(slab))]))
		}
	}
	return out
}
