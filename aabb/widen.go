// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aabb

import (
	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"
)

// Widener computes areas and surface-area-heuristic costs for boxes
// over T in a wider accumulator type A, so that summing and comparing
// many costs neither overflows nor cancels. Implementations are
// stateless and their zero value is ready to use.
type Widener[T Scalar, A any] interface {
	// Area returns the area of the box; empty boxes have zero area.
	Area(b Box[T]) A

	// Cost returns area weighted by an entry count.
	Cost(area A, n int) A

	// Add returns a + b.
	Add(a, b A) A

	// Sub returns a - b for a >= b, and zero otherwise.
	Sub(a, b A) A

	// Less returns whether a < b.
	Less(a, b A) bool
}

// FloatAcc accumulates areas of floating point boxes in float64.
type FloatAcc[T constraints.Float] struct{}

func (FloatAcc[T]) Area(b Box[T]) float64 {
	w := float64(b.MaxX) - float64(b.MinX)
	h := float64(b.MaxY) - float64(b.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

func (FloatAcc[T]) Cost(area float64, n int) float64 { return area * float64(n) }

func (FloatAcc[T]) Add(a, b float64) float64 { return a + b }

func (FloatAcc[T]) Sub(a, b float64) float64 { return max(a-b, 0) }

func (FloatAcc[T]) Less(a, b float64) bool { return a < b }

// IntAcc accumulates areas of integer boxes in an unsigned 128-bit
// integer. A 64-bit width times a 64-bit height always fits; weighted
// costs and sums saturate at [uint128.Max].
type IntAcc[T constraints.Signed] struct{}

// span returns hi - lo as an unsigned 64-bit value, which is exact
// for any lo <= hi of a signed type up to 64 bits.
func span[T constraints.Signed](lo, hi T) uint64 {
	if hi <= lo {
		return 0
	}
	return uint64(int64(hi)) - uint64(int64(lo))
}

func (IntAcc[T]) Area(b Box[T]) uint128.Uint128 {
	w := span(b.MinX, b.MaxX)
	h := span(b.MinY, b.MaxY)
	if w == 0 || h == 0 {
		return uint128.Zero
	}
	return uint128.From64(w).Mul64(h)
}

func (IntAcc[T]) Cost(area uint128.Uint128, n int) uint128.Uint128 {
	if n <= 0 || area.IsZero() {
		return uint128.Zero
	}
	m := uint64(n)
	if area.Cmp(uint128.Max.Div64(m)) > 0 {
		return uint128.Max
	}
	return area.Mul64(m)
}

func (IntAcc[T]) Add(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(uint128.Max.Sub(b)) > 0 {
		return uint128.Max
	}
	return a.Add(b)
}

func (IntAcc[T]) Sub(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) <= 0 {
		return uint128.Zero
	}
	return a.Sub(b)
}

func (IntAcc[T]) Less(a, b uint128.Uint128) bool { return a.Cmp(b) < 0 }
