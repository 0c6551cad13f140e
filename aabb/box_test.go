// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aabb

import (
	"math"
	"testing"

	"cogentcore.org/core/base/errors"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/uint128"
)

func TestBoxPredicates(t *testing.T) {
	a := New(0.0, 0.0, 10.0, 10.0)
	b := New(5.0, 5.0, 15.0, 15.0)
	c := New(10.0, 0.0, 20.0, 10.0)
	d := New(11.0, 0.0, 20.0, 10.0)

	assert.True(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(c), "shared edges overlap")
	assert.False(t, a.Overlaps(d))

	assert.Equal(t, New(0.0, 0.0, 15.0, 15.0), a.Union(b))
	assert.Equal(t, New(5.0, 5.0, 10.0, 10.0), a.Intersect(b))

	assert.True(t, a.ContainsPoint(0, 0))
	assert.True(t, a.ContainsPoint(10, 10))
	assert.False(t, a.ContainsPoint(10.5, 5))

	assert.True(t, a.ContainsBox(New(2.0, 2.0, 8.0, 8.0)))
	assert.False(t, a.ContainsBox(b))
	assert.Equal(t, 100.0, a.Area())
}

func TestIntersectDisjointStaysValid(t *testing.T) {
	a := New[int64](0, 0, 10, 10)
	b := New[int64](20, 20, 30, 30)
	r := a.Intersect(b)
	assert.NoError(t, r.Validate())
	assert.True(t, r.IsEmpty())
	assert.Zero(t, r.Area())
}

func TestAreaAndEmpty(t *testing.T) {
	b := New(5.0, 7.0, 10.0, 9.0)
	assert.InDelta(t, 10.0, b.Area(), 1e-10)
	assert.False(t, b.IsEmpty())

	b.MaxX = -b.MaxX
	assert.Zero(t, b.Area())
	assert.True(t, b.IsEmpty())

	b.MaxX = b.MinX
	assert.Zero(t, b.Area())
	assert.True(t, b.IsEmpty())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New[float32](0, 0, 0, 0).Validate())
	assert.NoError(t, New[float32](-5, -5, 5, 5).Validate())

	err := New[float32](10, 0, 0, 10).Validate()
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	nan := float32(math.NaN())
	err = New[float32](0, nan, 10, 10).Validate()
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	if !Debug {
		assert.Error(t, Check(New[int32](3, 3, 1, 1)))
	}
}

func TestUnionAll(t *testing.T) {
	_, ok := Union[int32]()
	assert.False(t, ok)
	u, ok := Union(New[int32](0, 0, 1, 1), New[int32](-3, 2, 0, 9), New[int32](4, 4, 5, 5))
	assert.True(t, ok)
	assert.Equal(t, New[int32](-3, 0, 5, 9), u)
}

func TestFromXYWH(t *testing.T) {
	assert.Equal(t, New[int64](2, 3, 12, 23), FromXYWH[int64](2, 3, 10, 20))
	b := FromXYWH[int64](2, 3, 10, 20)
	assert.Equal(t, int64(10), b.Width())
	assert.Equal(t, int64(20), b.Height())
}

func TestIsFloat(t *testing.T) {
	assert.True(t, IsFloat[float32]())
	assert.True(t, IsFloat[float64]())
	assert.False(t, IsFloat[int64]())
	assert.False(t, IsFloat[int8]())
}

func TestFloatAcc(t *testing.T) {
	var w FloatAcc[float32]
	a := w.Area(New[float32](0, 0, 3, 4))
	assert.Equal(t, 12.0, a)
	assert.Equal(t, 36.0, w.Cost(a, 3))
	assert.Zero(t, w.Area(New[float32](0, 0, 0, 4)))
	assert.True(t, w.Less(a, w.Add(a, 1)))
}

func TestIntAccWidens(t *testing.T) {
	var w IntAcc[int64]
	full := New[int64](math.MinInt64, math.MinInt64, math.MaxInt64, math.MaxInt64)
	a := w.Area(full)
	span := uint128.From64(math.MaxUint64)
	assert.Equal(t, span.Mul(span), a, "64-bit extents multiply without overflow")

	assert.Equal(t, uint128.Max, w.Cost(a, 3), "weighted cost saturates")
	assert.Equal(t, uint128.Max, w.Add(a, a), "sums saturate")

	small := w.Area(New[int64](0, 0, 10, 20))
	assert.Equal(t, uint128.From64(200), small)
	assert.Equal(t, uint128.From64(600), w.Cost(small, 3))
	assert.Equal(t, uint128.From64(400), w.Add(small, small))
	assert.True(t, w.Less(small, a))
	assert.True(t, w.Area(New[int64](5, 5, 5, 10)).IsZero())
}

func TestCellCoord(t *testing.T) {
	assert.Equal(t, int32(0), CellCoord[float32](5, 0, 10))
	assert.Equal(t, int32(-1), CellCoord[float32](-0.5, 0, 10))
	assert.Equal(t, int32(-3), CellCoord[float64](-25, 0, 10))
	assert.Equal(t, int32(-3), CellCoord[int64](-21, 0, 10))
	assert.Equal(t, int32(-2), CellCoord[int64](-20, 0, 10))
	assert.Equal(t, int32(1), CellCoord[int64](15, 5, 10))

	assert.Equal(t, int32(math.MaxInt32), CellCoord[float32](1e20, 0, 1))
	assert.Equal(t, int32(math.MinInt32), CellCoord[float32](-1e20, 0, 1))
	assert.Equal(t, int32(math.MaxInt32), CellCoord[float64](1e20, 0, 1))
	assert.Equal(t, int32(math.MinInt32), CellCoord[float64](-1e20, 0, 1))
	assert.Equal(t, int32(math.MaxInt32), CellCoord[int64](math.MaxInt64/2, 0, 1))

	// v-origin overflows int64
	assert.Equal(t, int32(math.MaxInt32), CellCoord[int64](math.MaxInt64, -10, 16))
	assert.Equal(t, int32(math.MinInt32), CellCoord[int64](math.MinInt64, 10, 16))
	assert.Equal(t, int32(2), CellCoord[int64](math.MaxInt64, -1<<62, 1<<62))
	assert.Equal(t, int32(-3), CellCoord[int64](math.MinInt64, 1<<62, 1<<62))
	assert.Equal(t, int32(-4), CellCoord[int64](math.MinInt64, 1<<62+1, 1<<62))

	for _, v := range []float64{math.MinInt32, -1, 0, 1, math.MaxInt32} {
		lo := math.Nextafter(v, math.Inf(-1))
		hi := math.Nextafter(v, math.Inf(1))
		assert.LessOrEqual(t, CellCoord(lo, 0, 1), CellCoord(v, 0, 1))
		assert.LessOrEqual(t, CellCoord(v, 0, 1), CellCoord(hi, 0, 1))
	}
}

func TestAccSub(t *testing.T) {
	var f FloatAcc[float64]
	assert.Equal(t, 2.0, f.Sub(5, 3))
	assert.Zero(t, f.Sub(3, 5))

	var i IntAcc[int32]
	assert.Equal(t, uint128.From64(2), i.Sub(uint128.From64(5), uint128.From64(3)))
	assert.True(t, i.Sub(uint128.From64(3), uint128.From64(5)).IsZero())
}
