// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aabb

import "math"

// CellCoord maps a coordinate to a grid cell index along one axis for
// cells of the given size starting at origin. It rounds toward negative
// infinity (Euclidean division for integers), is monotonic in v, and
// saturates to the int32 range. The cell size must be positive.
func CellCoord[T Scalar](v, origin, size T) int32 {
	if IsFloat[T]() {
		t := (float64(v) - float64(origin)) / float64(size)
		t = math.Floor(t)
		switch {
		case t >= math.MaxInt32:
			return math.MaxInt32
		case t <= math.MinInt32:
			return math.MinInt32
		}
		return int32(t)
	}
	a, o, s := int64(v), int64(origin), int64(size)
	rel := a - o
	switch {
	case a >= 0 && o < 0 && rel < 0:
		// v-origin is above MaxInt64; its magnitude fits in a uint64
		q := (uint64(a) - uint64(o)) / uint64(s)
		if q >= math.MaxInt32 {
			return math.MaxInt32
		}
		return int32(q)
	case a < 0 && o >= 0 && rel > 0:
		// below MinInt64
		m := uint64(o) - uint64(a)
		q := m / uint64(s)
		if m%uint64(s) != 0 {
			q++
		}
		if q >= -math.MinInt32 {
			return math.MinInt32
		}
		return -int32(q)
	}
	q := rel / s
	if rel%s != 0 && rel < 0 {
		q--
	}
	switch {
	case q >= math.MaxInt32:
		return math.MaxInt32
	case q <= math.MinInt32:
		return math.MinInt32
	}
	return int32(q)
}
