// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aabb provides a generic 2D axis-aligned bounding box
// and the scalar helpers used by the spatial backends.
// It does not depend on any geometry package.
package aabb

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"golang.org/x/exp/constraints"
)

// Scalar is the set of coordinate types a [Box] can be built over.
// Unsigned integers are excluded because box widths are computed
// as differences that must not wrap.
type Scalar interface {
	constraints.Signed | constraints.Float
}

// ErrInvalidGeometry is returned for boxes with NaN coordinates
// or a minimum greater than the maximum on either axis.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Box is an axis-aligned bounding box. The edges are part of the box,
// so two boxes sharing an edge overlap. A valid Box has Min <= Max on
// both axes and no NaN coordinates.
type Box[T Scalar] struct {
	MinX, MinY, MaxX, MaxY T
}

// New returns a new [Box] from the given minimum and maximum coordinates.
func New[T Scalar](minX, minY, maxX, maxY T) Box[T] {
	return Box[T]{minX, minY, maxX, maxY}
}

// FromXYWH returns a new [Box] from an origin and a size.
func FromXYWH[T Scalar](x, y, w, h T) Box[T] {
	return Box[T]{x, y, x + w, y + h}
}

// String implements [fmt.Stringer].
func (b Box[T]) String() string {
	return fmt.Sprintf("(%v,%v,%v,%v)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Validate returns [ErrInvalidGeometry] if the box has a NaN
// coordinate or is inverted on either axis.
func (b Box[T]) Validate() error {
	if isNaN(b.MinX) || isNaN(b.MinY) || isNaN(b.MaxX) || isNaN(b.MaxY) {
		return fmt.Errorf("aabb: NaN coordinate in %v: %w", b, ErrInvalidGeometry)
	}
	if b.MaxX < b.MinX || b.MaxY < b.MinY {
		return fmt.Errorf("aabb: inverted box %v: %w", b, ErrInvalidGeometry)
	}
	return nil
}

// IsEmpty returns whether the box has no area (zero width or height).
func (b Box[T]) IsEmpty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Width returns the extent along x.
func (b Box[T]) Width() T { return b.MaxX - b.MinX }

// Height returns the extent along y.
func (b Box[T]) Height() T { return b.MaxY - b.MinY }

// Area returns the area as a float64. Use a [Widener] for exact
// or overflow-safe area accumulation.
func (b Box[T]) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	return (float64(b.MaxX) - float64(b.MinX)) * (float64(b.MaxY) - float64(b.MinY))
}

// Center returns the center of the box in float64, which is
// precise enough for ordering boxes along an axis.
func (b Box[T]) Center() (x, y float64) {
	return 0.5 * (float64(b.MinX) + float64(b.MaxX)), 0.5 * (float64(b.MinY) + float64(b.MaxY))
}

// Union returns the smallest box containing both boxes.
func (b Box[T]) Union(o Box[T]) Box[T] {
	return Box[T]{min(b.MinX, o.MinX), min(b.MinY, o.MinY), max(b.MaxX, o.MaxX), max(b.MaxY, o.MaxY)}
}

// Intersect returns the intersection of the two boxes. If they
// do not overlap, the result is clamped to a zero-area box so that
// it remains valid; use [Box.Overlaps] to tell the cases apart.
func (b Box[T]) Intersect(o Box[T]) Box[T] {
	r := Box[T]{max(b.MinX, o.MinX), max(b.MinY, o.MinY), min(b.MaxX, o.MaxX), min(b.MaxY, o.MaxY)}
	r.MaxX = max(r.MaxX, r.MinX)
	r.MaxY = max(r.MaxY, r.MinY)
	return r
}

// Overlaps returns whether the boxes intersect, edges included.
func (b Box[T]) Overlaps(o Box[T]) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// ContainsPoint returns whether the point lies in the box, edges included.
func (b Box[T]) ContainsPoint(x, y T) bool {
	return b.MinX <= x && x <= b.MaxX && b.MinY <= y && y <= b.MaxY
}

// ContainsBox returns whether o lies entirely within b.
func (b Box[T]) ContainsBox(o Box[T]) bool {
	return b.MinX <= o.MinX && o.MaxX <= b.MaxX && b.MinY <= o.MinY && o.MaxY <= b.MaxY
}

// Union returns the union of all given boxes, and false if there are none.
func Union[T Scalar](boxes ...Box[T]) (Box[T], bool) {
	if len(boxes) == 0 {
		return Box[T]{}, false
	}
	u := boxes[0]
	for _, b := range boxes[1:] {
		u = u.Union(b)
	}
	return u, true
}

// isNaN reports whether v is a floating point NaN.
// It is always false for integer scalars.
func isNaN[T Scalar](v T) bool {
	return v != v
}

// IsFloat reports whether T is a floating point scalar type.
func IsFloat[T Scalar]() bool {
	one := T(1)
	return one/2 != 0
}
