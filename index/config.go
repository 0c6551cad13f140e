// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"fmt"

	"cogentcore.org/boxtree/aabb"
	"cogentcore.org/boxtree/backend"
	"cogentcore.org/core/base/errors"
)

// ErrConfig is returned for an unusable [Config].
var ErrConfig = errors.New("invalid index config")

// Config selects the backend of an [Index] at construction time.
type Config[T aabb.Scalar] struct {

	// Kind is the spatial strategy.
	Kind Kinds

	// CellSize is the edge length of a cell for the [Grid] kind.
	// It must be positive for that kind and is ignored otherwise.
	CellSize T
}

// NewBackend returns a new backend as described by the config.
// The [RTree] and [BVH] kinds are available for the predeclared
// integer and floating point types.
func NewBackend[T aabb.Scalar](cfg Config[T]) (backend.Backend[T], error) {
	switch cfg.Kind {
	case Flat:
		return backend.NewFlat[T](), nil
	case Grid:
		if !(cfg.CellSize > 0) {
			return nil, fmt.Errorf("index: grid cell size must be positive, got %v: %w", cfg.CellSize, ErrConfig)
		}
		return backend.NewGrid(cfg.CellSize), nil
	case RTree, BVH:
		if b := treeBackend[T](cfg.Kind == BVH); b != nil {
			return b, nil
		}
		var zero T
		return nil, fmt.Errorf("index: %v is not available for %T: %w", cfg.Kind, zero, ErrConfig)
	}
	return nil, fmt.Errorf("index: unknown kind %v: %w", cfg.Kind, ErrConfig)
}

// treeBackend returns an R-tree or BVH for T with the matching
// accumulator, or nil if T is not a predeclared scalar type.
func treeBackend[T aabb.Scalar](bvh bool) backend.Backend[T] {
	var b any
	var zero T
	switch any(zero).(type) {
	case float32:
		b = pick(bvh, backend.NewBVHFloat[float32], backend.NewRTreeFloat[float32])
	case float64:
		b = pick(bvh, backend.NewBVHFloat[float64], backend.NewRTreeFloat[float64])
	case int:
		b = pick(bvh, backend.NewBVHInt[int], backend.NewRTreeInt[int])
	case int8:
		b = pick(bvh, backend.NewBVHInt[int8], backend.NewRTreeInt[int8])
	case int16:
		b = pick(bvh, backend.NewBVHInt[int16], backend.NewRTreeInt[int16])
	case int32:
		b = pick(bvh, backend.NewBVHInt[int32], backend.NewRTreeInt[int32])
	case int64:
		b = pick(bvh, backend.NewBVHInt[int64], backend.NewRTreeInt[int64])
	}
	if b == nil {
		return nil
	}
	return b.(backend.Backend[T])
}

func pick[B, R any](bvh bool, newBVH func() B, newRTree func() R) any {
	if bvh {
		return newBVH()
	}
	return newRTree()
}
