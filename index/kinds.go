// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

//go:generate core generate

// Kinds are the spatial strategies an [Index] can be built on.
type Kinds int32 //enums:enum

const (
	// Flat scans every entry on each query. It is the simplest
	// strategy and the cheapest to update.
	Flat Kinds = iota

	// Grid buckets entries into uniform square cells, which suits
	// roughly uniform screen-space distributions.
	Grid

	// RTree maintains a balanced R-tree in place, which suits
	// irregular distributions with frequent updates.
	RTree

	// BVH keeps a bounding volume hierarchy built in bulk, which
	// suits query-heavy scenes that change little between frames.
	BVH
)
