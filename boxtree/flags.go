// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

//go:generate core generate

// NodeFlags are bit flags that control how a node takes part in
// queries. Use [NodeFlags.SetFlag] and [NodeFlags.HasFlag] with the
// constants as bit indexes.
type NodeFlags int64 //enums:bitflag

const (
	// Visible nodes are drawn and take part in rectangle queries.
	Visible NodeFlags = iota

	// Pickable nodes take part in hit testing.
	Pickable

	// Focusable nodes can receive keyboard focus.
	Focusable
)

// DefaultFlags returns the flags of a new node: [Visible] and [Pickable].
func DefaultFlags() NodeFlags {
	var f NodeFlags
	f.SetFlag(true, Visible, Pickable)
	return f
}

// ClipBehaviors are the ways the local clip of a node is combined
// with the clips of its ancestors.
type ClipBehaviors int32 //enums:enum -trim-prefix Clip

const (
	// ClipInherit intersects the local clip with the inherited clip.
	ClipInherit ClipBehaviors = iota

	// ClipPreferLocal uses the local clip in place of the inherited
	// clip when the node has one, and the inherited clip otherwise.
	// It lets content overflow the clips of its ancestors.
	ClipPreferLocal

	// ClipNone disables clipping for the node, including its local
	// clip. Its descendants inherit no clip from it.
	ClipNone
)
