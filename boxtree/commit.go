// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"log/slog"

	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// Commit derives the world data of every node that changed since the
// last commit, and of all of their descendants, stages the resulting
// changes in the index and commits it. It returns the damage: the
// world bounds that were added, removed or moved, and the bounds of
// nodes whose flags or z order changed.
//
// Subtrees with no changes are skipped entirely. A node whose bounds
// are clipped away entirely leaves the index, and returns to it once
// it becomes visible again.
func (t *Tree) Commit() index.Damage[float32] {
	for _, r := range t.roots {
		t.update(r, math32.Identity2(), clipState{}, false)
	}
	d := t.index.Commit()
	slog.Debug("boxtree: commit", "nodes", t.n, "indexed", t.index.Len(), "added", len(d.Added), "removed", len(d.Removed), "moved", len(d.Moved))
	return d
}

// update recomputes the world data of the node if it or an ancestor
// is dirty, as indicated by force, and recurses into the children
// that need it.
func (t *Tree) update(id NodeID, parentTransform math32.Matrix2, parentClip clipState, force bool) {
	n := &t.nodes[id.slot]
	force = force || n.dirty
	if !force && !n.descendantDirty && !n.repaint {
		return
	}
	if force {
		ln := &n.local
		wt := parentTransform.Mul(ln.transform())
		clip := clipFor(ln, wt, parentClip)
		bounds, visible := clip.apply(ln.Bounds.MulMatrix2(wt))
		n.world = world{transform: wt, bounds: bounds, clip: clip, culled: !visible}
		if ln.Clip != nil && ln.ClipBehavior != ClipNone {
			hc := *ln.Clip
			n.world.hitClip = &hc
		}
		t.stage(id, n)
	}
	if n.repaint && !n.key.IsZero() {
		errors.Log(t.index.Invalidate(n.key))
	}
	n.dirty, n.descendantDirty, n.repaint = false, false, false
	for _, c := range n.children {
		t.update(c, n.world.transform, n.world.clip, force)
	}
}

// stage stages the index operation that brings the entry of the node
// in line with its world bounds.
func (t *Tree) stage(id NodeID, n *node) {
	if n.world.culled {
		if !n.key.IsZero() {
			errors.Log(t.index.Remove(n.key))
			n.key = index.Key{}
		}
		return
	}
	b := toAABB(n.world.bounds)
	if n.key.IsZero() {
		k, err := t.index.Insert(b, id)
		if errors.Log(err) == nil {
			n.key = k
		}
		return
	}
	errors.Log(t.index.Update(n.key, b))
}
