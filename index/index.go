// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index provides [Index], a staged spatial index of boxes with
// payloads over a pluggable [backend.Backend].
//
// Changes made with [Index.Insert], [Index.Update] and [Index.Remove]
// are buffered; they become visible to queries only when
// [Index.Commit] applies them as one batch and returns the resulting
// [Damage]. Queries always observe the last committed state.
package index

import (
	"fmt"
	"iter"
	"math"

	"cogentcore.org/boxtree/aabb"
	"cogentcore.org/boxtree/backend"
	"cogentcore.org/core/base/errors"
)

// ErrStaleKey is returned for a key whose entry was removed,
// or that never belonged to the index.
var ErrStaleKey = errors.New("stale key")

// entry is the storage of one slot.
type entry[T aabb.Scalar, P any] struct {

	// gen is the generation of the current key of this slot.
	gen uint32

	// alive is whether the key of this slot is valid.
	alive bool

	// committed is whether the slot is present in the backend,
	// with box as its box.
	committed bool

	// dirty is whether the slot is in the pending list.
	dirty bool

	// invalid is whether a repaint was requested with Invalidate.
	invalid bool

	box     aabb.Box[T]
	next    aabb.Box[T]
	payload P
}

// Index is a spatial index of boxes with payloads. It is not safe
// for concurrent use, and must not be mutated while one of its query
// sequences is being ranged over.
type Index[T aabb.Scalar, P any] struct {
	backend backend.Backend[T]
	entries []entry[T, P]
	free    []uint32

	// pending holds the dirty slots in staging order. A slot released
	// and reused before a commit may appear twice; ndirty is the
	// number of dirty slots.
	pending []uint32
	ndirty  int
}

// New returns a new empty [Index] on the given backend, which it owns.
func New[T aabb.Scalar, P any](b backend.Backend[T]) *Index[T, P] {
	return &Index[T, P]{backend: b}
}

// NewFromConfig returns a new empty [Index] on a backend selected by
// the config.
func NewFromConfig[T aabb.Scalar, P any](cfg Config[T]) (*Index[T, P], error) {
	b, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New[T, P](b), nil
}

// NewBulk returns a new [Index] on the given backend holding the given
// boxes and payloads, which must have the same length. The entries are
// bulk loaded with [backend.Backend.Rebuild] and committed immediately.
// It returns the keys of the entries in order.
func NewBulk[T aabb.Scalar, P any](b backend.Backend[T], boxes []aabb.Box[T], payloads []P) (*Index[T, P], []Key, error) {
	if len(boxes) != len(payloads) {
		return nil, nil, fmt.Errorf("index.NewBulk: %d boxes but %d payloads", len(boxes), len(payloads))
	}
	ix := New[T, P](b)
	keys := make([]Key, len(boxes))
	entries := make([]backend.Entry[T], len(boxes))
	ix.entries = make([]entry[T, P], len(boxes))
	for i, bx := range boxes {
		if err := aabb.Check(bx); err != nil {
			return nil, nil, fmt.Errorf("index.NewBulk: entry %d: %w", i, err)
		}
		ix.entries[i] = entry[T, P]{gen: 1, alive: true, committed: true, box: bx, next: bx, payload: payloads[i]}
		keys[i] = Key{slot: uint32(i), gen: 1}
		entries[i] = backend.Entry[T]{Slot: i, Box: bx}
	}
	b.Rebuild(entries)
	return ix, keys, nil
}

// Backend returns the backend of the index.
func (ix *Index[T, P]) Backend() backend.Backend[T] { return ix.backend }

// lookup returns the entry of a valid key.
func (ix *Index[T, P]) lookup(k Key) (*entry[T, P], error) {
	if k.IsZero() || int(k.slot) >= len(ix.entries) {
		return nil, fmt.Errorf("index: key %v: %w", k, ErrStaleKey)
	}
	e := &ix.entries[k.slot]
	if !e.alive || e.gen != k.gen {
		return nil, fmt.Errorf("index: key %v: %w", k, ErrStaleKey)
	}
	return e, nil
}

// stage adds the slot to the pending list if it is not already there.
func (ix *Index[T, P]) stage(slot uint32) {
	e := &ix.entries[slot]
	if !e.dirty {
		e.dirty = true
		ix.ndirty++
		ix.pending = append(ix.pending, slot)
	}
}

// release makes a slot available for reuse, retiring it instead
// once its generations are exhausted.
func (ix *Index[T, P]) release(slot uint32) {
	e := &ix.entries[slot]
	var zero P
	e.payload = zero
	if e.dirty {
		ix.ndirty--
	}
	e.alive, e.committed, e.invalid, e.dirty = false, false, false, false
	if e.gen == math.MaxUint32 {
		return
	}
	e.gen++
	ix.free = append(ix.free, slot)
}

// Insert stages a new entry and returns its key, which is valid
// immediately for [Index.Update] and [Index.Remove]. The entry becomes
// visible to queries at the next [Index.Commit].
func (ix *Index[T, P]) Insert(b aabb.Box[T], payload P) (Key, error) {
	if err := aabb.Check(b); err != nil {
		return Key{}, fmt.Errorf("index.Insert: %w", err)
	}
	var slot uint32
	if n := len(ix.free); n > 0 {
		slot = ix.free[n-1]
		ix.free = ix.free[:n-1]
	} else {
		slot = uint32(len(ix.entries))
		ix.entries = append(ix.entries, entry[T, P]{gen: 1})
	}
	e := &ix.entries[slot]
	e.alive = true
	e.next = b
	e.payload = payload
	ix.stage(slot)
	return Key{slot: slot, gen: e.gen}, nil
}

// Update stages a new box for the entry of the key.
func (ix *Index[T, P]) Update(k Key, b aabb.Box[T]) error {
	e, err := ix.lookup(k)
	if err != nil {
		return err
	}
	if err := aabb.Check(b); err != nil {
		return fmt.Errorf("index.Update: %w", err)
	}
	e.next = b
	ix.stage(k.slot)
	return nil
}

// Invalidate stages a repaint of the entry of the key: if it is
// committed and its box does not otherwise change, the next commit
// reports it as moved with equal old and new boxes.
func (ix *Index[T, P]) Invalidate(k Key) error {
	e, err := ix.lookup(k)
	if err != nil {
		return err
	}
	e.invalid = true
	ix.stage(k.slot)
	return nil
}

// Remove stages the removal of the entry of the key. The key is
// invalid from now on. An entry removed before it was ever committed
// leaves no trace in the damage.
func (ix *Index[T, P]) Remove(k Key) error {
	if _, err := ix.lookup(k); err != nil {
		return err
	}
	ix.remove(k.slot)
	return nil
}

func (ix *Index[T, P]) remove(slot uint32) {
	e := &ix.entries[slot]
	if !e.committed {
		ix.release(slot)
		return
	}
	e.alive = false
	ix.stage(slot)
}

// Clear stages the removal of every entry.
func (ix *Index[T, P]) Clear() {
	for i := range ix.entries {
		if ix.entries[i].alive {
			ix.remove(uint32(i))
		}
	}
}

// Pending returns the number of entries with staged changes.
func (ix *Index[T, P]) Pending() int { return ix.ndirty }

// Commit applies all staged changes to the backend in staging order
// and returns the damage they caused. After it returns, no changes are
// pending and all committed boxes are visible to queries.
func (ix *Index[T, P]) Commit() Damage[T] {
	var d Damage[T]
	for _, slot := range ix.pending {
		e := &ix.entries[slot]
		if !e.dirty {
			continue
		}
		e.dirty = false
		switch {
		case e.alive && !e.committed:
			ix.backend.Insert(int(slot), e.next)
			d.Added = append(d.Added, e.next)
			e.box = e.next
			e.committed = true
		case e.alive:
			if e.next != e.box {
				ix.backend.Update(int(slot), e.next)
			} else if !e.invalid {
				continue
			}
			d.Moved = append(d.Moved, Move[T]{Old: e.box, New: e.next})
			e.box = e.next
		case e.committed:
			ix.backend.Remove(int(slot))
			d.Removed = append(d.Removed, e.box)
			ix.release(slot)
		}
		e.invalid = false
	}
	ix.pending = ix.pending[:0]
	ix.ndirty = 0
	if f, ok := ix.backend.(backend.Flusher); ok {
		f.Flush()
	}
	return d
}

// Rebuild rebuilds the backend from the committed entries using its
// bulk construction. Staged changes stay pending and no damage results.
func (ix *Index[T, P]) Rebuild() {
	entries := make([]backend.Entry[T], 0, ix.backend.Len())
	for i := range ix.entries {
		if e := &ix.entries[i]; e.committed {
			entries = append(entries, backend.Entry[T]{Slot: i, Box: e.box})
		}
	}
	ix.backend.Rebuild(entries)
}

// Len returns the number of committed entries.
func (ix *Index[T, P]) Len() int { return ix.backend.Len() }

// Box returns the most recent box given for the entry of the key,
// which may not be committed yet.
func (ix *Index[T, P]) Box(k Key) (aabb.Box[T], error) {
	e, err := ix.lookup(k)
	if err != nil {
		return aabb.Box[T]{}, err
	}
	return e.next, nil
}

// Committed returns the committed box of the entry of the key,
// and false if the entry has not been committed yet.
func (ix *Index[T, P]) Committed(k Key) (aabb.Box[T], bool, error) {
	e, err := ix.lookup(k)
	if err != nil {
		return aabb.Box[T]{}, false, err
	}
	return e.box, e.committed, nil
}

// Payload returns the payload of the entry of the key.
func (ix *Index[T, P]) Payload(k Key) (P, error) {
	e, err := ix.lookup(k)
	if err != nil {
		var zero P
		return zero, err
	}
	return e.payload, nil
}

// QueryPoint returns the committed entries whose box contains the point.
func (ix *Index[T, P]) QueryPoint(x, y T) iter.Seq2[Key, P] {
	return ix.results(ix.backend.QueryPoint(x, y))
}

// QueryRect returns the committed entries whose box overlaps the rectangle.
func (ix *Index[T, P]) QueryRect(r aabb.Box[T]) iter.Seq2[Key, P] {
	return ix.results(ix.backend.QueryRect(r))
}

func (ix *Index[T, P]) results(slots iter.Seq[int]) iter.Seq2[Key, P] {
	return func(yield func(Key, P) bool) {
		for s := range slots {
			e := &ix.entries[s]
			if !yield(Key{slot: uint32(s), gen: e.gen}, e.payload) {
				return
			}
		}
	}
}
