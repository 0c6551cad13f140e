// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"iter"
	"slices"

	"cogentcore.org/boxtree/aabb"
)

// cell is the integer coordinate of a grid cell.
type cell struct {
	X, Y int32
}

// Grid partitions the plane into uniform square cells and registers
// each box in every cell it overlaps. It suits roughly uniform
// screen-space distributions with query rectangles that are small
// relative to the world; boxes much larger than a cell are registered
// in many cells and degrade it.
type Grid[T aabb.Scalar] struct {

	// CellSize is the edge length of a cell; it must be positive.
	CellSize T

	// OriginX and OriginY locate the corner of cell (0, 0).
	OriginX, OriginY T

	cells map[cell][]int
	slots slotBoxes[T]

	// covered holds the cells each slot is registered in.
	covered [][]cell

	// oversized holds the slots whose boxes span more than
	// maxCellsPerBox cells; they are checked by every query instead.
	oversized map[int]struct{}
}

// maxCellsPerBox bounds the number of cells a single box is
// registered in.
const maxCellsPerBox = 4096

// NewGrid returns a new [Grid] backend with the given cell size and
// the origin at (0, 0). It panics if the cell size is not positive.
func NewGrid[T aabb.Scalar](cellSize T) *Grid[T] {
	return NewGridOrigin(cellSize, 0, 0)
}

// NewGridOrigin returns a new [Grid] backend with the given cell size
// and origin. It panics if the cell size is not positive.
func NewGridOrigin[T aabb.Scalar](cellSize, originX, originY T) *Grid[T] {
	if !(cellSize > 0) {
		panic(fmt.Sprintf("backend.NewGrid: cell size must be positive, got %v", cellSize))
	}
	return &Grid[T]{CellSize: cellSize, OriginX: originX, OriginY: originY, cells: map[cell][]int{}}
}

// Cells returns the number of occupied cells.
func (g *Grid[T]) Cells() int { return len(g.cells) }

func (g *Grid[T]) cellRange(b aabb.Box[T]) (x0, y0, x1, y1 int32) {
	x0 = aabb.CellCoord(b.MinX, g.OriginX, g.CellSize)
	x1 = aabb.CellCoord(b.MaxX, g.OriginX, g.CellSize)
	y0 = aabb.CellCoord(b.MinY, g.OriginY, g.CellSize)
	y1 = aabb.CellCoord(b.MaxY, g.OriginY, g.CellSize)
	return
}

func (g *Grid[T]) register(slot int, b aabb.Box[T]) {
	if g.cells == nil {
		g.cells = map[cell][]int{}
	}
	x0, y0, x1, y1 := g.cellRange(b)
	if n := (int64(x1) - int64(x0) + 1) * (int64(y1) - int64(y0) + 1); n <= 0 || n > maxCellsPerBox {
		if g.oversized == nil {
			g.oversized = map[int]struct{}{}
		}
		g.oversized[slot] = struct{}{}
		return
	}
	cs := g.covered[slot][:0]
	for x := int64(x0); x <= int64(x1); x++ {
		for y := int64(y0); y <= int64(y1); y++ {
			c := cell{int32(x), int32(y)}
			g.cells[c] = append(g.cells[c], slot)
			cs = append(cs, c)
		}
	}
	g.covered[slot] = cs
}

func (g *Grid[T]) unregister(slot int) {
	delete(g.oversized, slot)
	for _, c := range g.covered[slot] {
		s := g.cells[c]
		if i := slices.Index(s, slot); i >= 0 {
			s[i] = s[len(s)-1]
			s = s[:len(s)-1]
		}
		if len(s) == 0 {
			delete(g.cells, c)
		} else {
			g.cells[c] = s
		}
	}
	g.covered[slot] = g.covered[slot][:0]
}

func (g *Grid[T]) Insert(slot int, b aabb.Box[T]) {
	if slot >= len(g.covered) {
		g.covered = append(g.covered, make([][]cell, slot+1-len(g.covered))...)
	}
	if g.slots.has(slot) {
		g.unregister(slot)
	}
	g.slots.set(slot, b)
	g.register(slot, b)
}

func (g *Grid[T]) Update(slot int, b aabb.Box[T]) {
	if g.slots.has(slot) && g.slots.boxes[slot] == b {
		return
	}
	g.Insert(slot, b)
}

func (g *Grid[T]) Remove(slot int) {
	if !g.slots.has(slot) {
		return
	}
	g.unregister(slot)
	g.slots.unset(slot)
}

func (g *Grid[T]) Clear() {
	clear(g.cells)
	clear(g.oversized)
	g.covered = g.covered[:0]
	g.slots.reset()
}

func (g *Grid[T]) Len() int { return g.slots.n }

func (g *Grid[T]) Rebuild(entries []Entry[T]) {
	g.Clear()
	for _, e := range entries {
		g.Insert(e.Slot, e.Box)
	}
}

func (g *Grid[T]) QueryPoint(x, y T) iter.Seq[int] {
	return func(yield func(int) bool) {
		c := cell{aabb.CellCoord(x, g.OriginX, g.CellSize), aabb.CellCoord(y, g.OriginY, g.CellSize)}
		for _, slot := range g.cells[c] {
			if g.slots.boxes[slot].ContainsPoint(x, y) {
				if !yield(slot) {
					return
				}
			}
		}
		for slot := range g.oversized {
			if g.slots.boxes[slot].ContainsPoint(x, y) {
				if !yield(slot) {
					return
				}
			}
		}
	}
}

func (g *Grid[T]) QueryRect(r aabb.Box[T]) iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := range g.oversized {
			if g.slots.boxes[slot].Overlaps(r) {
				if !yield(slot) {
					return
				}
			}
		}
		x0, y0, x1, y1 := g.cellRange(r)
		// a slot is listed once per cell, so only multi-cell queries
		// can meet it twice
		var seen map[int]struct{}
		if x0 != x1 || y0 != y1 {
			seen = map[int]struct{}{}
		}
		visit := func(slots []int) bool {
			for _, slot := range slots {
				if seen != nil {
					if _, ok := seen[slot]; ok {
						continue
					}
					seen[slot] = struct{}{}
				}
				if g.slots.boxes[slot].Overlaps(r) {
					if !yield(slot) {
						return false
					}
				}
			}
			return true
		}
		span := (int64(x1) - int64(x0) + 1) * (int64(y1) - int64(y0) + 1)
		if span > int64(len(g.cells)) {
			// fewer occupied cells than covered cells: scan the occupied ones
			for c, slots := range g.cells {
				if c.X < x0 || c.X > x1 || c.Y < y0 || c.Y > y1 {
					continue
				}
				if !visit(slots) {
					return
				}
			}
			return
		}
		for x := int64(x0); x <= int64(x1); x++ {
			for y := int64(y0); y <= int64(y1); y++ {
				if !visit(g.cells[cell{int32(x), int32(y)}]) {
					return
				}
			}
		}
	}
}
