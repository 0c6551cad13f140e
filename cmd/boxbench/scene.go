// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"cogentcore.org/boxtree/boxtree"
	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
)

// result is the outcome of a run on one backend.
type result struct {
	build, commit, hit time.Duration

	// damaged is the total number of damaged rectangles.
	damaged int

	// hits are the indexes, in creation order, of the topmost nodes of
	// all hit tests, or -1 for a miss.
	hits []int
}

// scene generates a random tree: each node is a child of a random
// earlier node with fewer than the maximum number of children, offset
// and sized relative to its parent. It returns the nodes in creation
// order.
func scene(c *Config, tr *boxtree.Tree, rnd randx.Rand) ([]boxtree.NodeID, error) {
	ids := make([]boxtree.NodeID, 0, c.Nodes)
	sizes := make([]math32.Vector2, 0, c.Nodes)
	nkids := make([]int, 0, c.Nodes)
	root, err := tr.Insert(boxtree.NodeID{}, boxtree.NewLocal(math32.B2(0, 0, c.Width, c.Height)))
	if err != nil {
		return nil, err
	}
	ids = append(ids, root)
	sizes = append(sizes, math32.Vec2(c.Width, c.Height))
	nkids = append(nkids, 0)
	for len(ids) < c.Nodes {
		p := rnd.Intn(len(ids))
		if nkids[p] >= max(c.Fanout, 1) {
			continue
		}
		ps := sizes[p]
		w := max(1, ps.X*float32(randx.BetaGen(2, 5, rnd)))
		h := max(1, ps.Y*float32(randx.BetaGen(2, 5, rnd)))
		ln := boxtree.NewLocal(math32.B2(0, 0, w, h))
		ln.Transform = math32.Translate2D(rnd.Float32()*(ps.X-w), rnd.Float32()*(ps.Y-h))
		ln.Z = int32(rnd.Intn(4))
		if rnd.Intn(8) == 0 {
			ln.Clip = &boxtree.Clip{Rect: math32.B2(0, 0, w, h), Radius: min(w, h) / 8}
		}
		id, err := tr.Insert(ids[p], ln)
		if err != nil {
			return nil, err
		}
		nkids[p]++
		ids = append(ids, id)
		sizes = append(sizes, math32.Vec2(w, h))
		nkids = append(nkids, 0)
	}
	return ids, nil
}

// run builds the scene on the given backend and animates it.
func run(c *Config, kind index.Kinds) (*result, error) {
	tr, err := boxtree.New(index.Config[float32]{Kind: kind, CellSize: c.CellSize})
	if err != nil {
		return nil, err
	}
	rnd := randx.NewSysRand(c.Seed)
	res := &result{}
	start := time.Now()
	ids, err := scene(c, tr, rnd)
	if err != nil {
		return nil, err
	}
	tr.Commit()
	res.build = time.Since(start)

	order := make(map[boxtree.NodeID]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}
	moving := int(float32(len(ids)) * c.Moving)
	if len(ids) < 2 {
		moving = 0
	}
	for range c.Frames {
		for range moving {
			id := ids[1+rnd.Intn(len(ids)-1)]
			dx := float32(randx.GaussianGen(0, 4, rnd))
			dy := float32(randx.GaussianGen(0, 4, rnd))
			ln, _ := tr.Local(id)
			if err := tr.SetLocalTransform(id, math32.Translate2D(dx, dy).Mul(ln.Transform)); err != nil {
				return nil, err
			}
		}
		start = time.Now()
		d := tr.Commit()
		res.commit += time.Since(start)
		res.damaged += len(d.Rects())

		start = time.Now()
		for range c.Hits {
			pt := math32.Vec2(rnd.Float32()*c.Width, rnd.Float32()*c.Height)
			hit, ok := tr.HitTest(pt, boxtree.Filter{}.Pickable())
			if ok {
				res.hits = append(res.hits, order[hit.Node])
			} else {
				res.hits = append(res.hits, -1)
			}
		}
		res.hit += time.Since(start)
	}
	return res, nil
}
