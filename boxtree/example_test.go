// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree_test

import (
	"fmt"

	"cogentcore.org/boxtree/boxtree"
	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/math32"
)

func Example() {
	tr, err := boxtree.New(index.Config[float32]{Kind: index.RTree})
	if err != nil {
		panic(err)
	}
	window, _ := tr.Insert(boxtree.NodeID{}, boxtree.NewLocal(math32.B2(0, 0, 200, 100)))
	button := boxtree.NewLocal(math32.B2(0, 0, 40, 20))
	button.Transform = math32.Translate2D(10, 10)
	btn, _ := tr.Insert(window, button)

	d := tr.Commit()
	fmt.Println("added:", len(d.Added))

	hit, _ := tr.HitTest(math32.Vec2(20, 15), boxtree.Filter{}.Pickable())
	fmt.Println("button hit:", hit.Node == btn, "depth:", len(hit.Path))

	tr.SetLocalTransform(btn, math32.Translate2D(100, 10))
	d = tr.Commit()
	r, _ := d.Union()
	fmt.Println("repaint:", r)

	// Output:
	// added: 2
	// button hit: true depth: 2
	// repaint: (10,10,140,30)
}
