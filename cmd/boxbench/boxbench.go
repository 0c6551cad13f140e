// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command boxbench builds a random box tree scene and animates it on
// each spatial index backend, reporting commit and hit test timings
// and checking that every backend gives the same hit test results.
package main

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
)

//go:generate core generate -add-types -add-funcs

// Config is the configuration of a benchmark run.
type Config struct {

	// Backend is the backend to run; all backends are run if it is empty.
	Backend string `posarg:"0" required:"-"`

	// Nodes is the number of nodes in the scene.
	Nodes int `default:"5000"`

	// Fanout is the maximum number of children of a node.
	Fanout int `default:"8"`

	// Width is the width of the scene.
	Width float32 `default:"1920"`

	// Height is the height of the scene.
	Height float32 `default:"1080"`

	// Frames is the number of animation frames.
	Frames int `default:"60"`

	// Moving is the fraction of the nodes moved in each frame.
	Moving float32 `default:"0.05"`

	// Hits is the number of hit tests per frame.
	Hits int `default:"200"`

	// CellSize is the cell size of the grid backend.
	CellSize float32 `default:"64"`

	// Seed is the random seed, which makes runs reproducible.
	Seed int64 `default:"1"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("boxbench", "Boxbench benchmarks the box tree on each spatial index backend.")
	opts.DefaultFiles = []string{"boxbench.toml"}
	cli.Run(opts, &Config{}, Bench)
}

// Bench runs the benchmark on the configured backends.
func Bench(c *Config) error { //cli:cmd -root
	kinds := index.KindsValues()
	if c.Backend != "" {
		var k index.Kinds
		if err := k.SetString(c.Backend); err != nil {
			return err
		}
		kinds = []index.Kinds{k}
	}
	var want []int
	for _, k := range kinds {
		res, err := run(c, k)
		if err != nil {
			return errors.Log(fmt.Errorf("boxbench: %v: %w", k, err))
		}
		slog.Info("boxbench", "backend", k, "nodes", c.Nodes, "build", res.build,
			"commit", res.commit/time.Duration(c.Frames), "hit", res.hit/time.Duration(max(c.Frames*c.Hits, 1)),
			"damaged", res.damaged)
		if want == nil {
			want = res.hits
			continue
		}
		if !slices.Equal(want, res.hits) {
			return errors.Log(fmt.Errorf("boxbench: %v: hit test results differ from %v", k, kinds[0]))
		}
	}
	return nil
}
