// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"cogentcore.org/boxtree/index"
	"cogentcore.org/core/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	c := &Config{}
	require.NoError(t, cli.SetFromDefaults(c))
	c.Nodes = 300
	c.Frames = 5
	c.Hits = 50
	return c
}

func TestDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, cli.SetFromDefaults(c))
	assert.Equal(t, 5000, c.Nodes)
	assert.Equal(t, float32(64), c.CellSize)
	assert.Equal(t, int64(1), c.Seed)
}

func TestRunsAgree(t *testing.T) {
	c := testConfig(t)
	var want *result
	for _, k := range index.KindsValues() {
		res, err := run(c, k)
		require.NoError(t, err)
		require.Len(t, res.hits, c.Frames*c.Hits)
		if want == nil {
			want = res
			continue
		}
		assert.Equal(t, want.hits, res.hits, k.String())
		assert.Equal(t, want.damaged, res.damaged, k.String())
	}
	assert.NoError(t, Bench(c))
}

func TestUnknownBackend(t *testing.T) {
	c := testConfig(t)
	c.Backend = "Octree"
	assert.Error(t, Bench(c))
}
