// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !debug

package aabb

// Debug is true when built with the debug tag, in which case
// invalid geometry panics instead of being returned as an error.
const Debug = false
