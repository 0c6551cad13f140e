// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aabb

// Check validates the box for use as index input. In debug builds an
// invalid box panics; otherwise the validation error is returned.
func Check[T Scalar](b Box[T]) error {
	err := b.Validate()
	if err != nil && Debug {
		panic(err)
	}
	return err
}
