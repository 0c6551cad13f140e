// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "fmt"

// Key identifies an entry of an [Index]. Keys are never reused while
// their entry is live, and a key stays invalid once its entry has been
// removed, even after the underlying storage is recycled.
// The zero Key is never valid.
type Key struct {
	slot uint32
	gen  uint32
}

// IsZero returns whether this is the zero Key.
func (k Key) IsZero() bool { return k.gen == 0 }

// Slot returns the storage slot of the key, which is also the slot
// passed to the backend. It is stable for the life of the entry.
func (k Key) Slot() int { return int(k.slot) }

func (k Key) String() string { return fmt.Sprintf("%d@%d", k.slot, k.gen) }
