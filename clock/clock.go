// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package clock implements the per-actor vector clock used to cut a
// document's history at a logical point in time: an op is "in scope" at a
// Clock if every actor contribution it depends on has been observed.
package clock

import "github.com/automerge-go/opset/optype"

// Clock records, per actor, the highest counter observed. A nil *Clock
// denotes "no cut" -- everything is in scope, matching the in-store succ
// column with no further filtering.
type Clock struct {
	max map[optype.ActorIdx]uint64
}

// New returns an empty clock (nothing observed).
func New() *Clock {
	return &Clock{max: make(map[optype.ActorIdx]uint64)}
}

// Observe records that id has been seen, raising the actor's high-water
// mark if id.Counter exceeds it.
func (c *Clock) Observe(id optype.OpId) {
	if c == nil {
		return
	}
	if cur, ok := c.max[id.Actor]; !ok || id.Counter > cur {
		c.max[id.Actor] = id.Counter
	}
}

// Includes reports whether id was observed at or before c's cut for
// id.Actor. A nil Clock includes everything.
func (c *Clock) Includes(id optype.OpId) bool {
	if c == nil {
		return true
	}
	cur, ok := c.max[id.Actor]
	return ok && id.Counter <= cur
}

// Get returns the high-water counter recorded for actor, or 0 if the
// actor has not been observed.
func (c *Clock) Get(actor optype.ActorIdx) uint64 {
	if c == nil {
		return 0
	}
	return c.max[actor]
}

// Clone returns an independent copy of c.
func (c *Clock) Clone() *Clock {
	if c == nil {
		return nil
	}
	cp := New()
	for k, v := range c.max {
		cp.max[k] = v
	}
	return cp
}
