// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package found groups a raw op iterator into per-key batches, the
// primitive a property lookup or a conflict scan builds on.
package found

import (
	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
)

// OpsFound is one batch of ops sharing a key, plus the half-open end
// position of the batch within the underlying column stream. EndPos
// always advances to cover every op observed for the key, including ones
// dropped by the clock filter.
type OpsFound struct {
	OpsPos []int
	Ops    []op.Op
	EndPos int
}

func (f *OpsFound) empty() bool { return f == nil || len(f.Ops) == 0 }

// Iter wraps src, emitting an OpsFound batch each time the key changes
// (per op.ElemidOrKey) and the prior batch had at least one scoped op.
// Increment ops never participate in grouping: the host op-set tracks
// counter deltas through a separate path. This is a line-for-line port of
// the original's control flow: it always advances EndPos even for ops the
// clock filters out, and it only yields groups containing at least one
// surviving op.
type Iter struct {
	src     op.Iter
	clock   *clock.Clock
	lastKey optype.KeyRef
	haveKey bool
	found   *OpsFound
}

// NewIter constructs an Iter over src, scoping visibility to clock. A nil
// clock means no cut: an op is then dropped exactly when its in-store succ
// list is non-empty (see op.ScopeToClock).
func NewIter(src op.Iter, c *clock.Clock) *Iter {
	return &Iter{src: src, clock: c}
}

// Next returns the next non-empty OpsFound batch, or false once src and
// any buffered trailing batch are exhausted.
func (it *Iter) Next() (OpsFound, bool) {
	var result *OpsFound
	for {
		o, ok := it.src.Next()
		if !ok {
			break
		}
		if o.Action() == optype.ActionIncrement {
			continue
		}
		key := o.ElemidOrKey()
		if !it.haveKey || key != it.lastKey {
			result = it.found
			it.haveKey = true
			it.lastKey = key
			it.found = &OpsFound{}
		}
		it.found.EndPos = o.Pos + 1
		if !op.ScopeToClock(o, it.clock) {
			it.found.OpsPos = append(it.found.OpsPos, o.Pos)
			it.found.Ops = append(it.found.Ops, o)
		}
		if !result.empty() {
			return *result, true
		}
	}
	trailing := it.found
	it.found = nil
	if trailing.empty() {
		return OpsFound{}, false
	}
	return *trailing, true
}
