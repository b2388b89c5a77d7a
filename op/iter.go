// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package op

import (
	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/optype"
)

// Iter is the minimal op-producing iterator any layer in this stack
// consumes and produces. It is intentionally narrow so an op-set
// implementation backed by real column cursors, or (as in this module's
// tests) a plain in-memory slice, can both satisfy it.
type Iter interface {
	Next() (Op, bool)
}

// SliceIter walks a pre-materialized slice of ops in order. It is the
// concrete OpIter used by this module's tests and by anything that has
// already decoded a full column range into memory.
type SliceIter struct {
	ops []Op
	pos int
}

// NewSliceIter returns an Iter over ops, emitting them in the order
// given -- callers are expected to supply ops already in column order.
func NewSliceIter(ops []Op) *SliceIter { return &SliceIter{ops: ops} }

func (s *SliceIter) Next() (Op, bool) {
	if s.pos >= len(s.ops) {
		return Op{}, false
	}
	o := s.ops[s.pos]
	s.pos++
	return o, true
}

// VisibleIter filters an underlying Iter down to ops visible at Clock: a
// nil Clock still honors each op's own successor list (see Op.VisibleAt),
// it just treats every observed successor as in scope.
type VisibleIter struct {
	src   Iter
	clock *clock.Clock
}

func NewVisibleIter(src Iter, c *clock.Clock) *VisibleIter {
	return &VisibleIter{src: src, clock: c}
}

func (v *VisibleIter) Next() (Op, bool) {
	for {
		o, ok := v.src.Next()
		if !ok {
			return Op{}, false
		}
		if o.VisibleAt(v.clock) {
			return o, true
		}
	}
}

// TopIter groups an underlying Iter by ElemidOrKey and emits, for each
// group, only the winning survivor: the op with no in-scope successor
// that appears last in column order. Only successors are checked, not the
// op's action, so the survivor may be a non-put op such as a Delete. When
// every op in a group has an in-scope successor, the group is skipped
// entirely.
type TopIter struct {
	src       Iter
	clock     *clock.Clock
	pending   []Op
	haveKey   bool
	lastKey   optype.KeyRef
	exhausted bool
}

func NewTopIter(src Iter, c *clock.Clock) *TopIter {
	return &TopIter{src: src, clock: c}
}

func (t *TopIter) Next() (Op, bool) {
	for {
		o, ok := t.src.Next()
		if !ok {
			if t.exhausted {
				return Op{}, false
			}
			t.exhausted = true
			return t.flushPending()
		}
		key := o.ElemidOrKey()
		if t.haveKey && key != t.lastKey {
			winner, hadOne := t.flushPending()
			t.pending = t.pending[:0]
			t.lastKey = key
			t.pending = append(t.pending, o)
			if hadOne {
				return winner, true
			}
			continue
		}
		t.haveKey = true
		t.lastKey = key
		t.pending = append(t.pending, o)
	}
}

// flushPending returns the winning survivor of the buffered group, if
// any: the last buffered op with no in-scope successor.
func (t *TopIter) flushPending() (Op, bool) {
	defer func() { t.pending = t.pending[:0] }()
	for i := len(t.pending) - 1; i >= 0; i-- {
		if !ScopeToClock(t.pending[i], t.clock) {
			return t.pending[i], true
		}
	}
	return Op{}, false
}

// DiffKind discriminates a DiffOp's transition.
type DiffKind uint8

const (
	DiffAppeared DiffKind = iota
	DiffDisappeared
)

// DiffOp surfaces a single visibility transition for an op between two
// clocks, the basis for computing a document diff.
type DiffOp struct {
	Op   Op
	Kind DiffKind
}

// DiffIter compares an op's visibility at "before" against "after" and
// emits a DiffAppeared/DiffDisappeared transition when it changes.
type DiffIter struct {
	src    Iter
	before *clock.Clock
	after  *clock.Clock
}

func NewDiffIter(src Iter, before, after *clock.Clock) *DiffIter {
	return &DiffIter{src: src, before: before, after: after}
}

func (d *DiffIter) Next() (DiffOp, bool) {
	for {
		o, ok := d.src.Next()
		if !ok {
			return DiffOp{}, false
		}
		wasVisible := o.VisibleAt(d.before)
		isVisible := o.VisibleAt(d.after)
		switch {
		case !wasVisible && isVisible:
			return DiffOp{Op: o, Kind: DiffAppeared}, true
		case wasVisible && !isVisible:
			return DiffOp{Op: o, Kind: DiffDisappeared}, true
		default:
			continue
		}
	}
}
