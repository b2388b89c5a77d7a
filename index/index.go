// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package index implements the per-B-tree-node visibility aggregate: a
// derived summary of an op-set subtree that answers "how many visible
// elements" and "which keys are visible" queries without a linear scan.
package index

import (
	"github.com/automerge-go/opset/metrics"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// ErrVisibilityUnderflow is panicked by ChangeVis/Remove when a
// (true->false) visibility transition targets a key that Visible does
// not track -- a caller contract violation, not a data error.
var ErrVisibilityUnderflow = errors.New("index: remove overrun in index")

// ErrMarkBeginCollision is panicked by Merge when both sides of a merge
// carry a MarkBegin entry for the same OpId. Sibling B-tree subtrees
// should never share an op id; seeing a collision here means the tree
// itself is corrupt.
var ErrMarkBeginCollision = errors.New("index: colliding mark_begin across merged subtrees")

// textWidth tracks the accumulated width (in runes) of every
// first-visible-per-key op, as measured by op.Width(op.ListEncodingText).
type textWidth struct {
	width int
}

func (w *textWidth) addOp(o op.Op) {
	w.width += o.Width(op.ListEncodingText)
}

// removeOp saturates rather than panicking on underflow. For objects that
// are not Text, conflicting same-index elements of different string
// lengths mean the width accounting here is only an approximation: the
// first op observed at an index contributes its width, a later
// conflicting op at the same index contributes nothing, and removing the
// wrong one later can ask for more than is left. Saturating keeps that
// harmless, since non-text objects never read visible_text for anything
// load bearing.
func (w *textWidth) removeOp(o op.Op) {
	d := o.Width(op.ListEncodingText)
	if d > w.width {
		w.width = 0
		return
	}
	w.width -= d
}

func (w *textWidth) merge(other *textWidth) { w.width += other.width }

// ChangeVisibility is the argument bundle ChangeVis updates the index
// with: the op's visibility before and after some mutation (e.g. a succ
// list splice), and the op itself.
type ChangeVisibility struct {
	OldVis bool
	NewVis bool
	Op     op.Op
}

// Index is a per-B-tree-node aggregate of the ops in its subtree: which
// keys currently have a visible op, a running text-width total, the full
// set of op ids present, whether every op has ever been an insert, and
// mark-begin/mark-end bookkeeping for marks whose span crosses a node
// boundary.
type Index struct {
	visible      *swiss.Map[optype.Key, int]
	visibleText  textWidth
	ops          *swiss.Map[optype.OpId, struct{}]
	neverSeenPuts bool
	markBegin    *swiss.Map[optype.OpId, optype.MarkData]
	markEnd      []optype.OpId

	stats *metrics.Stats
}

// New returns an empty Index. stats may be nil; when non-nil, Insert,
// Remove, ChangeVis, and Merge report through it. Of these, only Merge
// records a batch size (the number of ops absorbed); Insert bumps the
// ops-indexed counter, and Remove and ChangeVis record nothing.
func New(stats *metrics.Stats) *Index {
	return &Index{
		visible:       swiss.New[optype.Key, int](0),
		ops:           swiss.New[optype.OpId, struct{}](0),
		neverSeenPuts: true,
		markBegin:     swiss.New[optype.OpId, optype.MarkData](0),
		stats:         stats,
	}
}

// HasNeverSeenPuts reports whether every op ever inserted into idx has
// had its Insert flag set.
func (idx *Index) HasNeverSeenPuts() bool { return idx.neverSeenPuts }

// VisibleLen returns the number of visible elements under encoding: the
// count of distinct visible keys for List, or the accumulated text width
// for Text.
func (idx *Index) VisibleLen(encoding op.ListEncoding) int {
	if encoding == op.ListEncodingText {
		return idx.visibleText.width
	}
	return idx.visible.Len()
}

// HasVisible reports whether seen currently has at least one visible op.
func (idx *Index) HasVisible(seen optype.Key) bool {
	_, ok := idx.visible.Get(seen)
	return ok
}

// ChangeVis applies a visibility transition recorded by the caller (e.g.
// after a succ-list splice changed whether o is shadowed), returning the
// same bundle unchanged for the caller's convenience chaining further
// index updates up a B-tree path.
func (idx *Index) ChangeVis(c ChangeVisibility) ChangeVisibility {
	key := c.Op.ElemidOrKey().IntoOwned()
	switch {
	case c.OldVis && !c.NewVis:
		n, ok := idx.visible.Get(key)
		if !ok {
			panic(ErrVisibilityUnderflow)
		}
		if n == 1 {
			idx.visible.Delete(key)
			idx.visibleText.removeOp(c.Op)
		} else {
			idx.visible.Put(key, n-1)
		}
	case !c.OldVis && c.NewVis:
		if n, ok := idx.visible.Get(key); ok {
			idx.visible.Put(key, n+1)
		} else {
			idx.visible.Put(key, 1)
			idx.visibleText.addOp(c.Op)
		}
	}
	if idx.stats != nil {
		idx.stats.RecordChangeVis()
	}
	return c
}

// Insert folds o's contribution into idx: it joins the op-id set, updates
// mark bookkeeping, and (if o is visible) the visible-key count and text
// width.
func (idx *Index) Insert(o op.Op) {
	idx.neverSeenPuts = idx.neverSeenPuts && o.Insert
	idx.ops.Put(o.ID, struct{}{})

	switch o.Type.Kind {
	case optype.OpMarkBegin:
		idx.markBegin.Put(o.ID, o.Type.Mark)
	case optype.OpMarkEnd:
		prev := o.ID.Counter
		if prev > 0 {
			prevID := optype.OpId{Actor: o.ID.Actor, Counter: prev - 1}
			if _, ok := idx.markBegin.Get(prevID); ok {
				idx.markBegin.Delete(prevID)
				break
			}
		}
		idx.markEnd = append(idx.markEnd, o.ID)
	}

	if o.Visible() {
		key := o.ElemidOrKey().IntoOwned()
		if n, ok := idx.visible.Get(key); ok {
			idx.visible.Put(key, n+1)
		} else {
			idx.visible.Put(key, 1)
			idx.visibleText.addOp(o)
		}
	}
	if idx.stats != nil {
		idx.stats.RecordInsert()
	}
}

// Remove undoes o's contribution to idx, the inverse of Insert.
func (idx *Index) Remove(o op.Op) {
	idx.ops.Delete(o.ID)

	switch o.Type.Kind {
	case optype.OpMarkBegin:
		idx.markBegin.Delete(o.ID)
	case optype.OpMarkEnd:
		filtered := idx.markEnd[:0]
		for _, id := range idx.markEnd {
			if id != o.ID {
				filtered = append(filtered, id)
			}
		}
		idx.markEnd = filtered
	}

	if o.Visible() {
		key := o.ElemidOrKey().IntoOwned()
		n, ok := idx.visible.Get(key)
		if !ok {
			panic(ErrVisibilityUnderflow)
		}
		if n == 1 {
			idx.visible.Delete(key)
			idx.visibleText.removeOp(o)
		} else {
			idx.visible.Put(key, n-1)
		}
	}
	if idx.stats != nil {
		idx.stats.RecordRemove()
	}
}

// Merge absorbs other's contribution into idx, combining two sibling
// subtree indexes into their parent's. A MarkBegin colliding between the
// two sides panics with ErrMarkBeginCollision: disjoint sibling subtrees
// should never carry the same op id.
func (idx *Index) Merge(other *Index) {
	for id := range other.ops.All() {
		idx.ops.Put(id, struct{}{})
	}
	for key, n := range other.visible.All() {
		if cur, ok := idx.visible.Get(key); ok {
			idx.visible.Put(key, cur+n)
		} else {
			idx.visible.Put(key, n)
		}
	}
	for id, data := range other.markBegin.All() {
		if _, collide := idx.markBegin.Get(id); collide {
			panic(ErrMarkBeginCollision)
		}
		idx.markBegin.Put(id, data)
	}
	idx.markEnd = append(idx.markEnd, other.markEnd...)
	idx.visibleText.merge(&other.visibleText)
	idx.neverSeenPuts = idx.neverSeenPuts && other.neverSeenPuts

	if idx.stats != nil {
		idx.stats.RecordMerge(other.ops.Len())
	}
}
