// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package op defines the borrowed, cross-column view of a single
// operation and the iterator stack that walks a document's op columns:
// Iter (with SliceIter), VisibleIter, TopIter, and DiffIter, which yields
// DiffOp values.
package op

import (
	"unicode/utf8"

	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/optype"
)

// ListEncoding selects how Op.Width measures a put's contribution to a
// sequence's length: one slot per element for a plain list, or a
// grapheme-adjacent rune count for text.
type ListEncoding uint8

const (
	ListEncodingList ListEncoding = iota
	ListEncodingText
)

// Op is a borrowed view over a single logical operation, reconstructed
// from parallel column cursors aligned on Pos. It does not own any of the
// bytes its fields reference; it is valid only as long as the underlying
// column store is not spliced.
type Op struct {
	Pos    int
	ID     optype.OpId
	Key    optype.KeyRef
	Type   optype.OpType
	Insert bool
	Succ   []optype.OpId
}

// Action is the column projection of o's reconstructed OpType.
func (o Op) Action() optype.Action { return o.Type.Action() }

// ElemidOrKey normalizes o's target into a KeyRef for index/visibility
// bookkeeping: a put into a sequence uses the ElemId of the slot it
// targets, a put into a map uses the map key directly. Since both forms
// already live in Key, this is simply an accessor.
func (o Op) ElemidOrKey() optype.KeyRef { return o.Key }

// Visible reports whether o is a put-like op (Make/Set/active MarkBegin)
// with no successor at all -- the baseline, clock-free notion used by
// Index bookkeeping, which always operates on the op-set's current state.
func (o Op) Visible() bool {
	return o.Type.IsPut() && len(o.Succ) == 0
}

// Width measures o's contribution to a sequence's visible length under
// encoding. A non-insert op (anything but the first op at a position)
// contributes 0; List counts one slot per insert; Text counts the rune
// length of a string Put (matching the original's UTF-8 width, not UTF-16
// or byte length), and 1 for every other kind of insert (objects, marks).
func (o Op) Width(encoding ListEncoding) int {
	if !o.Insert {
		return 0
	}
	if encoding == ListEncodingList {
		return 1
	}
	if o.Type.Kind == optype.OpPut && o.Type.Value.Kind == optype.KindStr {
		return utf8.RuneCountInString(o.Type.Value.Str)
	}
	return 1
}

// ScopeToClock reports whether o is shadowed (not visible) at c: true if
// any of o's successors was itself observed at c. When c is nil, o is
// shadowed exactly when it has any successor at all, matching Visible's
// unconditional succ-empty check.
func ScopeToClock(o Op, c *clock.Clock) bool {
	if len(o.Succ) == 0 {
		return false
	}
	if c == nil {
		return true
	}
	for _, s := range o.Succ {
		if c.Includes(s) {
			return true
		}
	}
	return false
}

// VisibleAt reports whether o is visible at clock c: a put-like op none
// of whose successors is in scope at c.
func (o Op) VisibleAt(c *clock.Clock) bool {
	return o.Type.IsPut() && !ScopeToClock(o, c)
}
