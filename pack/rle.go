// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package pack

import "github.com/automerge-go/opset/leb128"

// DefaultChunkSize is the nominal run-length checkpoint granularity
// mentioned by the spec (RleCursor<CHUNK, T>). Go has no const-generic
// integer parameters, so it is carried as a plain constructor argument
// rather than a type parameter; see DESIGN.md's Open Question section for
// why this implementation does not (yet) use it to build a chunked,
// sub-linear random-access index.
const DefaultChunkSize = 64

const (
	runNull int = iota
	runLiteral
	runRepeat
)

// Entry is one decoded row of a column: its logical position and the
// decoded value, or a nil Item if the row is absent (a run of "nulls").
type Entry[T any] struct {
	Pos  int
	Item *T
}

// RleCursor walks a single RLE-packed column, producing one Entry per
// logical row in column order. The wire discipline is: each run begins
// with a signed LEB128 header n.
//
//   - n == 0: a null run; the next unsigned LEB128 is the run's length,
//     all of whose rows are absent.
//   - n > 0:  a literal run of n distinct (not necessarily unique) values,
//     each separately packed by the column's Codec.
//   - n < 0:  a repeat run; exactly one packed value follows, repeated
//     -n times.
type RleCursor[T any] struct {
	codec     Codec[T]
	buf       []byte
	off       int
	chunkSize int
	pos       int

	runKind   int
	remaining int
	cached    *T

	limit int // remaining entries this cursor may emit, -1 = unbounded
	err   error
}

// NewRleCursor constructs a cursor over buf using codec, checkpointing
// conceptually every chunkSize rows (see DefaultChunkSize).
func NewRleCursor[T any](buf []byte, codec Codec[T], chunkSize int) *RleCursor[T] {
	return &RleCursor[T]{codec: codec, buf: buf, chunkSize: chunkSize, limit: -1}
}

// Err returns the first decode error encountered, if any. Once Next
// returns false because of a decode error, Err is non-nil.
func (c *RleCursor[T]) Err() error { return c.err }

// Next advances the cursor and returns the next entry, or false if the
// column is exhausted (or a prior call set Err).
func (c *RleCursor[T]) Next() (Entry[T], bool) {
	if c.err != nil {
		return Entry[T]{}, false
	}
	if c.limit == 0 {
		return Entry[T]{}, false
	}
	for c.remaining == 0 {
		if c.off >= len(c.buf) {
			return Entry[T]{}, false
		}
		header, n, err := leb128.Varint(c.buf[c.off:])
		if err != nil {
			c.err = ErrLeb
			return Entry[T]{}, false
		}
		c.off += n
		switch {
		case header == 0:
			count, n2, err := leb128.Uvarint(c.buf[c.off:])
			if err != nil {
				c.err = ErrLeb
				return Entry[T]{}, false
			}
			c.off += n2
			c.remaining = int(count)
			c.runKind = runNull
			c.cached = nil
		case header > 0:
			c.remaining = int(header)
			c.runKind = runLiteral
		default:
			c.remaining = int(-header)
			n2, v, err := c.codec.Unpack(c.buf[c.off:])
			if err != nil {
				c.err = err
				return Entry[T]{}, false
			}
			c.off += n2
			vv := v
			c.cached = &vv
			c.runKind = runRepeat
		}
	}

	var item *T
	switch c.runKind {
	case runNull:
		item = nil
	case runRepeat:
		item = c.cached
	case runLiteral:
		n, v, err := c.codec.Unpack(c.buf[c.off:])
		if err != nil {
			c.err = err
			return Entry[T]{}, false
		}
		c.off += n
		vv := v
		item = &vv
	}

	entry := Entry[T]{Pos: c.pos, Item: item}
	c.pos++
	c.remaining--
	if c.limit > 0 {
		c.limit--
	}
	return entry, true
}

// AdvanceBy consumes and discards up to n entries, stopping early if the
// column is exhausted.
func (c *RleCursor[T]) AdvanceBy(n int) {
	for i := 0; i < n; i++ {
		if _, ok := c.Next(); !ok {
			return
		}
	}
}

// WithGroup wraps the cursor with a running-sum "group" accumulator,
// mirroring the original's `.with_group()` adaptor used to keep a
// ValueMeta column and its paired raw-bytes column in lock-step.
func (c *RleCursor[T]) WithGroup() *GroupCursor[T] {
	return &GroupCursor[T]{cur: c}
}

// GroupEntry is one row emitted by a GroupCursor: the decoded value plus
// the running group total accumulated from every prior row.
type GroupEntry[T any] struct {
	Pos   int
	Item  *T
	Group int
}

// GroupCursor accumulates Codec.Group(item) across every row it has
// yielded so far, exposing the running total as each row's Group field
// *before* that row's own contribution is added.
type GroupCursor[T any] struct {
	cur *RleCursor[T]
	cum int
}

// Next returns the next grouped entry.
func (g *GroupCursor[T]) Next() (GroupEntry[T], bool) {
	e, ok := g.cur.Next()
	if !ok {
		return GroupEntry[T]{}, false
	}
	ge := GroupEntry[T]{Pos: e.Pos, Item: e.Item, Group: g.cum}
	if e.Item != nil {
		g.cum += g.cur.codec.Group(*e.Item)
	}
	return ge, true
}

// AdvanceBy consumes and discards up to n entries, correctly updating the
// running group total.
func (g *GroupCursor[T]) AdvanceBy(n int) {
	for i := 0; i < n; i++ {
		if _, ok := g.Next(); !ok {
			return
		}
	}
}

// Err returns the underlying cursor's decode error, if any.
func (g *GroupCursor[T]) Err() error { return g.cur.Err() }

// EncodeRLE packs items (nil entries denote absent rows) into the RLE wire
// format described on RleCursor. It greedily prefers repeat runs (two or
// more consecutive equal values) and null runs, falling back to literal
// runs for everything else.
func EncodeRLE[T comparable](codec Codec[T], items []*T) []byte {
	var buf []byte
	i := 0
	for i < len(items) {
		if items[i] == nil {
			j := i
			for j < len(items) && items[j] == nil {
				j++
			}
			buf = leb128.PutVarint(buf, 0)
			buf = leb128.PutUvarint(buf, uint64(j-i))
			i = j
			continue
		}

		j := i + 1
		for j < len(items) && items[j] != nil && *items[j] == *items[i] {
			j++
		}
		if runLen := j - i; runLen >= 2 {
			buf = leb128.PutVarint(buf, -int64(runLen))
			buf = codec.Pack(buf, *items[i])
			i = j
			continue
		}

		k := i
		for k < len(items) {
			if items[k] == nil {
				break
			}
			if k+1 < len(items) && items[k+1] != nil && *items[k+1] == *items[k] {
				break
			}
			k++
		}
		buf = leb128.PutVarint(buf, int64(k-i))
		for _, v := range items[i:k] {
			buf = codec.Pack(buf, *v)
		}
		i = k
	}
	return buf
}
