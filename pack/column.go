// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package pack

import "github.com/cockroachdb/errors"

// ColumnData is an in-memory, append-friendly RLE-packed column. It is the
// minimal stand-in for the host op-set's persistent column store: callers
// splice in runs of values (or gaps of absence) and iterate the result
// with an RleCursor. The canonical representation is always the packed
// byte stream in raw; Splice decodes, edits, and re-encodes it.
type ColumnData[T comparable] struct {
	codec     Codec[T]
	raw       []byte
	chunkSize int
}

// NewColumnData constructs an empty column using codec.
func NewColumnData[T comparable](codec Codec[T]) *ColumnData[T] {
	return &ColumnData[T]{codec: codec, chunkSize: DefaultChunkSize}
}

// Splice deletes delCount rows starting at index and inserts items in
// their place, exactly like Vec::splice on the decoded row sequence. Pass
// delCount == 0 to insert without deleting, or a nil/empty items to delete
// without inserting.
func (c *ColumnData[T]) Splice(index, delCount int, items []*T) error {
	all := c.decodeAll()
	if index < 0 || delCount < 0 || index+delCount > len(all) {
		return errors.Newf("pack: splice(%d, %d) out of range for column of length %d", index, delCount, len(all))
	}
	merged := make([]*T, 0, len(all)-delCount+len(items))
	merged = append(merged, all[:index]...)
	merged = append(merged, items...)
	merged = append(merged, all[index+delCount:]...)
	c.raw = EncodeRLE(c.codec, merged)
	return nil
}

// Append is shorthand for Splice(Len(), 0, items).
func (c *ColumnData[T]) Append(items ...*T) error {
	return c.Splice(c.Len(), 0, items)
}

// Len returns the number of logical rows (including absent ones) in the
// column. It is computed by a full scan; callers iterating the whole
// column anyway should prefer counting as they go.
func (c *ColumnData[T]) Len() int {
	n := 0
	cur := c.Iter()
	for {
		if _, ok := cur.Next(); !ok {
			break
		}
		n++
	}
	return n
}

// Raw returns the packed byte representation, e.g. for persistence or for
// feeding into a debug dump.
func (c *ColumnData[T]) Raw() []byte { return c.raw }

// Iter returns a cursor over the whole column.
func (c *ColumnData[T]) Iter() *RleCursor[T] {
	return NewRleCursor[T](c.raw, c.codec, c.chunkSize)
}

// IterRange returns a cursor over the half-open row range [start, end).
func (c *ColumnData[T]) IterRange(start, end int) *RleCursor[T] {
	cur := c.Iter()
	cur.AdvanceBy(start)
	cur.limit = end - start
	return cur
}

// IterRangeGrouped is IterRange composed with WithGroup, preserving the
// running group total accumulated from row 0 (not just from start).
func (c *ColumnData[T]) IterRangeGrouped(start, end int) *GroupCursor[T] {
	cur := c.Iter()
	g := cur.WithGroup()
	g.AdvanceBy(start)
	cur.limit = end - start
	return g
}

// Validate decodes the whole column and validates every present value
// against m, satisfying the ColumnValidator interface used by
// ValidateColumns.
func (c *ColumnData[T]) Validate(m *ScanMeta) error {
	cur := c.Iter()
	for {
		e, ok := cur.Next()
		if !ok {
			break
		}
		if err := c.codec.Validate(e.Item, m); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (c *ColumnData[T]) decodeAll() []*T {
	var out []*T
	cur := c.Iter()
	for {
		e, ok := cur.Next()
		if !ok {
			break
		}
		out = append(out, e.Item)
	}
	return out
}
