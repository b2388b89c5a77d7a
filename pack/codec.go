// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package pack

import "github.com/automerge-go/opset/leb128"

// Codec is implemented once per column element type. It is the Go
// realization of the `Packable` trait: a value knows how to pack/unpack
// itself, how much it contributes to a paired "group" column (only
// ValueMeta uses this, for the value_raw byte offset), and how to validate
// itself against decode-time scan bounds.
type Codec[T any] interface {
	// Pack appends the wire encoding of v to dst and returns the extended
	// slice.
	Pack(dst []byte, v T) []byte
	// Unpack reads one encoded value of T from the front of buf, returning
	// the number of bytes consumed.
	Unpack(buf []byte) (consumed int, value T, err error)
	// Group returns v's contribution to a running group total. Zero for
	// every codec except ValueMeta, whose group is its payload length.
	Group(v T) int
	// Validate checks a single decoded (or absent, v == nil) value against
	// m. Most codecs never fail.
	Validate(v *T, m *ScanMeta) error
}

// Uint64Codec packs a plain unsigned LEB128 integer, used for raw numeric
// columns (e.g. counters) that do not carry a richer wire type.
type Uint64Codec struct{}

func (Uint64Codec) Pack(dst []byte, v uint64) []byte { return leb128.PutUvarint(dst, v) }

func (Uint64Codec) Unpack(buf []byte) (int, uint64, error) {
	v, n, err := leb128.Uvarint(buf)
	if err != nil {
		return 0, 0, ErrLeb
	}
	return n, v, nil
}

func (Uint64Codec) Group(uint64) int { return 0 }

func (Uint64Codec) Validate(*uint64, *ScanMeta) error { return nil }

// Int64Codec packs a plain signed LEB128 integer.
type Int64Codec struct{}

func (Int64Codec) Pack(dst []byte, v int64) []byte { return leb128.PutVarint(dst, v) }

func (Int64Codec) Unpack(buf []byte) (int, int64, error) {
	v, n, err := leb128.Varint(buf)
	if err != nil {
		return 0, 0, ErrLeb
	}
	return n, v, nil
}

func (Int64Codec) Group(int64) int { return 0 }

func (Int64Codec) Validate(*int64, *ScanMeta) error { return nil }

// BoolCodec packs a boolean as a single 0/1 byte. It backs the mark-expand
// and insert flag columns.
type BoolCodec struct{}

func (BoolCodec) Pack(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func (BoolCodec) Unpack(buf []byte) (int, bool, error) {
	if len(buf) == 0 {
		return 0, false, ErrLeb
	}
	return 1, buf[0] != 0, nil
}

func (BoolCodec) Group(bool) int { return 0 }

func (BoolCodec) Validate(*bool, *ScanMeta) error { return nil }
