// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package leb128 implements the variable-length integer encoding used
// throughout the op-set's packed columns: unsigned LEB128 for non-negative
// quantities (lengths, actor indices, type-tagged uints) and
// sign-extension signed LEB128 for values that may be negative (Int,
// Counter, Timestamp).
//
// encoding/binary's Varint/Uvarint are not used here: Go's Varint applies a
// zigzag transform before uvarint-encoding the result, which produces a
// different byte stream than the sign-extension signed LEB128 the op-set's
// wire format requires. Uvarint is bit-compatible with unsigned LEB128, but
// for symmetry this package implements both from scratch.
package leb128

import "errors"

// ErrMalformed is returned when a buffer does not contain a valid LEB128
// encoding (it runs out of bytes before the continuation bit clears, or
// would overflow 64 bits).
var ErrMalformed = errors.New("leb128: malformed varint")

// PutUvarint appends the unsigned LEB128 encoding of v to dst and returns
// the extended slice.
func PutUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendUvarint encodes v and returns the bytes as a fresh slice.
func AppendUvarint(v uint64) []byte {
	return PutUvarint(make([]byte, 0, UvarintSize(v)), v)
}

// Uvarint decodes an unsigned LEB128 integer from the front of buf,
// returning the number of bytes consumed.
func Uvarint(buf []byte) (value uint64, consumed int, err error) {
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, ErrMalformed
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrMalformed
}

// UvarintSize returns the number of bytes PutUvarint would emit for v.
func UvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// PutVarint appends the sign-extension signed LEB128 encoding of v to dst
// and returns the extended slice.
func PutVarint(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// AppendVarint encodes v and returns the bytes as a fresh slice.
func AppendVarint(v int64) []byte {
	return PutVarint(make([]byte, 0, VarintSize(v)), v)
}

// Varint decodes a sign-extension signed LEB128 integer from the front of
// buf, returning the number of bytes consumed.
func Varint(buf []byte) (value int64, consumed int, err error) {
	var result int64
	var shift uint
	var b byte
	i := 0
	for {
		if i >= len(buf) {
			return 0, 0, ErrMalformed
		}
		b = buf[i]
		i++
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
		if shift >= 64 {
			return 0, 0, ErrMalformed
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, i, nil
}

// VarintSize returns the number of bytes PutVarint would emit for v.
func VarintSize(v int64) int {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		n++
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			return n
		}
	}
}
