// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package optype

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/automerge-go/opset/leb128"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Kind discriminates ScalarValue's variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindUint
	KindInt
	KindF64
	KindStr
	KindBytes
	KindCounter
	KindTimestamp
	KindUnknown
)

// ScalarValue is a borrowed, typed value extracted from a (ValueMeta, raw
// bytes) column pair. Bytes/Unknown borrow directly from the raw-bytes
// column; Str holds its own copy of the payload (FromRaw converts with
// string(raw)), and every other kind is a plain copy since it's small.
type ScalarValue struct {
	Kind Kind

	Boolean bool
	Uint    uint64
	Int     int64
	F64     float64
	Str     string
	Bytes   []byte

	UnknownTypeCode uint8
}

func Null() ScalarValue                { return ScalarValue{Kind: KindNull} }
func Bool(b bool) ScalarValue          { return ScalarValue{Kind: KindBoolean, Boolean: b} }
func Uint(v uint64) ScalarValue        { return ScalarValue{Kind: KindUint, Uint: v} }
func Int(v int64) ScalarValue          { return ScalarValue{Kind: KindInt, Int: v} }
func Float(v float64) ScalarValue      { return ScalarValue{Kind: KindF64, F64: v} }
func String(s string) ScalarValue      { return ScalarValue{Kind: KindStr, Str: s} }
func BytesValue(b []byte) ScalarValue  { return ScalarValue{Kind: KindBytes, Bytes: b} }
func Counter(v int64) ScalarValue      { return ScalarValue{Kind: KindCounter, Int: v} }
func Timestamp(v int64) ScalarValue    { return ScalarValue{Kind: KindTimestamp, Int: v} }
func Unknown(code uint8, b []byte) ScalarValue {
	return ScalarValue{Kind: KindUnknown, UnknownTypeCode: code, Bytes: b}
}

// IsNumeric reports whether s can serve as the operand of an Increment op.
func (s ScalarValue) IsNumeric() bool {
	return s.Kind == KindInt || s.Kind == KindUint
}

// String implements fmt.Stringer for debug output.
func (s ScalarValue) String() string {
	switch s.Kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return fmt.Sprintf("%t", s.Boolean)
	case KindUint:
		return fmt.Sprintf("%d", s.Uint)
	case KindInt:
		return fmt.Sprintf("%d", s.Int)
	case KindF64:
		return fmt.Sprintf("%.2f", s.F64)
	case KindStr:
		return fmt.Sprintf("%q", s.Str)
	case KindBytes:
		return fmt.Sprintf("%x", s.Bytes)
	case KindCounter:
		return fmt.Sprintf("Counter(%d)", s.Int)
	case KindTimestamp:
		return fmt.Sprintf("Timestamp(%d)", s.Int)
	case KindUnknown:
		return fmt.Sprintf("unknown type %d", s.UnknownTypeCode)
	default:
		return "?"
	}
}

// SafeFormat implements redact.SafeFormatter: small control-ish values
// (booleans, numbers, the unknown type code) are safe to log verbatim, but
// string/byte payloads may carry user data, so they are printed without a
// Safe() wrapper and stay redacted in formatted error output.
func (s ScalarValue) SafeFormat(w redact.SafePrinter, _ rune) {
	switch s.Kind {
	case KindStr:
		w.Print(s.Str)
	case KindBytes, KindUnknown:
		w.Printf("<%d bytes>", len(s.Bytes))
	default:
		w.Print(redact.Safe(s.String()))
	}
}

var (
	// ErrReadUleb is returned when a Uleb-tagged value's raw bytes are not
	// a valid unsigned LEB128 encoding.
	ErrReadUleb = errors.New("optype: invalid uleb128 scalar payload")
	// ErrReadLeb is returned when a Leb/Counter/Timestamp-tagged value's
	// raw bytes are not a valid signed LEB128 encoding.
	ErrReadLeb = errors.New("optype: invalid leb128 scalar payload")
	// ErrReadFloat is returned when a Float-tagged value's raw bytes are
	// not exactly 8 bytes.
	ErrReadFloat = errors.New("optype: invalid float scalar payload")
	// ErrReadStr is returned when a String-tagged value's raw bytes are
	// not valid UTF-8.
	ErrReadStr = errors.New("optype: invalid utf8 in string scalar payload")
)

// FromRaw reconstructs a ScalarValue from a decoded ValueMeta and its
// paired raw-byte slice. The caller (a GroupCursor-driven reader) is
// responsible for slicing raw to exactly meta.Length() bytes.
func FromRaw(meta ValueMeta, raw []byte) (ScalarValue, error) {
	vt, known := meta.ValueType()
	if !known {
		return Unknown(meta.TypeCode(), raw), nil
	}
	switch vt {
	case ValueTypeNull:
		return Null(), nil
	case ValueTypeFalse:
		return Bool(false), nil
	case ValueTypeTrue:
		return Bool(true), nil
	case ValueTypeUleb:
		v, n, err := leb128.Uvarint(raw)
		if err != nil || n != len(raw) {
			return ScalarValue{}, ErrReadUleb
		}
		return Uint(v), nil
	case ValueTypeLeb:
		v, n, err := leb128.Varint(raw)
		if err != nil || n != len(raw) {
			return ScalarValue{}, ErrReadLeb
		}
		return Int(v), nil
	case ValueTypeFloat:
		if len(raw) != 8 {
			return ScalarValue{}, ErrReadFloat
		}
		bits := uint64(raw[0]) | uint64(raw[1])<<8 | uint64(raw[2])<<16 | uint64(raw[3])<<24 |
			uint64(raw[4])<<32 | uint64(raw[5])<<40 | uint64(raw[6])<<48 | uint64(raw[7])<<56
		return Float(math.Float64frombits(bits)), nil
	case ValueTypeString:
		if !isValidUTF8(raw) {
			return ScalarValue{}, ErrReadStr
		}
		return String(string(raw)), nil
	case ValueTypeBytes:
		return BytesValue(raw), nil
	case ValueTypeCounter:
		v, n, err := leb128.Varint(raw)
		if err != nil || n != len(raw) {
			return ScalarValue{}, ErrReadLeb
		}
		return Counter(v), nil
	case ValueTypeTimestamp:
		v, n, err := leb128.Varint(raw)
		if err != nil || n != len(raw) {
			return ScalarValue{}, ErrReadLeb
		}
		return Timestamp(v), nil
	default:
		return Unknown(meta.TypeCode(), raw), nil
	}
}

// ToRaw produces the payload bytes for s; Null and Boolean have no
// payload (nil). Bytes/Unknown alias s's own backing slice (zero copy);
// Str is copied into a fresh slice, and numeric/float forms allocate a
// fresh buffer.
func (s ScalarValue) ToRaw() []byte {
	switch s.Kind {
	case KindStr:
		return []byte(s.Str)
	case KindBytes, KindUnknown:
		return s.Bytes
	case KindNull, KindBoolean:
		return nil
	case KindUint:
		return leb128.AppendUvarint(s.Uint)
	case KindInt, KindCounter, KindTimestamp:
		return leb128.AppendVarint(s.Int)
	case KindF64:
		bits := math.Float64bits(s.F64)
		return []byte{
			byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24),
			byte(bits >> 32), byte(bits >> 40), byte(bits >> 48), byte(bits >> 56),
		}
	default:
		return nil
	}
}

// Equal reports whether s and o are the same scalar value.
func (s ScalarValue) Equal(o ScalarValue) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KindNull:
		return true
	case KindBoolean:
		return s.Boolean == o.Boolean
	case KindUint:
		return s.Uint == o.Uint
	case KindInt, KindCounter, KindTimestamp:
		return s.Int == o.Int
	case KindF64:
		return s.F64 == o.F64
	case KindStr:
		return s.Str == o.Str
	case KindBytes:
		return string(s.Bytes) == string(o.Bytes)
	case KindUnknown:
		return s.UnknownTypeCode == o.UnknownTypeCode && string(s.Bytes) == string(o.Bytes)
	default:
		return false
	}
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}
