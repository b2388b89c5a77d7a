// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package optype

import (
	"github.com/automerge-go/opset/leb128"
	"github.com/automerge-go/opset/pack"
)

// ValueType is the low 4 bits of a ValueMeta word.
type ValueType uint8

const (
	ValueTypeNull ValueType = iota
	ValueTypeFalse
	ValueTypeTrue
	ValueTypeUleb
	ValueTypeLeb
	ValueTypeFloat
	ValueTypeString
	ValueTypeBytes
	ValueTypeCounter
	ValueTypeTimestamp
)

const valueTypeMask = 0xF

// ValueMeta is the packed (type_code, length) pair that, together with a
// slice of the paired raw-bytes column, fully reconstructs a ScalarValue.
// The low 4 bits are the type code; the remaining 60 bits are an unsigned
// byte length. Constructors are centralized in FromScalar so that callers
// never build a ValueMeta from an arbitrary raw uint64 by hand.
type ValueMeta uint64

// TypeCode returns the low 4 bits of m. A code above 9 (the last defined
// ValueType) is an "unknown" payload type whose raw byte code is TypeCode()
// itself -- Unknown values must round-trip byte for byte.
func (m ValueMeta) TypeCode() uint8 { return uint8(m) & valueTypeMask }

// ValueType classifies TypeCode into the defined enum. It returns false
// when the code is above 9, i.e. an application-defined extension type.
func (m ValueMeta) ValueType() (ValueType, bool) {
	code := m.TypeCode()
	if code <= uint8(ValueTypeTimestamp) {
		return ValueType(code), true
	}
	return 0, false
}

// Length is the number of raw bytes this value occupies in the paired
// raw-bytes column.
func (m ValueMeta) Length() int { return int(uint64(m) >> 4) }

// rawValueMeta builds a ValueMeta from an already-computed (length,
// typeCode) pair. It is unexported: every public constructor goes through
// here so the bit layout stays centralized, per DESIGN NOTES.
func rawValueMeta(length int, typeCode uint8) ValueMeta {
	return ValueMeta(uint64(length)<<4 | uint64(typeCode&valueTypeMask))
}

// FromScalar computes the ValueMeta for s, per the type/length table in
// the spec.
func FromScalar(s ScalarValue) ValueMeta {
	switch s.Kind {
	case KindNull:
		return rawValueMeta(0, uint8(ValueTypeNull))
	case KindBoolean:
		if s.Boolean {
			return rawValueMeta(0, uint8(ValueTypeTrue))
		}
		return rawValueMeta(0, uint8(ValueTypeFalse))
	case KindUint:
		return rawValueMeta(leb128.UvarintSize(s.Uint), uint8(ValueTypeUleb))
	case KindInt:
		return rawValueMeta(leb128.VarintSize(s.Int), uint8(ValueTypeLeb))
	case KindF64:
		return rawValueMeta(8, uint8(ValueTypeFloat))
	case KindStr:
		return rawValueMeta(len(s.Str), uint8(ValueTypeString))
	case KindBytes:
		return rawValueMeta(len(s.Bytes), uint8(ValueTypeBytes))
	case KindCounter:
		return rawValueMeta(leb128.VarintSize(s.Int), uint8(ValueTypeCounter))
	case KindTimestamp:
		return rawValueMeta(leb128.VarintSize(s.Int), uint8(ValueTypeTimestamp))
	case KindUnknown:
		return rawValueMeta(len(s.Bytes), s.UnknownTypeCode)
	default:
		panic("optype: unreachable scalar kind in FromScalar")
	}
}

// ValueMetaCodec implements pack.Codec[ValueMeta]. Group returns the
// payload length, which is how a GroupCursor keeps a value_meta column
// and its paired value_raw byte stream in lock-step without a per-row
// offset column.
type ValueMetaCodec struct{}

func (ValueMetaCodec) Pack(dst []byte, v ValueMeta) []byte {
	return leb128.PutUvarint(dst, uint64(v))
}

func (ValueMetaCodec) Unpack(buf []byte) (int, ValueMeta, error) {
	n, raw, err := (pack.Uint64Codec{}).Unpack(buf)
	if err != nil {
		return 0, 0, err
	}
	return n, ValueMeta(raw), nil
}

func (ValueMetaCodec) Group(v ValueMeta) int { return v.Length() }

func (ValueMetaCodec) Validate(*ValueMeta, *pack.ScanMeta) error { return nil }
