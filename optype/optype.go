// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package optype

import "fmt"

// MarkData carries the name and value of a mark span, as recorded on its
// MarkBegin op.
type MarkData struct {
	Name  string
	Value ScalarValue
}

// OpKind discriminates OpType's variants.
type OpKind uint8

const (
	OpMake OpKind = iota
	OpDelete
	OpIncrement
	OpPut
	OpMarkBegin
	OpMarkEnd
)

// OpType is the fully reconstructed, high-level meaning of an operation --
// richer than the bare Action column, since it carries the operand (an
// object type, a scalar, a mark's name and value, or an increment delta).
type OpType struct {
	Kind OpKind

	ObjType   ObjType
	Delta     int64
	Value     ScalarValue
	Mark      MarkData
	MarkWide  bool // Expand flag shared by MarkBegin/MarkEnd
}

func Make(t ObjType) OpType     { return OpType{Kind: OpMake, ObjType: t} }
func Delete() OpType            { return OpType{Kind: OpDelete} }
func Increment(delta int64) OpType {
	return OpType{Kind: OpIncrement, Delta: delta}
}
func Put(v ScalarValue) OpType { return OpType{Kind: OpPut, Value: v} }
func MarkBegin(expand bool, data MarkData) OpType {
	return OpType{Kind: OpMarkBegin, Mark: data, MarkWide: expand}
}
func MarkEnd(expand bool) OpType {
	return OpType{Kind: OpMarkEnd, MarkWide: expand}
}

// Action is the Action-column projection of t; MarkBegin and MarkEnd both
// project onto ActionMark.
func (t OpType) Action() Action {
	switch t.Kind {
	case OpMake:
		switch t.ObjType {
		case ObjTypeMap:
			return ActionMakeMap
		case ObjTypeList:
			return ActionMakeList
		case ObjTypeText:
			return ActionMakeText
		case ObjTypeTable:
			return ActionMakeTable
		default:
			panic(fmt.Sprintf("optype: unreachable obj type in Action: %v", t.ObjType))
		}
	case OpDelete:
		return ActionDelete
	case OpIncrement:
		return ActionIncrement
	case OpPut:
		return ActionSet
	case OpMarkBegin, OpMarkEnd:
		return ActionMark
	default:
		panic(fmt.Sprintf("optype: unreachable op kind in Action: %v", t.Kind))
	}
}

func (t OpType) IsPut() bool {
	switch t.Kind {
	case OpMake, OpPut, OpMarkBegin:
		return true
	default:
		return false
	}
}

// OpTypeFromActionAndValue reconstructs the richer OpType from its column
// projection: the Action tag, the decoded value, and (for Mark actions)
// an optional mark name and the expand flag. markName is nil for ops that
// are not marks; a nil name denotes MarkEnd, while any non-nil name --
// including an empty string -- is treated as a MarkBegin, matching the
// column encoding where an absent name denotes "end".
//
// Increment requires a numeric scalar; callers must validate this before
// calling, since this is an internal invariant violation, not a data
// error -- it panics rather than returning an error.
func OpTypeFromActionAndValue(action Action, value ScalarValue, markName *string, expand bool) OpType {
	switch action {
	case ActionMakeMap:
		return Make(ObjTypeMap)
	case ActionMakeList:
		return Make(ObjTypeList)
	case ActionMakeText:
		return Make(ObjTypeText)
	case ActionMakeTable:
		return Make(ObjTypeTable)
	case ActionDelete:
		return Delete()
	case ActionSet:
		return Put(value)
	case ActionIncrement:
		if !value.IsNumeric() {
			panic("optype: Increment op with non-numeric scalar")
		}
		if value.Kind == KindUint {
			return Increment(int64(value.Uint))
		}
		return Increment(value.Int)
	case ActionMark:
		if markName != nil {
			return MarkBegin(expand, MarkData{Name: *markName, Value: value})
		}
		return MarkEnd(expand)
	default:
		panic(fmt.Sprintf("optype: unreachable action in OpTypeFromActionAndValue: %v", action))
	}
}

// ValueKind discriminates Value's variants: an object creation or a
// scalar put.
type ValueKind uint8

const (
	ValueObject ValueKind = iota
	ValueScalar
)

// Value is the user-facing result of reading an object's current
// contents at a key: either a nested object (identified by its ObjType)
// or a terminal scalar.
type Value struct {
	Kind    ValueKind
	ObjType ObjType
	Scalar  ScalarValue
}

func ObjectValue(t ObjType) Value  { return Value{Kind: ValueObject, ObjType: t} }
func ScalarValueOf(s ScalarValue) Value { return Value{Kind: ValueScalar, Scalar: s} }
