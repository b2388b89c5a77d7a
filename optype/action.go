// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package optype holds the op-set's scalar and key type model: the Action
// tag set, the packed ValueMeta/ScalarValue pair, the richer OpType
// reconstruction, and the Key/KeyRef/PropRef/Value discriminated unions.
// None of these types own column bytes; ScalarValue and KeyRef borrow from
// a caller-supplied byte slice and are valid only as long as that slice is.
package optype

import (
	"fmt"

	"github.com/automerge-go/opset/leb128"
	"github.com/automerge-go/opset/pack"
)

// Action is the wire tag for an operation's kind. Mark begin and mark end
// share the Mark tag; OpType carries the distinction.
type Action uint8

const (
	ActionMakeMap Action = iota
	ActionSet
	ActionMakeList
	ActionDelete
	ActionMakeText
	ActionIncrement
	ActionMakeTable
	ActionMark
)

func (a Action) String() string {
	switch a {
	case ActionMakeMap:
		return "MAP"
	case ActionSet:
		return "SET"
	case ActionMakeList:
		return "LST"
	case ActionDelete:
		return "DEL"
	case ActionMakeText:
		return "TXT"
	case ActionIncrement:
		return "INC"
	case ActionMakeTable:
		return "TBL"
	case ActionMark:
		return "MRK"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Uint64 returns the wire code for a. This is the action-code bijection
// tested by the spec: unpacking Uint64(a) always yields a back.
func (a Action) Uint64() uint64 { return uint64(a) }

// ActionCodec implements pack.Codec[Action].
type ActionCodec struct{}

func (ActionCodec) Pack(dst []byte, v Action) []byte {
	return leb128.PutUvarint(dst, v.Uint64())
}

func (ActionCodec) Unpack(buf []byte) (int, Action, error) {
	n, raw, err := (pack.Uint64Codec{}).Unpack(buf)
	if err != nil {
		return 0, 0, err
	}
	if raw > uint64(ActionMark) {
		return 0, 0, pack.NewInvalidValueError(
			"valid action (integer between 0 and 7)",
			fmt.Sprintf("unexpected integer: %d", raw),
		)
	}
	return n, Action(raw), nil
}

func (ActionCodec) Group(Action) int { return 0 }

func (ActionCodec) Validate(*Action, *pack.ScanMeta) error { return nil }

// ObjType identifies the kind of composite object a Make op creates.
type ObjType uint8

const (
	ObjTypeMap ObjType = iota
	ObjTypeList
	ObjTypeText
	ObjTypeTable
)

func (o ObjType) String() string {
	switch o {
	case ObjTypeMap:
		return "map"
	case ObjTypeList:
		return "list"
	case ObjTypeText:
		return "text"
	case ObjTypeTable:
		return "table"
	default:
		return fmt.Sprintf("ObjType(%d)", uint8(o))
	}
}

// ObjTypeFromAction projects a MakeX action onto the ObjType it creates.
// It returns false for any action that is not a Make action.
func ObjTypeFromAction(a Action) (ObjType, bool) {
	switch a {
	case ActionMakeMap:
		return ObjTypeMap, true
	case ActionMakeList:
		return ObjTypeList, true
	case ActionMakeText:
		return ObjTypeText, true
	case ActionMakeTable:
		return ObjTypeTable, true
	default:
		return 0, false
	}
}
