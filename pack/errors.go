// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package pack

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrLeb is returned when a column's RLE run header or an embedded scalar
// fails to decode as a valid LEB128 integer.
var ErrLeb = errors.New("pack: malformed leb128 value")

// InvalidValueError reports that a tagged column (e.g. action codes)
// contained an integer outside its defined range.
type InvalidValueError struct {
	Expected string
	Actual   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("pack: expected %s, got %s", e.Expected, e.Actual)
}

// NewInvalidValueError constructs a decode error describing what was
// expected versus what was actually found in the column.
func NewInvalidValueError(expected, actual string) error {
	return errors.WithStack(&InvalidValueError{Expected: expected, Actual: actual})
}

// ActorIndexOutOfRangeError reports that an ActorIdx column referenced an
// actor beyond the bounds declared by ScanMeta.
type ActorIndexOutOfRangeError struct {
	Idx   uint64
	Limit int
}

func (e *ActorIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("pack: actor index %d out of range (have %d actors)", e.Idx, e.Limit)
}

// NewActorIndexOutOfRangeError constructs the decode error for an
// out-of-bounds actor reference.
func NewActorIndexOutOfRangeError(idx uint64, limit int) error {
	return errors.WithStack(&ActorIndexOutOfRangeError{Idx: idx, Limit: limit})
}
