// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package pack

import "golang.org/x/sync/errgroup"

// ScanMeta bounds the decode-time validation of columns that reference
// external tables, presently just the actor table. A column that indexes
// an actor at or beyond Actors is corrupt.
type ScanMeta struct {
	Actors int
}

// ColumnValidator is satisfied by anything that can check itself against a
// ScanMeta, e.g. a decoded *ColumnData[ActorIdx].
type ColumnValidator interface {
	Validate(m *ScanMeta) error
}

// ValidateColumns runs every validator concurrently and returns the first
// error encountered, if any. Despite the internal fan-out, this call is a
// single synchronous step from the perspective of the document that owns
// the op-set: it does not return until every column has been checked, and
// it exposes no cancellation or timeout (section 5 of the design doc).
func ValidateColumns(m *ScanMeta, validators ...ColumnValidator) error {
	var g errgroup.Group
	for _, v := range validators {
		v := v
		g.Go(func() error {
			return v.Validate(m)
		})
	}
	return g.Wait()
}
