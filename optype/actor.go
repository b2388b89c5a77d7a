// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package optype

import (
	"github.com/automerge-go/opset/leb128"
	"github.com/automerge-go/opset/pack"
)

// ActorIdx is an index into an externally-held ordered table of actor
// identifiers. This implementation chooses a native uint64 width: unlike
// the original's wasm32 target, this store does not need a narrower index
// to fit a 32-bit address space, but the width is intentionally carried as
// a named type rather than a bare uint64 so a narrower build can retarget
// it without touching every call site.
type ActorIdx uint64

// ActorIdxCodec implements pack.Codec[ActorIdx], validating each decoded
// index against ScanMeta.Actors.
type ActorIdxCodec struct{}

func (ActorIdxCodec) Pack(dst []byte, v ActorIdx) []byte {
	return leb128.PutUvarint(dst, uint64(v))
}

func (ActorIdxCodec) Unpack(buf []byte) (int, ActorIdx, error) {
	n, raw, err := (pack.Uint64Codec{}).Unpack(buf)
	if err != nil {
		return 0, 0, err
	}
	return n, ActorIdx(raw), nil
}

func (ActorIdxCodec) Group(ActorIdx) int { return 0 }

func (ActorIdxCodec) Validate(v *ActorIdx, m *pack.ScanMeta) error {
	if v == nil {
		return nil
	}
	if uint64(*v) >= uint64(m.Actors) {
		return pack.NewActorIndexOutOfRangeError(uint64(*v), m.Actors)
	}
	return nil
}
