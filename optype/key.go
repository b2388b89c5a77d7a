// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package optype

import "fmt"

// OpId identifies a single operation by the actor that authored it and
// that actor's local, monotonically increasing counter. Actor is an
// ActorIdx into the document's actor table, not the raw actor id bytes.
type OpId struct {
	Actor   ActorIdx
	Counter uint64
}

func (o OpId) String() string { return fmt.Sprintf("%d@%d", o.Counter, o.Actor) }

// Next returns the OpId immediately following o from the same actor. A
// MarkEnd cancels the MarkBegin at the OpId that precedes it.
func (o OpId) Next() OpId { return OpId{Actor: o.Actor, Counter: o.Counter + 1} }

// ElemId names a position in a sequence (list or text) by the OpId of the
// insertion that created it. The distinguished Head value names the
// position before the first element.
type ElemId struct {
	OpId OpId
}

// Head is the ElemId denoting the start of a sequence, before any insert.
var Head = ElemId{}

func (e ElemId) IsHead() bool { return e == Head }

func (e ElemId) String() string {
	if e.IsHead() {
		return "_head"
	}
	return e.OpId.String()
}

// Key is the owned form of an operation's target: either a map key (a
// UTF-8 property name) or a sequence position (an ElemId).
type Key struct {
	isMap bool
	mapk  string
	seq   ElemId
}

func MapKey(name string) Key { return Key{isMap: true, mapk: name} }
func SeqKey(e ElemId) Key    { return Key{isMap: false, seq: e} }

func (k Key) IsMap() bool { return k.isMap }

// MapName returns k's map key and true, or "" and false if k is a
// sequence position.
func (k Key) MapName() (string, bool) {
	if k.isMap {
		return k.mapk, true
	}
	return "", false
}

// ElemID returns k's sequence position and true, or the zero ElemId and
// false if k is a map key.
func (k Key) ElemID() (ElemId, bool) {
	if !k.isMap {
		return k.seq, true
	}
	return ElemId{}, false
}

func (k Key) String() string {
	if k.isMap {
		return k.mapk
	}
	return k.seq.String()
}

// KeyRef is the borrowed counterpart to Key: a map key borrows the string
// directly from a caller-supplied column buffer rather than copying it.
type KeyRef struct {
	isMap bool
	mapk  string
	seq   ElemId
}

func MapKeyRef(name string) KeyRef { return KeyRef{isMap: true, mapk: name} }
func SeqKeyRef(e ElemId) KeyRef    { return KeyRef{isMap: false, seq: e} }

// IntoOwned copies r's borrowed map-key string (if any) into an owned Key.
func (r KeyRef) IntoOwned() Key {
	if r.isMap {
		return MapKey(r.mapk)
	}
	return SeqKey(r.seq)
}

// MapKey returns r's borrowed map key and true, or "" and false if r is a
// sequence position.
func (r KeyRef) MapKey() (string, bool) {
	if r.isMap {
		return r.mapk, true
	}
	return "", false
}

// ElemID returns r's sequence position and true, or the zero ElemId and
// false if r is a map key.
func (r KeyRef) ElemID() (ElemId, bool) {
	if !r.isMap {
		return r.seq, true
	}
	return ElemId{}, false
}

func (r KeyRef) String() string {
	if r.isMap {
		return r.mapk
	}
	return r.seq.String()
}

// PropRef is the user-facing projection of a key: a map property name or
// a zero-based list/text index, never an internal ElemId.
type PropRef struct {
	isMap bool
	mapk  string
	idx   int
}

func MapProp(name string) PropRef { return PropRef{isMap: true, mapk: name} }
func SeqProp(idx int) PropRef     { return PropRef{isMap: false, idx: idx} }

func (p PropRef) IsMap() bool { return p.isMap }

func (p PropRef) MapName() (string, bool) {
	if p.isMap {
		return p.mapk, true
	}
	return "", false
}

func (p PropRef) Index() (int, bool) {
	if !p.isMap {
		return p.idx, true
	}
	return 0, false
}
