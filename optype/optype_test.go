package optype_test

import (
	"testing"

	"github.com/automerge-go/opset/optype"
	"github.com/stretchr/testify/require"
)

func TestOpTypeFromActionAndValueRoundTrips(t *testing.T) {
	name := "bold"

	cases := []struct {
		label  string
		action optype.Action
		value  optype.ScalarValue
		name   *string
		expand bool
		want   optype.OpType
	}{
		{"makemap", optype.ActionMakeMap, optype.Null(), nil, false, optype.Make(optype.ObjTypeMap)},
		{"makelist", optype.ActionMakeList, optype.Null(), nil, false, optype.Make(optype.ObjTypeList)},
		{"delete", optype.ActionDelete, optype.Null(), nil, false, optype.Delete()},
		{"set", optype.ActionSet, optype.Int(7), nil, false, optype.Put(optype.Int(7))},
		{"increment", optype.ActionIncrement, optype.Int(3), nil, false, optype.Increment(3)},
		{"markbegin", optype.ActionMark, optype.Bool(true), &name, true, optype.MarkBegin(true, optype.MarkData{Name: name, Value: optype.Bool(true)})},
		{"markend", optype.ActionMark, optype.Null(), nil, true, optype.MarkEnd(true)},
	}
	for _, c := range cases {
		got := optype.OpTypeFromActionAndValue(c.action, c.value, c.name, c.expand)
		require.Equal(t, c.want, got, c.label)
		require.Equal(t, c.action, got.Action(), c.label)
	}
}

func TestOpTypeIncrementRequiresNumeric(t *testing.T) {
	require.Panics(t, func() {
		optype.OpTypeFromActionAndValue(optype.ActionIncrement, optype.String("nope"), nil, false)
	})
}

func TestKeyProjections(t *testing.T) {
	mk := optype.MapKey("title")
	name, ok := mk.MapName()
	require.True(t, ok)
	require.Equal(t, "title", name)
	_, ok = mk.ElemID()
	require.False(t, ok)

	elem := optype.ElemId{OpId: optype.OpId{Actor: 1, Counter: 5}}
	sk := optype.SeqKey(elem)
	got, ok := sk.ElemID()
	require.True(t, ok)
	require.Equal(t, elem, got)
	_, ok = sk.MapName()
	require.False(t, ok)
}

func TestKeyRefIntoOwned(t *testing.T) {
	ref := optype.MapKeyRef("count")
	owned := ref.IntoOwned()
	require.True(t, owned.IsMap())
	name, ok := owned.MapName()
	require.True(t, ok)
	require.Equal(t, "count", name)
}
