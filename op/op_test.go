package op_test

import (
	"testing"

	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
	"github.com/stretchr/testify/require"
)

func mkOp(pos int, counter uint64, key string, t optype.OpType, insert bool, succ ...optype.OpId) op.Op {
	return op.Op{
		Pos:    pos,
		ID:     optype.OpId{Actor: 0, Counter: counter},
		Key:    optype.MapKeyRef(key),
		Type:   t,
		Insert: insert,
		Succ:   succ,
	}
}

func TestOpVisible(t *testing.T) {
	put := mkOp(0, 1, "k", optype.Put(optype.Int(1)), false)
	require.True(t, put.Visible())

	shadowed := mkOp(1, 2, "k", optype.Put(optype.Int(1)), false, optype.OpId{Actor: 0, Counter: 3})
	require.False(t, shadowed.Visible())

	del := mkOp(2, 3, "k", optype.Delete(), false)
	require.False(t, del.Visible())
}

func TestOpWidth(t *testing.T) {
	str := mkOp(0, 1, "k", optype.Put(optype.String("héllo")), true)
	require.Equal(t, 5, str.Width(op.ListEncodingText))
	require.Equal(t, 1, str.Width(op.ListEncodingList))

	notInsert := mkOp(1, 2, "k", optype.Put(optype.String("xx")), false)
	require.Equal(t, 0, notInsert.Width(op.ListEncodingText))
}

func TestScopeToClockNilClock(t *testing.T) {
	noSucc := mkOp(0, 1, "k", optype.Put(optype.Int(1)), false)
	require.False(t, op.ScopeToClock(noSucc, nil))

	withSucc := mkOp(1, 2, "k", optype.Put(optype.Int(1)), false, optype.OpId{Actor: 0, Counter: 3})
	require.True(t, op.ScopeToClock(withSucc, nil))
}

func TestVisibleIterFiltersByClock(t *testing.T) {
	c := clock.New()
	c.Observe(optype.OpId{Actor: 0, Counter: 5})

	ops := []op.Op{
		mkOp(0, 1, "a", optype.Put(optype.Int(1)), false, optype.OpId{Actor: 0, Counter: 5}),
		mkOp(1, 2, "b", optype.Put(optype.Int(2)), false),
	}
	it := op.NewVisibleIter(op.NewSliceIter(ops), c)

	o, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "b", keyName(o))

	_, ok = it.Next()
	require.False(t, ok)
}

func TestTopIterPicksLastSurvivorPerKey(t *testing.T) {
	ops := []op.Op{
		mkOp(0, 1, "a", optype.Put(optype.Int(1)), false),
		mkOp(1, 2, "a", optype.Put(optype.Int(2)), false),
		mkOp(2, 3, "b", optype.Put(optype.Int(3)), false),
	}
	it := op.NewTopIter(op.NewSliceIter(ops), nil)

	o, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint64(2), o.ID.Counter)

	o, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, uint64(3), o.ID.Counter)

	_, ok = it.Next()
	require.False(t, ok)
}

func keyName(o op.Op) string {
	name, _ := o.Key.MapKey()
	return name
}

func TestDiffIterDisappeared(t *testing.T) {
	before := clock.New()
	after := clock.New()
	after.Observe(optype.OpId{Actor: 0, Counter: 10})

	ops := []op.Op{
		// visible before and after: no transition
		mkOp(0, 1, "a", optype.Put(optype.Int(1)), false),
		// disappears: its successor 10@0 is observed by "after" but not
		// by "before", so it is shadowed only at "after"
		mkOp(1, 2, "b", optype.Put(optype.Int(2)), false, optype.OpId{Actor: 0, Counter: 10}),
	}
	it := op.NewDiffIter(op.NewSliceIter(ops), before, after)

	d, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, op.DiffDisappeared, d.Kind)
	require.Equal(t, "b", keyName(d.Op))

	_, ok = it.Next()
	require.False(t, ok)
}
