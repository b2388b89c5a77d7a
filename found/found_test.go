package found_test

import (
	"testing"

	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/found"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
	"github.com/stretchr/testify/require"
)

func mkOp(pos int, counter uint64, key string, t optype.OpType, succ ...optype.OpId) op.Op {
	return op.Op{
		Pos:  pos,
		ID:   optype.OpId{Actor: 0, Counter: counter},
		Key:  optype.MapKeyRef(key),
		Type: t,
		Succ: succ,
	}
}

// TestOpsFoundGroupingWithClockFilter is scenario 3: a stream with keys
// [A, A, B, B, B] where the second A and the middle B are out of scope,
// grouping into two surviving batches with EndPos covering every op seen
// for the key, scoped or not.
func TestOpsFoundGroupingWithClockFilter(t *testing.T) {
	shadow := optype.OpId{Actor: 0, Counter: 100}
	c := clock.New()
	c.Observe(shadow)

	ops := []op.Op{
		mkOp(0, 1, "A", optype.Put(optype.Int(1))),
		mkOp(1, 2, "A", optype.Put(optype.Int(2)), shadow),
		mkOp(2, 3, "B", optype.Put(optype.Int(3))),
		mkOp(3, 4, "B", optype.Put(optype.Int(4)), shadow),
		mkOp(4, 5, "B", optype.Put(optype.Int(5))),
	}
	it := found.NewIter(op.NewSliceIter(ops), c)

	first, ok := it.Next()
	require.True(t, ok)
	require.Len(t, first.Ops, 1)
	require.Equal(t, uint64(1), first.Ops[0].ID.Counter)
	require.Equal(t, 2, first.EndPos)

	second, ok := it.Next()
	require.True(t, ok)
	require.Len(t, second.Ops, 2)
	require.Equal(t, uint64(3), second.Ops[0].ID.Counter)
	require.Equal(t, uint64(5), second.Ops[1].ID.Counter)
	require.Equal(t, 5, second.EndPos)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestOpsFoundSkipsIncrement(t *testing.T) {
	ops := []op.Op{
		mkOp(0, 1, "A", optype.Put(optype.Int(1))),
		mkOp(1, 2, "A", optype.Increment(5)),
		mkOp(2, 3, "B", optype.Put(optype.Int(2))),
	}
	it := found.NewIter(op.NewSliceIter(ops), nil)

	first, ok := it.Next()
	require.True(t, ok)
	require.Len(t, first.Ops, 1)
	require.Equal(t, uint64(1), first.Ops[0].ID.Counter)
	require.Equal(t, 1, first.EndPos)

	second, ok := it.Next()
	require.True(t, ok)
	require.Len(t, second.Ops, 1)
	require.Equal(t, uint64(3), second.Ops[0].ID.Counter)
}
