package optype_test

import (
	"testing"

	"github.com/automerge-go/opset/optype"
	"github.com/automerge-go/opset/pack"
	"github.com/stretchr/testify/require"
)

// TestMetaEncodingOfSmallInts is scenario 1.
func TestMetaEncodingOfSmallInts(t *testing.T) {
	require.Equal(t, optype.ValueMeta(0x13), optype.FromScalar(optype.Uint(0)))
	require.Equal(t, optype.ValueMeta(0x14), optype.FromScalar(optype.Int(-1)))
	require.Equal(t, optype.ValueMeta(0x85), optype.FromScalar(optype.Float(1.0)))
	require.Equal(t, optype.ValueMeta(0x00), optype.FromScalar(optype.Null()))
	require.Equal(t, optype.ValueMeta(0x02), optype.FromScalar(optype.Bool(true)))
}

func TestMetaRoundTrip(t *testing.T) {
	cases := []optype.ScalarValue{
		optype.Null(),
		optype.Bool(true),
		optype.Bool(false),
		optype.Uint(0),
		optype.Uint(300),
		optype.Int(-1),
		optype.Int(1234567890),
		optype.Float(1.0),
		optype.Float(-3.5),
		optype.String("hello"),
		optype.BytesValue([]byte{1, 2, 3}),
		optype.Counter(42),
		optype.Timestamp(1700000000),
		optype.Unknown(13, []byte{0xAA, 0xBB}),
	}
	for _, s := range cases {
		meta := optype.FromScalar(s)
		raw := s.ToRaw()
		require.Equal(t, len(raw), meta.Length(), "case %v", s)

		got, err := optype.FromRaw(meta, raw)
		require.NoError(t, err)
		require.True(t, s.Equal(got), "want %v got %v", s, got)
	}
}

// TestColumnGroupOffsets is scenario 2.
func TestColumnGroupOffsets(t *testing.T) {
	items := []*optype.ValueMeta{
		ptrMeta(optype.ValueMeta(1)),
		ptrMeta(optype.ValueMeta(6 | (30 << 4))),
		ptrMeta(optype.ValueMeta(6 | (10 << 4))),
		ptrMeta(optype.ValueMeta(3)),
		ptrMeta(optype.ValueMeta(4)),
	}
	col := pack.NewColumnData[optype.ValueMeta](optype.ValueMetaCodec{})
	require.NoError(t, col.Splice(0, 0, items))

	g := col.Iter().WithGroup()
	var groups []int
	for {
		e, ok := g.Next()
		if !ok {
			break
		}
		groups = append(groups, e.Group)
	}
	require.NoError(t, g.Err())
	require.Equal(t, []int{0, 0, 30, 40, 40}, groups)

	ranged := col.IterRangeGrouped(3, 5)
	e, ok := ranged.Next()
	require.True(t, ok)
	require.Equal(t, 40, e.Group)
	require.Equal(t, optype.ValueMeta(3), *e.Item)

	e, ok = ranged.Next()
	require.True(t, ok)
	require.Equal(t, 40, e.Group)
	require.Equal(t, optype.ValueMeta(4), *e.Item)

	_, ok = ranged.Next()
	require.False(t, ok)
}

func ptrMeta(v optype.ValueMeta) *optype.ValueMeta { return &v }
