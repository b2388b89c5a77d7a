package leb128_test

import (
	"math"
	"testing"

	"github.com/automerge-go/opset/leb128"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 2, 127, 128, 129, 300, 1 << 20, math.MaxUint32, math.MaxUint64}
	for _, v := range cases {
		enc := leb128.AppendUvarint(v)
		require.Equal(t, leb128.UvarintSize(v), len(enc))
		got, n, err := leb128.Uvarint(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 63, 64, -64, -65, 300, -300, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64}
	for _, v := range cases {
		enc := leb128.AppendVarint(v)
		require.Equal(t, leb128.VarintSize(v), len(enc))
		got, n, err := leb128.Varint(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

func TestUvarintMalformed(t *testing.T) {
	_, _, err := leb128.Uvarint([]byte{0x80, 0x80})
	require.ErrorIs(t, err, leb128.ErrMalformed)

	_, _, err = leb128.Uvarint(nil)
	require.ErrorIs(t, err, leb128.ErrMalformed)
}

func TestVarintMalformed(t *testing.T) {
	_, _, err := leb128.Varint([]byte{0x80, 0x80})
	require.ErrorIs(t, err, leb128.ErrMalformed)
}

// TestSizeLaw exercises the "LEB128 length law" from the spec's
// testable properties: ulebsize(x) == len(encode_uleb(x)) for a spread of
// representative x, and the signed analogue.
func TestSizeLaw(t *testing.T) {
	for shift := 0; shift < 64; shift++ {
		v := uint64(1) << uint(shift)
		require.Equal(t, len(leb128.AppendUvarint(v)), leb128.UvarintSize(v))
	}
	for shift := 0; shift < 63; shift++ {
		v := int64(1) << uint(shift)
		require.Equal(t, len(leb128.AppendVarint(v)), leb128.VarintSize(v))
		require.Equal(t, len(leb128.AppendVarint(-v)), leb128.VarintSize(-v))
	}
}
