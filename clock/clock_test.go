package clock_test

import (
	"testing"

	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/optype"
	"github.com/stretchr/testify/require"
)

func TestNilClockIncludesEverything(t *testing.T) {
	var c *clock.Clock
	require.True(t, c.Includes(optype.OpId{Actor: 0, Counter: 9999}))
}

func TestObserveAndIncludes(t *testing.T) {
	c := clock.New()
	c.Observe(optype.OpId{Actor: 1, Counter: 5})

	require.True(t, c.Includes(optype.OpId{Actor: 1, Counter: 3}))
	require.True(t, c.Includes(optype.OpId{Actor: 1, Counter: 5}))
	require.False(t, c.Includes(optype.OpId{Actor: 1, Counter: 6}))
	require.False(t, c.Includes(optype.OpId{Actor: 2, Counter: 0}))
}

func TestCloneIsIndependent(t *testing.T) {
	c := clock.New()
	c.Observe(optype.OpId{Actor: 1, Counter: 1})
	cp := c.Clone()
	cp.Observe(optype.OpId{Actor: 1, Counter: 2})

	require.Equal(t, uint64(1), c.Get(1))
	require.Equal(t, uint64(2), cp.Get(1))
}
