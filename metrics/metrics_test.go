package metrics_test

import (
	"testing"

	"github.com/automerge-go/opset/metrics"
	"github.com/stretchr/testify/require"
)

func TestNilStatsIsNoOp(t *testing.T) {
	var s *metrics.Stats
	require.NotPanics(t, func() {
		s.RecordInsert()
		s.RecordRemove()
		s.RecordChangeVis()
		s.RecordMerge(3)
	})
	require.Equal(t, int64(0), s.MergeSizePercentile(50))
}

func TestStatsRecordsMergeSizes(t *testing.T) {
	s := metrics.NewStats(nil)
	s.RecordMerge(10)
	s.RecordMerge(20)
	s.RecordMerge(30)
	require.Greater(t, s.MergeSizePercentile(50), int64(0))
}

func TestNewCollectors(t *testing.T) {
	c := metrics.NewCollectors()
	require.NotNil(t, c.OpsIndexed)
	require.NotNil(t, c.MergesPerformed)
	require.NotNil(t, c.PanicsRecovered)
}
