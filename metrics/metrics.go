// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Package metrics exposes a small, optional set of prometheus collectors
// for index and op-set activity. Every exported constructor returns a
// value that is safe to leave nil -- callers that don't want metrics
// never pay for them.
package metrics

import (
	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles the prometheus series this module registers. The
// zero value is unregistered; call NewCollectors to get a ready instance
// and Register to attach it to a registry.
type Collectors struct {
	OpsIndexed      prometheus.Counter
	MergesPerformed prometheus.Counter
	PanicsRecovered prometheus.Counter
}

// NewCollectors builds an unregistered Collectors bundle.
func NewCollectors() *Collectors {
	return &Collectors{
		OpsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opset",
			Name:      "ops_indexed_total",
			Help:      "Number of ops folded into an Index via Insert.",
		}),
		MergesPerformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opset",
			Name:      "index_merges_total",
			Help:      "Number of Index.Merge calls performed.",
		}),
		PanicsRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opset",
			Name:      "index_panics_recovered_total",
			Help:      "Number of invariant-violation panics recovered at a document boundary.",
		}),
	}
}

// Register attaches c's collectors to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, coll := range []prometheus.Collector{c.OpsIndexed, c.MergesPerformed, c.PanicsRecovered} {
		if err := reg.Register(coll); err != nil {
			return err
		}
	}
	return nil
}

// Stats is an injectable recorder for Index batch-size activity, used in
// tests and diagnostics to spot pathological merge/insert patterns
// without depending on a live prometheus registry. A nil *Stats is valid
// and every method on it is then a no-op.
type Stats struct {
	collectors  *Collectors
	mergeSizes  *hdrhistogram.Histogram
}

// NewStats returns a Stats recorder that reports through collectors (nil
// is fine, disabling the prometheus side) and keeps an HDR histogram of
// merge batch sizes for diagnostic percentile queries.
func NewStats(collectors *Collectors) *Stats {
	return &Stats{
		collectors: collectors,
		mergeSizes: hdrhistogram.New(1, 1_000_000, 3),
	}
}

func (s *Stats) RecordInsert() {
	if s == nil {
		return
	}
	if s.collectors != nil {
		s.collectors.OpsIndexed.Inc()
	}
}

func (s *Stats) RecordRemove() {
	if s == nil {
		return
	}
}

func (s *Stats) RecordChangeVis() {
	if s == nil {
		return
	}
}

// RecordMerge records that a merge absorbed n ops from the other side.
func (s *Stats) RecordMerge(n int) {
	if s == nil {
		return
	}
	if s.collectors != nil {
		s.collectors.MergesPerformed.Inc()
	}
	_ = s.mergeSizes.RecordValue(int64(n))
}

// MergeSizePercentile reports the nth percentile (0..100) of recorded
// merge batch sizes, or 0 if nothing has been recorded.
func (s *Stats) MergeSizePercentile(n float64) int64 {
	if s == nil || s.mergeSizes.TotalCount() == 0 {
		return 0
	}
	return s.mergeSizes.ValueAtQuantile(n)
}
