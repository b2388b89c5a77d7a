// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package found_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/automerge-go/opset/clock"
	"github.com/automerge-go/opset/found"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
	"github.com/cockroachdb/datadriven"
)

// TestGroupDataDriven runs the "group" command's fixtures in
// testdata/groups: each test case describes an optional clock cut and a
// sequence of ops, one per line, and expects the resulting OpsFound
// batches.
func TestGroupDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/groups", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "group":
			return runGroupCmd(d.Input)
		default:
			t.Fatalf("unknown command %q", d.Cmd)
			return ""
		}
	})
}

// runGroupCmd parses an input block of the form:
//
//	clock 100 101
//	counter=1 key=A
//	counter=2 key=A succ=100
//
// and renders found.Iter's batches, one line per group.
func runGroupCmd(input string) string {
	c := clock.New()
	var ops []op.Op

	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "clock") {
			for _, f := range strings.Fields(line)[1:] {
				n, _ := strconv.ParseUint(f, 10, 64)
				c.Observe(optype.OpId{Actor: 0, Counter: n})
			}
			continue
		}
		var counter uint64
		var key string
		var succ []optype.OpId
		for _, f := range strings.Fields(line) {
			kv := strings.SplitN(f, "=", 2)
			switch kv[0] {
			case "counter":
				n, _ := strconv.ParseUint(kv[1], 10, 64)
				counter = n
			case "key":
				key = kv[1]
			case "succ":
				for _, s := range strings.Split(kv[1], ",") {
					n, _ := strconv.ParseUint(s, 10, 64)
					succ = append(succ, optype.OpId{Actor: 0, Counter: n})
				}
			}
		}
		ops = append(ops, op.Op{
			Pos:  len(ops),
			ID:   optype.OpId{Actor: 0, Counter: counter},
			Key:  optype.MapKeyRef(key),
			Type: optype.Put(optype.Int(int64(counter))),
			Succ: succ,
		})
	}

	it := found.NewIter(op.NewSliceIter(ops), c)
	var out strings.Builder
	for {
		batch, ok := it.Next()
		if !ok {
			break
		}
		counters := make([]string, len(batch.Ops))
		for i, o := range batch.Ops {
			counters[i] = fmt.Sprintf("%d", o.ID.Counter)
		}
		fmt.Fprintf(&out, "group ops=[%s] endpos=%d\n", strings.Join(counters, ","), batch.EndPos)
	}
	return out.String()
}
