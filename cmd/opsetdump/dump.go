// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/automerge-go/opset/index"
	"github.com/automerge-go/opset/op"
	"github.com/automerge-go/opset/optype"
	"github.com/guptarohit/asciigraph"
	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

func newDumpCmd() *cobra.Command {
	var n int
	var seed uint64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Render a synthetic op range as a table with a visible-key sparkline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := syntheticOps(n, seed)
			printTable(ops)
			printSparkline(ops)
			printKeyCounts(ops)
			if verbose && len(ops) > 0 {
				fmt.Println("first op:")
				pretty.Println(ops[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of synthetic ops to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed for synthetic op generation")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "pretty-print the first generated op's full field layout")
	return cmd
}

// syntheticOps deterministically generates n ops spread across a handful
// of map keys, for exercising dump/export without a real document.
func syntheticOps(n int, seed uint64) []op.Op {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	keys := []string{"title", "body", "author", "tags"}
	ops := make([]op.Op, 0, n)
	for i := 0; i < n; i++ {
		key := keys[rng.IntN(len(keys))]
		ops = append(ops, op.Op{
			Pos:    i,
			ID:     optype.OpId{Actor: optype.ActorIdx(rng.IntN(3)), Counter: uint64(i + 1)},
			Key:    optype.MapKeyRef(key),
			Type:   optype.Put(optype.Int(int64(rng.IntN(1000)))),
			Insert: true,
		})
	}
	return ops
}

func printTable(ops []op.Op) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"pos", "actor", "counter", "key", "action", "value"})
	for _, o := range ops {
		name, _ := o.Key.MapKey()
		table.Append([]string{
			fmt.Sprintf("%d", o.Pos),
			fmt.Sprintf("%d", o.ID.Actor),
			fmt.Sprintf("%d", o.ID.Counter),
			name,
			o.Action().String(),
			o.Type.Value.String(),
		})
	}
	table.Render()
}

// printSparkline renders the running visible-length total (per List
// encoding) as ops are folded into an Index, one point per op.
func printSparkline(ops []op.Op) {
	idx := index.New(nil)
	series := make([]float64, 0, len(ops))
	for _, o := range ops {
		idx.Insert(o)
		series = append(series, float64(idx.VisibleLen(op.ListEncodingList)))
	}
	if len(series) == 0 {
		return
	}
	fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Caption("visible keys over op position")))
}

// printKeyCounts tallies how many ops target each map key and prints the
// totals in a stable, sorted order -- golang.org/x/exp/maps.Keys returns
// the map's keys in an arbitrary order, so the dump output would
// otherwise vary run to run for no reason.
func printKeyCounts(ops []op.Op) {
	counts := map[string]int{}
	for _, o := range ops {
		if name, ok := o.Key.MapKey(); ok {
			counts[name]++
		}
	}
	keys := maps.Keys(counts)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-10s %d\n", k, counts[k])
	}
}
