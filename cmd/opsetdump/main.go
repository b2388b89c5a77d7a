// Copyright 2025 The automerge-go Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in the
// LICENSE file.

// Command opsetdump is a small diagnostic tool for the op-set column
// store: it renders a deterministically generated synthetic range of ops
// as a table, sketches the visible-key count over op position, and can
// export a compressed snapshot blob for offline analysis. It does not
// load a serialized store from disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "opsetdump",
		Short: "Inspect and export op-set column store ranges",
	}
	root.AddCommand(newDumpCmd())
	root.AddCommand(newExportCmd())
	return root
}
