// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newExportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write each series in the Go benchmark format",
		Long: `Export writes <dir>/<series>.txt for both series. Each agent and
iteration becomes one benchmark line reporting the average in ms/op and
the standard deviation in sd-ms/op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, _, err := a.runner(cmd)
			if err != nil {
				return err
			}
			d, err := r.Load(cmd.Context())
			if err != nil {
				return err
			}
			paths, err := r.Export(d, dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(a.stdout, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "bench", "output `directory`")
	return cmd
}
