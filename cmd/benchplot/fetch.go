// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/graknlabs/benchplot/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) newFetchCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Save the raw overviews of both series as snapshots",
		Long: `Fetch downloads both series from the API and saves each as
<dir>/<analysis_id>.json. Other commands read them back when given
--snapshot-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			src, err := a.source(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			paths, err := report.NewRunner(cfg, src, a.log).Snapshot(cmd.Context(), dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(a.stdout, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "snapshots", "snapshot `directory`")
	return cmd
}
