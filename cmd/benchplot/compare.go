// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/graknlabs/benchplot/cmd/benchplot/internal/benchtab"
	"github.com/spf13/cobra"
)

func (a *app) newCompareCmd() *cobra.Command {
	var format string
	var useColor bool
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print a comparison table of the two series",
		Long: `Compare prints, for every agent present in both series and every
configured iteration, the average and standard deviation of each series and
the change relative to the first series. A change within one standard
deviation of both series is shown as "~". The last row gives the geometric
mean of each column.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "csv" {
				return fmt.Errorf("unknown format %q, want text or csv", format)
			}
			r, _, err := a.runner(cmd)
			if err != nil {
				return err
			}
			d, err := r.Load(cmd.Context())
			if err != nil {
				return err
			}
			results, err := r.Results(d)
			if err != nil {
				return err
			}

			b := benchtab.NewBuilder()
			for _, res := range results {
				if err := b.Add(res); err != nil {
					return err
				}
			}
			table := b.ToTable()

			if format == "csv" {
				return table.ToCSV(a.stdout, a.stderr)
			}
			return table.ToText(a.stdout, useColor)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output `format`: text or csv")
	cmd.Flags().BoolVar(&useColor, "color", !color.NoColor, "color deltas in text output")
	return cmd
}
