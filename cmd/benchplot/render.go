// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Draw the overview figure and per-agent line charts",
		Long: `Render writes overview.<ext>, with one subplot of grouped bars per
configured iteration, and agent_<name>.<ext> for every agent present in
both series, into the output directory.`,
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
			paths, err := r.Render(d)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(a.stdout, p)
			}
			return nil
		},
	}
}
