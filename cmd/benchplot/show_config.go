// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newShowConfigCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show-config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration after applying the config file, the .env file
and flags. The API token is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to show config: %w", err)
			}
			if asYAML {
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(data)
				return err
			}
			_, err = fmt.Fprintln(a.stdout, cfg)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the configuration as YAML")
	return cmd
}
