// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/graknlabs/benchplot/internal/config"
	"github.com/graknlabs/benchplot/internal/fetch"
	"github.com/graknlabs/benchplot/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	log    *logrus.Logger
	stdout io.Writer
	stderr io.Writer

	// Flags.
	configPath  string
	verbose     bool
	commit      string
	iterations  []int
	ext         string
	outDir      string
	snapshotDir string
}

// run executes the command line args and logs any error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{
		log:    newLogger(stderr),
		stdout: stdout,
		stderr: stderr,
	}
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		a.log.WithError(err).Error("benchplot failed")
		return err
	}
	return nil
}

// newLogger returns a logger writing to w at the level named by
// LOG_LEVEL, or info.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	level := logrus.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		l, err := logrus.ParseLevel(s)
		if err != nil {
			log.Warnf("Invalid LOG_LEVEL %q, defaulting to info", s)
		} else {
			level = l
		}
	}
	log.SetLevel(level)
	return log
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchplot",
		Short: "Compare the trace overviews of two benchmark runs",
		Long: `Benchplot fetches the trace overviews of two benchmark runs from a grabl
performance analysis and compares them as charts, tables and Go benchmark
format files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration `file`")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.commit, "commit", "", "override the commit SHA of both series")
	pf.IntSliceVar(&a.iterations, "iterations", nil, "override the iterations to compare")
	pf.StringVar(&a.ext, "ext", "", "override the image extension")
	pf.StringVar(&a.outDir, "out", "", "override the chart output directory")
	pf.StringVar(&a.snapshotDir, "snapshot-dir", "", "read series from snapshots in `dir` instead of the API")

	cmd.AddCommand(
		a.newRenderCmd(),
		a.newCompareCmd(),
		a.newExportCmd(),
		a.newFetchCmd(),
		a.newShowConfigCmd(),
	)
	return cmd
}

// loadConfig loads the configuration file and applies the flags that
// were set on top of it.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("commit") {
		cfg.CommitSHA = a.commit
	}
	if flags.Changed("iterations") {
		cfg.Iterations = a.iterations
	}
	if flags.Changed("ext") {
		cfg.ImageExtension = a.ext
	}
	if flags.Changed("out") {
		cfg.OutputDir = a.outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// source returns where series are loaded from: snapshots if
// --snapshot-dir is set, otherwise the API.
func (a *app) source(ctx context.Context, cfg *config.Config, online bool) (fetch.Source, error) {
	if a.snapshotDir != "" && !online {
		a.log.WithField("dir", a.snapshotDir).Debug("Reading snapshots")
		return fetch.SnapshotSource{Dir: a.snapshotDir}, nil
	}
	c, err := fetch.NewClient(ctx, a.log, fetch.Options{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		AuthScheme: cfg.AuthScheme,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
	})
	if err != nil {
		if errors.Is(err, fetch.ErrMissingToken) {
			return nil, fmt.Errorf("%w: set %s", err, cfg.TokenEnv)
		}
		return nil, err
	}
	return c, nil
}

// runner loads the configuration and returns a report runner for it.
func (a *app) runner(cmd *cobra.Command) (*report.Runner, *config.Config, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	src, err := a.source(cmd.Context(), cfg, false)
	if err != nil {
		return nil, nil, err
	}
	return report.NewRunner(cfg, src, a.log), cfg, nil
}
