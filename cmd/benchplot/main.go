// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot compares the trace overviews of two benchmark runs
// recorded by a grabl performance analysis.
//
// Usage:
//
//	benchplot [flags] command
//
// The commands are:
//
//	render       draw the overview figure and one line chart per agent
//	compare      print a comparison table of the two series
//	export       write each series in the Go benchmark format
//	fetch        save the raw overviews of both series as snapshots
//	show-config  print the effective configuration
//
// Each series is one analysis of the run at a commit. By default the
// "Old" series is compared against the "Grakn" series; a YAML file
// passed with --config can select other analyses, colors, iterations
// and so on:
//
//	commit_sha: c7692b8a98cb9c6b7f5048e36b6cabfd03b3433d
//	series:
//	  - {name: Old, analysis_id: "2929622178614665216", color: [0.09, 0.5, 0.71]}
//	  - {name: Grakn, analysis_id: "5027489464949336064", color: [0.44, 0.34, 0.79]}
//	iterations: [4, 8, 12]
//	exclude_agents: [closeClient, closeSession, openSession]
//	image_extension: png
//
// The first series is the baseline. Its bars are drawn on the left of
// each agent, its iterations are the x axis of the line charts, and
// the comparison table reports changes relative to it.
//
// The API token is read from the environment variable named by
// token_env (GRABL_USER_TOKEN by default), after loading a .env file
// from the current directory if there is one.
//
// Charts are only drawn for agents present in both series. Rendering
// fails, without writing the overview, if any of those agents lacks a
// value at a requested iteration.
//
// Example
//
// To fetch both analyses once and then render from the saved copies:
//
//	benchplot fetch --dir snapshots
//	benchplot render --snapshot-dir snapshots --ext svg --out charts
//
// To compare the two series in a spreadsheet:
//
//	benchplot compare --format csv > compare.csv
//
// Exported series can be processed further with standard Go benchmark
// tooling:
//
//	benchplot export --dir bench
//	benchstat -col .file bench/Old.txt bench/Grakn.txt
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
