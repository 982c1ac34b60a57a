// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report runs the steps of a benchmark comparison: loading
// both series, selecting the agents to compare, and rendering charts
// and exports from them. Steps run one after another.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graknlabs/benchplot/benchfmt"
	"github.com/graknlabs/benchplot/internal/chart"
	"github.com/graknlabs/benchplot/internal/config"
	"github.com/graknlabs/benchplot/internal/fetch"
	"github.com/graknlabs/benchplot/trace"
	"github.com/sirupsen/logrus"
)

// ErrNoAgents is returned when the two series have no agent in
// common after exclusions.
var ErrNoAgents = errors.New("no agents common to both series")

// Runner runs report steps for one configuration.
type Runner struct {
	cfg *config.Config
	src fetch.Source
	log logrus.FieldLogger
}

// NewRunner returns a Runner that loads series from src.
func NewRunner(cfg *config.Config, src fetch.Source, log logrus.FieldLogger) *Runner {
	return &Runner{
		cfg: cfg,
		src: src,
		log: log.WithField("component", "report"),
	}
}

// Data is the loaded input of a report.
type Data struct {
	// A and B are the configured series in order. A is the
	// baseline.
	A, B chart.Series

	// Agents are the agents to compare, sorted.
	Agents []string
}

// Load fetches and reshapes both series and selects the agents
// present in both that are not excluded.
func (r *Runner) Load(ctx context.Context) (*Data, error) {
	if len(r.cfg.Series) != 2 {
		return nil, fmt.Errorf("%w, got %d", config.ErrSeriesCount, len(r.cfg.Series))
	}
	var series [2]chart.Series
	for i, s := range r.cfg.Series {
		raw, err := r.src.Fetch(ctx, r.cfg.CommitSHA, s.AnalysisID)
		if err != nil {
			return nil, fmt.Errorf("loading series %s: %w", s.Name, err)
		}
		set, err := trace.Reshape(raw)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		r.log.WithFields(logrus.Fields{
			"series":   s.Name,
			"analysis": s.AnalysisID,
			"agents":   len(set),
		}).Info("Loaded series")
		series[i] = chart.Series{Name: s.Name, Color: s.RGB(), Overviews: set}
	}

	d := &Data{A: series[0], B: series[1]}
	d.Agents = trace.CommonAgents(d.A.Overviews, d.B.Overviews, r.cfg.ExcludeAgents)
	if len(d.Agents) == 0 {
		return nil, ErrNoAgents
	}
	r.log.WithField("agents", d.Agents).Debug("Selected agents")
	return d, nil
}

// Render draws the overview figure and one line chart per agent into
// the output directory, and returns the paths written.
func (r *Runner) Render(d *Data) ([]string, error) {
	path, err := chart.Overview(chart.OverviewOptions{
		Iterations: r.cfg.Iterations,
		Agents:     d.Agents,
		X:          positions(len(d.Agents)),
		BarWidth:   r.cfg.BarWidth,
		CapSize:    r.cfg.CapSize,
		EdgeColor:  r.cfg.Edge(),
		A:          d.A,
		B:          d.B,
		Extension:  r.cfg.ImageExtension,
		OutputDir:  r.cfg.OutputDir,
	})
	if err != nil {
		return nil, fmt.Errorf("overview chart: %w", err)
	}
	r.log.WithField("path", path).Info("Wrote overview chart")
	paths := []string{path}

	for _, agent := range d.Agents {
		path, err := chart.Line(chart.LineOptions{
			Agent:     agent,
			A:         d.A,
			B:         d.B,
			CapSize:   r.cfg.CapSize,
			Extension: r.cfg.ImageExtension,
			OutputDir: r.cfg.OutputDir,
		})
		if err != nil {
			return paths, fmt.Errorf("line chart for %s: %w", agent, err)
		}
		r.log.WithField("path", path).Debug("Wrote line chart")
		paths = append(paths, path)
	}
	r.log.WithField("count", len(paths)-1).Info("Wrote line charts")
	return paths, nil
}

// positions spaces n agents one unit apart from zero.
func positions(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// Results returns the measurements of both series at the configured
// iterations, baseline first.
func (r *Runner) Results(d *Data) ([]*benchfmt.Result, error) {
	var out []*benchfmt.Result
	for i, s := range []chart.Series{d.A, d.B} {
		rs, err := benchfmt.Results(r.benchSeries(i), s.Overviews, d.Agents, r.cfg.Iterations)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		out = append(out, rs...)
	}
	return out, nil
}

// Export writes each series to <dir>/<series>.txt in the Go benchmark
// format and returns the paths written.
func (r *Runner) Export(d *Data, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i, s := range []chart.Series{d.A, d.B} {
		path := filepath.Join(dir, chart.FileName(s.Name, "txt"))
		if err := writeSeries(path, r.benchSeries(i), s.Overviews, d.Agents); err != nil {
			return paths, err
		}
		r.log.WithField("path", path).Info("Exported series")
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSeries(path string, series benchfmt.Series, set trace.OverviewSet, agents []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := benchfmt.WriteOverviews(benchfmt.NewWriter(f), series, set, agents); err != nil {
		f.Close()
		return fmt.Errorf("exporting series %s: %w", series.Name, err)
	}
	return f.Close()
}

func (r *Runner) benchSeries(i int) benchfmt.Series {
	s := r.cfg.Series[i]
	return benchfmt.Series{Name: s.Name, Commit: r.cfg.CommitSHA, AnalysisID: s.AnalysisID}
}

// Snapshot fetches the raw overviews of both series and saves them in
// dir, returning the paths written.
func (r *Runner) Snapshot(ctx context.Context, dir string) ([]string, error) {
	var paths []string
	for _, s := range r.cfg.Series {
		raw, err := r.src.Fetch(ctx, r.cfg.CommitSHA, s.AnalysisID)
		if err != nil {
			return paths, fmt.Errorf("fetching series %s: %w", s.Name, err)
		}
		path, err := fetch.SaveSnapshot(dir, s.AnalysisID, raw)
		if err != nil {
			return paths, err
		}
		r.log.WithFields(logrus.Fields{"series": s.Name, "path": path}).Info("Saved snapshot")
		paths = append(paths, path)
	}
	return paths, nil
}
