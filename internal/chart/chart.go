// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders comparisons of two benchmark series: an
// overview figure of grouped bars per iteration and a line chart per
// agent. Figures are drawn with gonum.org/v1/plot and written in any of
// the formats it can encode.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/graknlabs/benchplot/trace"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoData is returned when there is nothing to plot.
	ErrNoData = errors.New("no data to plot")

	// ErrPositions is returned when the x positions of a chart do not
	// match its agents.
	ErrPositions = errors.New("x positions do not match agents")
)

// A Series is one benchmark run as drawn in a chart.
type Series struct {
	Name      string
	Color     color.Color
	Overviews trace.OverviewSet
}

// StripLabel returns the display label of an agent: its name without
// one trailing "Agent".
func StripLabel(agent string) string {
	return strings.TrimSuffix(agent, "Agent")
}

// StripLabels applies StripLabel to each of agents.
func StripLabels(agents []string) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = StripLabel(a)
	}
	return out
}

// FileName returns the name of a chart file. Path separators in base
// are replaced so the file always lands in the output directory.
func FileName(base, ext string) string {
	base = strings.NewReplacer("/", "_", `\`, "_").Replace(base)
	return base + "." + strings.ToLower(ext)
}

// measurement is an average and its standard deviation.
type measurement struct {
	avg, sd float64
}

func lookup(s Series, agent string, iteration int) (measurement, error) {
	avg, err := s.Overviews.Lookup(agent, trace.Average, iteration)
	if err != nil {
		return measurement{}, fmt.Errorf("series %s: %w", s.Name, err)
	}
	sd, err := s.Overviews.Lookup(agent, trace.StandardDeviation, iteration)
	if err != nil {
		return measurement{}, fmt.Errorf("series %s: %w", s.Name, err)
	}
	return measurement{avg, sd}, nil
}

// errorBars returns error bars at xs for ms. Only the upper half of
// each bar is drawn if upperOnly is set.
func errorBars(xs []float64, ms []measurement, capSize float64, clr color.Color, upperOnly bool) *plotter.YErrorBars {
	eb := &plotter.YErrorBars{
		XYs:       make(plotter.XYs, len(ms)),
		YErrors:   make(plotter.YErrors, len(ms)),
		LineStyle: plotter.DefaultLineStyle,
		CapWidth:  vg.Points(capSize),
	}
	eb.LineStyle.Color = clr
	for i, m := range ms {
		eb.XYs[i] = plotter.XY{X: xs[i], Y: m.avg}
		eb.YErrors[i].High = m.sd
		if !upperOnly {
			eb.YErrors[i].Low = m.sd
		}
	}
	return eb
}

// save writes p to path, creating its directory if needed.
func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
