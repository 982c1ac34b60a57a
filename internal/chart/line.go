// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"path/filepath"
	"strconv"

	"github.com/graknlabs/benchplot/trace"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	lineWidth  = 6.4 * vg.Inch
	lineHeight = 4.8 * vg.Inch
)

// LineOptions describes a per-agent line chart.
type LineOptions struct {
	Agent string

	// A determines the iterations on the x axis: those recorded in
	// its average metric for Agent. B must have values at each of
	// them.
	A, B Series

	// CapSize is the width of error bar caps in points.
	CapSize float64

	Extension string
	OutputDir string
}

// Line plots the average of one agent across iterations for both
// series, with the standard deviation drawn above each point, and
// writes the chart to agent_<name>.<ext> in the output directory. It
// returns the path of the file written.
func Line(opts LineOptions) (string, error) {
	avg, err := opts.A.Overviews.Metric(opts.Agent, trace.Average)
	if err != nil {
		return "", err
	}
	iters := avg.Iterations()
	if len(iters) == 0 {
		return "", ErrNoData
	}
	xs := make([]float64, len(iters))
	for i, it := range iters {
		xs[i] = float64(it)
	}

	var data [2][]measurement
	for i, s := range []Series{opts.A, opts.B} {
		for _, it := range iters {
			m, err := lookup(s, opts.Agent, it)
			if err != nil {
				return "", err
			}
			data[i] = append(data[i], m)
		}
	}

	p := plot.New()
	p.Title.Text = "Time Taken to Execute Agent per Iteration"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Time (ms)"
	p.Legend.Top = true
	p.Legend.Left = true

	ticks := make([]plot.Tick, len(iters))
	for i, it := range iters {
		ticks[i] = plot.Tick{Value: float64(it), Label: strconv.Itoa(it)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	for i, s := range []Series{opts.A, opts.B} {
		pts := make(plotter.XYs, len(xs))
		for j, m := range data[i] {
			pts[j] = plotter.XY{X: xs[j], Y: m.avg}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		l.Color = s.Color
		l.Width = vg.Points(1.5)
		p.Add(l, errorBars(xs, data[i], opts.CapSize, s.Color, true))
		p.Legend.Add(s.Name, l)
	}

	path := filepath.Join(opts.OutputDir, FileName("agent_"+opts.Agent, opts.Extension))
	if err := save(p, lineWidth, lineHeight, path); err != nil {
		return "", err
	}
	return path, nil
}
