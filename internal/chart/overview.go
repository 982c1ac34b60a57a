// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Overview figure dimensions.
const (
	overviewWidth  = 20 * vg.Inch
	overviewHeight = 10 * vg.Inch
)

// OverviewOptions describes an overview figure.
type OverviewOptions struct {
	// Iterations lists the iteration of each subplot, top to bottom.
	Iterations []int

	// Agents are drawn at the matching positions of X in every
	// subplot.
	Agents []string

	// X holds the x position of each agent. If nil, agents are placed
	// at 0, 1, ...
	X []float64

	// BarWidth is the width of one bar in x units.
	BarWidth float64

	// CapSize is the width of error bar caps in points.
	CapSize float64

	EdgeColor color.Color

	// A is drawn left of each agent's position, B to the right.
	A, B Series

	Extension string
	OutputDir string
}

// Overview draws one subplot per iteration, each comparing the average
// and standard deviation of every agent in the two series, and writes
// the figure to overview.<ext> in the output directory. It returns the
// path of the file written.
//
// All values are looked up before anything is drawn: if any agent
// lacks a value at any iteration in either series, Overview fails and
// writes nothing.
func Overview(opts OverviewOptions) (string, error) {
	if len(opts.Iterations) == 0 || len(opts.Agents) == 0 {
		return "", ErrNoData
	}
	xs := opts.X
	if xs == nil {
		xs = make([]float64, len(opts.Agents))
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	if len(xs) != len(opts.Agents) {
		return "", fmt.Errorf("%w: %d x positions for %d agents", ErrPositions, len(xs), len(opts.Agents))
	}

	// Collect everything first so a missing value fails the whole
	// figure.
	type row struct{ a, b []measurement }
	rows := make([]row, len(opts.Iterations))
	for i, iter := range opts.Iterations {
		for _, agent := range opts.Agents {
			ma, err := lookup(opts.A, agent, iter)
			if err != nil {
				return "", err
			}
			mb, err := lookup(opts.B, agent, iter)
			if err != nil {
				return "", err
			}
			rows[i].a = append(rows[i].a, ma)
			rows[i].b = append(rows[i].b, mb)
		}
	}

	edge := opts.EdgeColor
	if edge == nil {
		edge = color.Black
	}
	left := offset(xs, -opts.BarWidth/2)
	right := offset(xs, opts.BarWidth/2)
	labels := StripLabels(opts.Agents)
	xMin, xMax := floats.Min(xs), floats.Max(xs)
	pad := math.Max(opts.BarWidth, 0.5)

	plots := make([][]*plot.Plot, len(opts.Iterations))
	for i, iter := range opts.Iterations {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Time Taken to Execute Agents during Iteration %d", iter)
		p.Y.Label.Text = "Time (ms)"

		barsA := newBars(left, averages(rows[i].a), opts.BarWidth, opts.A.Color, edge)
		barsB := newBars(right, averages(rows[i].b), opts.BarWidth, opts.B.Color, edge)
		p.Add(barsA, barsB,
			errorBars(left, rows[i].a, opts.CapSize, edge, false),
			errorBars(right, rows[i].b, opts.CapSize, edge, false))

		if i == 0 {
			p.Legend.Add(opts.A.Name, barsA)
			p.Legend.Add(opts.B.Name, barsB)
			p.Legend.Top = true
		}

		// Subplots share the x axis. Only the bottom one is labeled.
		p.X.Min, p.X.Max = xMin-pad, xMax+pad
		last := i == len(opts.Iterations)-1
		p.X.Tick.Marker = agentTicks(xs, labels, last)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
		if last {
			p.X.Label.Text = "Agent"
		}
		plots[i] = []*plot.Plot{p}
	}

	path := filepath.Join(opts.OutputDir, FileName("overview", opts.Extension))
	if err := saveTiled(plots, overviewWidth, overviewHeight, path); err != nil {
		return "", err
	}
	return path, nil
}

func offset(xs []float64, d float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x + d
	}
	return out
}

func averages(ms []measurement) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.avg
	}
	return out
}

// agentTicks places a tick at each agent. Labels are left blank
// unless withLabels is set.
func agentTicks(xs []float64, labels []string, withLabels bool) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(xs))
	for i, x := range xs {
		ticks[i].Value = x
		if withLabels {
			ticks[i].Label = labels[i]
		}
	}
	return plot.ConstantTicks(ticks)
}

// saveTiled draws plots as a grid on a single canvas of the given size
// and writes it to path, in the format named by its extension.
func saveTiled(plots [][]*plot.Plot, w, h vg.Length, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for j := range plots {
		for i, p := range plots[j] {
			p.Draw(canvases[j][i])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
