// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars draws one bar per value, centered on the corresponding x
// position and rising from zero. Unlike plotter.BarChart, the width is
// in data units, so bars of several series can be placed side by side
// at arbitrary offsets.
type bars struct {
	xs, heights []float64
	width       float64

	color color.Color
	draw.LineStyle
}

func newBars(xs, heights []float64, width float64, fill color.Color, edge color.Color) *bars {
	return &bars{
		xs:      xs,
		heights: heights,
		width:   width,
		color:   fill,
		LineStyle: draw.LineStyle{
			Color: edge,
			Width: vg.Points(1),
		},
	}
}

// Plot implements the plot.Plotter interface.
func (b *bars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for i, x := range b.xs {
		x0, x1 := trX(x-b.width/2), trX(x+b.width/2)
		y0, y1 := trY(0), trY(b.heights[i])
		pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
		b.fill(&c, pts)
	}
}

// DataRange implements the plot.DataRanger interface.
func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for i, x := range b.xs {
		xmin = math.Min(xmin, x-b.width/2)
		xmax = math.Max(xmax, x+b.width/2)
		ymin = math.Min(ymin, b.heights[i])
		ymax = math.Max(ymax, b.heights[i])
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements the plot.Thumbnailer interface.
func (b *bars) Thumbnail(c *draw.Canvas) {
	b.fill(c, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	})
}

// fill paints the rectangle pts and outlines it with the edge style.
func (b *bars) fill(c *draw.Canvas, pts []vg.Point) {
	c.FillPolygon(b.color, c.ClipPolygonXY(pts))
	outline := append(pts[:len(pts):len(pts)], pts[0])
	c.StrokeLines(b.LineStyle, c.ClipLinesXY(outline)...)
}
