// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/graknlabs/benchplot/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overviews(agents ...string) trace.OverviewSet {
	set := make(trace.OverviewSet)
	for i, a := range agents {
		base := float64(i + 1)
		set[a] = &trace.Overview{
			Metrics: map[string]trace.Metric{
				trace.Average:           {{Iteration: 4, Value: base}, {Iteration: 8, Value: 2 * base}, {Iteration: 12, Value: 3 * base}},
				trace.StandardDeviation: {{Iteration: 4, Value: base / 10}, {Iteration: 8, Value: base / 5}, {Iteration: 12, Value: base / 4}},
			},
		}
	}
	return set
}

func testSeries() (a, b Series) {
	a = Series{Name: "Old", Color: color.RGBA{24, 127, 183, 255}, Overviews: overviews("WriteAgent", "ReadAgent", "Login")}
	b = Series{Name: "Grakn", Color: color.RGBA{113, 87, 201, 255}, Overviews: overviews("Login", "ReadAgent", "WriteAgent")}
	return a, b
}

func TestStripLabels(t *testing.T) {
	t.Parallel()

	got := StripLabels([]string{"WriteAgent", "Login", "AgentAgent", "Agent", "PersonAgents"})
	assert.Equal(t, []string{"Write", "Login", "Agent", "", "PersonAgents"}, got)
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "overview.png", FileName("overview", "PNG"))
	assert.Equal(t, "agent_a_b.svg", FileName("agent_a/b", "svg"))
}

func TestOverview(t *testing.T) {
	t.Parallel()

	a, b := testSeries()
	dir := t.TempDir()
	path, err := Overview(OverviewOptions{
		Iterations: []int{4, 8, 12},
		Agents:     []string{"Login", "ReadAgent", "WriteAgent"},
		BarWidth:   0.2,
		CapSize:    3,
		EdgeColor:  color.Black,
		A:          a,
		B:          b,
		Extension:  "png",
		OutputDir:  dir,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "overview.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "not a PNG file")
}

func TestOverviewPositions(t *testing.T) {
	t.Parallel()

	a, b := testSeries()
	dir := t.TempDir()
	opts := OverviewOptions{
		Iterations: []int{4},
		Agents:     []string{"Login", "ReadAgent", "WriteAgent"},
		X:          []float64{0, 2.5, 7},
		BarWidth:   0.4,
		CapSize:    3,
		A:          a,
		B:          b,
		Extension:  "svg",
		OutputDir:  dir,
	}
	path, err := Overview(opts)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	opts.X = []float64{0, 1}
	opts.OutputDir = filepath.Join(dir, "mismatch")
	_, err = Overview(opts)
	require.ErrorIs(t, err, ErrPositions)
	_, err = os.Stat(opts.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestOverviewMissingData(t *testing.T) {
	t.Parallel()

	a, b := testSeries()
	delete(b.Overviews, "ReadAgent")
	dir := t.TempDir()

	_, err := Overview(OverviewOptions{
		Iterations: []int{4},
		Agents:     []string{"Login", "ReadAgent"},
		BarWidth:   0.2,
		A:          a,
		B:          b,
		Extension:  "png",
		OutputDir:  dir,
	})
	require.ErrorIs(t, err, trace.ErrAgentNotFound)

	_, err = Overview(OverviewOptions{
		Iterations: []int{4, 16},
		Agents:     []string{"Login"},
		BarWidth:   0.2,
		A:          a,
		B:          b,
		Extension:  "png",
		OutputDir:  dir,
	})
	require.ErrorIs(t, err, trace.ErrIterationNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLine(t *testing.T) {
	t.Parallel()

	a, b := testSeries()
	dir := t.TempDir()
	path, err := Line(LineOptions{
		Agent:     "WriteAgent",
		A:         a,
		B:         b,
		CapSize:   3,
		Extension: "svg",
		OutputDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "agent_WriteAgent.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestLineMissingData(t *testing.T) {
	t.Parallel()

	a, b := testSeries()
	// B lacks iteration 12, which A has.
	o := b.Overviews["Login"]
	o.Metrics[trace.Average] = o.Metrics[trace.Average][:2]
	dir := t.TempDir()

	_, err := Line(LineOptions{Agent: "Login", A: a, B: b, Extension: "png", OutputDir: dir})
	require.ErrorIs(t, err, trace.ErrIterationNotFound)

	_, err = Line(LineOptions{Agent: "Nobody", A: a, B: b, Extension: "png", OutputDir: dir})
	require.ErrorIs(t, err, trace.ErrAgentNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
