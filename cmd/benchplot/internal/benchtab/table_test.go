// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/graknlabs/benchplot/benchfmt"
	"github.com/graknlabs/benchplot/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overviews(avg, sd trace.Metric) trace.OverviewSet {
	return trace.OverviewSet{"WriteAgent": {Metrics: map[string]trace.Metric{
		trace.Average:           avg,
		trace.StandardDeviation: sd,
	}}}
}

func addSeries(t *testing.T, b *Builder, name string, set trace.OverviewSet, iterations []int) {
	t.Helper()
	rs, err := benchfmt.Results(benchfmt.Series{Name: name}, set, []string{"WriteAgent"}, iterations)
	require.NoError(t, err)
	for _, r := range rs {
		require.NoError(t, b.Add(r))
	}
}

func testTable(t *testing.T, newIters []int) *Table {
	t.Helper()
	b := NewBuilder()
	addSeries(t, b, "Old",
		overviews(trace.Metric{{Iteration: 4, Value: 1}, {Iteration: 8, Value: 4}}, trace.Metric{{Iteration: 4, Value: 0.5}, {Iteration: 8, Value: 1}}),
		[]int{4, 8})
	addSeries(t, b, "Grakn",
		overviews(trace.Metric{{Iteration: 4, Value: 2}, {Iteration: 8, Value: 8}}, trace.Metric{{Iteration: 4, Value: 0.5}, {Iteration: 8, Value: 1}}),
		newIters)
	return b.ToTable()
}

func TestToTable(t *testing.T) {
	t.Parallel()

	table := testTable(t, []int{4, 8})
	assert.Equal(t, "sec/op", table.Unit)
	assert.Equal(t, []string{"Old", "Grakn"}, table.Cols)
	assert.Equal(t, []RowKey{{"WriteAgent", 4}, {"WriteAgent", 8}}, table.Rows)

	cell := table.Cells[TableKey{RowKey{"WriteAgent", 8}, "Grakn"}]
	require.NotNil(t, cell)
	assert.InDelta(t, 0.008, cell.Center, 1e-12)
	require.NotNil(t, cell.Baseline)
	assert.InDelta(t, 0.004, cell.Baseline.Center, 1e-12)
	assert.Equal(t, "+100.00%", cell.FormatDelta())

	// Within one standard deviation of each other.
	cell = table.Cells[TableKey{RowKey{"WriteAgent", 4}, "Grakn"}]
	assert.Equal(t, "~", cell.FormatDelta())
	assert.Equal(t, "25%", cell.PctRangeString())

	base := table.Summary["Old"]
	require.True(t, base.HasSummary)
	assert.InDelta(t, 0.002, base.Summary, 1e-12)
	assert.False(t, base.HasRatio)
	assert.Empty(t, base.Warnings)

	sum := table.Summary["Grakn"]
	require.True(t, sum.HasRatio)
	assert.InDelta(t, 2, sum.Ratio, 1e-9)
	assert.Empty(t, sum.Warnings)
}

func TestToTableMismatchedRows(t *testing.T) {
	t.Parallel()

	table := testTable(t, []int{4})
	sum := table.Summary["Grakn"]
	require.Len(t, sum.Warnings, 1)
	assert.Contains(t, sum.Warnings[0].Error(), "benchmark set differs from baseline")

	var out strings.Builder
	require.NoError(t, table.ToText(&out, false))
	assert.Contains(t, out.String(), "¹ benchmark set differs from baseline")
}

func TestToText(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	require.NoError(t, testTable(t, []int{4, 8}).ToText(&out, false))
	got := out.String()
	for _, want := range []string{"Old sec/op", "Grakn sec/op", "vs Old", "WriteAgent", "1.00m", "8.00m", "+100.00%", "~", "geomean", "2.00m"} {
		assert.Contains(t, got, want)
	}
}

func TestToCSV(t *testing.T) {
	t.Parallel()

	var out, warnings strings.Builder
	require.NoError(t, testTable(t, []int{4, 8}).ToCSV(&out, &warnings))
	assert.Empty(t, warnings.String())

	r := csv.NewReader(strings.NewReader(out.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"agent", "iteration", "Old sec/op", "stddev", "Grakn sec/op", "stddev", "vs base"}, records[0])
	assert.Equal(t, []string{"WriteAgent", "4", "0.001", "0.0005", "0.002", "0.0005", "~"}, records[1])
	assert.Equal(t, []string{"WriteAgent", "8", "0.004", "0.001", "0.008", "0.001", "+100.00%"}, records[2])
	assert.Equal(t, "geomean", records[3][0])
	assert.Equal(t, "+100.00%", records[3][6])
}

func TestAddErrors(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	r := &benchfmt.Result{Name: benchfmt.Name("WriteAgent/iteration=4"), Iters: 1}
	assert.Error(t, b.Add(r), "no series")

	r.SetFileConfig("series", "Old")
	assert.Error(t, b.Add(r), "no values")

	r.Name = benchfmt.Name("WriteAgent")
	assert.Error(t, b.Add(r), "no iteration")
}
