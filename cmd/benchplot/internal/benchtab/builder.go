// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab presents exported trace overviews as comparison
// tables.
package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/graknlabs/benchplot/benchfmt"
	"github.com/graknlabs/benchplot/benchunit"
)

// A Builder collects benchmark results into a Table. Results are
// mapped to rows by agent and iteration and to columns by the
// "series" file configuration key. The first series added is the
// baseline.
type Builder struct {
	avgUnit, sdUnit string

	rows   []RowKey
	rowSet map[RowKey]struct{}
	cols   []string
	colSet map[string]struct{}

	// cells maps from (row, col) to each cell.
	cells map[TableKey]*TableCell
}

// NewBuilder creates a new Builder for results written by
// benchfmt.Results.
func NewBuilder() *Builder {
	avgUnit, _ := benchunit.Tidy(benchfmt.AverageUnit)
	sdUnit, _ := benchunit.Tidy(benchfmt.StdDevUnit)
	return &Builder{
		avgUnit: avgUnit,
		sdUnit:  sdUnit,
		rowSet:  make(map[RowKey]struct{}),
		colSet:  make(map[string]struct{}),
		cells:   make(map[TableKey]*TableCell),
	}
}

// Add adds result to the Builder. A result for a cell that already
// has one replaces it.
func (b *Builder) Add(result *benchfmt.Result) error {
	series := result.GetFileConfig("series")
	if series == "" {
		return fmt.Errorf("%s: no series configured", result.Name)
	}
	iter, ok := result.Name.Key("iteration")
	if !ok {
		return fmt.Errorf("%s: no iteration in name", result.Name)
	}
	n, err := strconv.Atoi(iter)
	if err != nil {
		return fmt.Errorf("%s: bad iteration: %w", result.Name, err)
	}
	avg, ok := result.Value(b.avgUnit)
	if !ok {
		return fmt.Errorf("%s: no %s value", result.Name, b.avgUnit)
	}
	sd, ok := result.Value(b.sdUnit)
	if !ok {
		return fmt.Errorf("%s: no %s value", result.Name, b.sdUnit)
	}

	row := RowKey{Agent: string(result.Name.Base()), Iteration: n}
	if _, ok := b.rowSet[row]; !ok {
		b.rowSet[row] = struct{}{}
		b.rows = append(b.rows, row)
	}
	if _, ok := b.colSet[series]; !ok {
		b.colSet[series] = struct{}{}
		b.cols = append(b.cols, series)
	}
	b.cells[TableKey{row, series}] = &TableCell{Center: avg, StdDev: sd}
	return nil
}

// ToTable finalizes a Builder into a comparison table.
func (b *Builder) ToTable() *Table {
	table := &Table{
		Unit:         b.avgUnit,
		Rows:         b.rows,
		Cols:         b.cols,
		Cells:        b.cells,
		SummaryLabel: "geomean",
		Summary:      make(map[string]*TableSummary),
	}
	if len(b.cols) == 0 {
		return table
	}

	// Link each cell to the baseline of its row.
	baseCol := b.cols[0]
	nBase := 0
	for _, row := range b.rows {
		base, ok := b.cells[TableKey{row, baseCol}]
		if !ok {
			continue
		}
		nBase++
		for _, col := range b.cols[1:] {
			if cell, ok := b.cells[TableKey{row, col}]; ok {
				cell.Baseline = base
			}
		}
	}

	for i, col := range b.cols {
		var s TableSummary
		summarizeCol(table, col, &s, nBase, i == 0)
		table.Summary[col] = &s
	}
	return table
}

func summarizeCol(table *Table, col string, s *TableSummary, nBase int, isBase bool) {
	// Collect cells.
	//
	// This computes the geomean of the ratios rather than the
	// ratio of the geomeans. These are identical *if* the rows
	// are the same. But if the rows differ, the geomean of the
	// column remains meaningful while a ratio of geomeans over
	// different rows would not be.
	var centers, ratios []float64
	badRatio := false
	for _, row := range table.Rows {
		cell, ok := table.Cells[TableKey{row, col}]
		if !ok {
			continue
		}
		centers = append(centers, cell.Center)
		if cell.Baseline != nil {
			var ratio float64
			a, b := cell.Center, cell.Baseline.Center
			if a == b {
				// Treat 0/0 as 1.
				ratio = 1
			} else if b == 0 {
				badRatio = true
				// Keep nBase check working.
				ratios = append(ratios, 0)
				continue
			} else {
				ratio = a / b
			}
			ratios = append(ratios, ratio)
		}
	}

	// If the number of cells in this column that had a baseline
	// is the same as the total number of baselines, then we know
	// the row sets match. Otherwise, they don't and these numbers
	// are probably misleading.
	if !isBase && nBase != len(ratios) {
		s.Warnings = append(s.Warnings, fmt.Errorf("benchmark set differs from baseline; geomeans may not be comparable"))
	}

	gm := stats.GeoMean(centers)
	if math.IsNaN(gm) || len(centers) == 0 {
		s.Warnings = append(s.Warnings, fmt.Errorf("averages must be >0 to compute geomean"))
	} else {
		s.HasSummary = true
		s.Summary = gm
	}

	if !isBase && !badRatio {
		gm := stats.GeoMean(ratios)
		if math.IsNaN(gm) || len(ratios) == 0 {
			s.Warnings = append(s.Warnings, fmt.Errorf("ratios must be >0 to compute geomean"))
		} else {
			s.HasRatio = true
			s.Ratio = gm
		}
	}
}

// ToCSV writes t to w in CSV (comma-separated values) format.
//
// Warnings are written to a separate stream so as not to interrupt
// the regular format of the CSV table.
func (t *Table) ToCSV(w, warnings io.Writer) error {
	o := csv.NewWriter(w)
	t.writeCSV(o, 1, warnings)
	o.Flush()
	return o.Error()
}
