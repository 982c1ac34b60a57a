// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/graknlabs/benchplot/benchunit"
	"github.com/olekukonko/tablewriter"
)

// A Table compares the measurements of two or more series in a 2D
// grid. Each row is one agent at one iteration and each column one
// series. Comparisons are done within each row between the cell in
// the first column and the cells in any remaining columns.
type Table struct {
	// Unit is the unit of all averages in this Table.
	Unit string

	// Rows and Cols give the sequence of rows and series in this
	// table, in the order they were first added.
	Rows []RowKey
	Cols []string

	// Cells is the cells in the body of this table. Not all
	// (row, col) pairs may be present.
	Cells map[TableKey]*TableCell

	// Summary is the final row of this table, which gives summary
	// information across all rows. It is keyed by Cols.
	Summary map[string]*TableSummary

	// SummaryLabel is the label for the summary row.
	SummaryLabel string
}

// A RowKey identifies a row of a Table.
type RowKey struct {
	Agent     string
	Iteration int
}

func (k RowKey) String() string {
	return k.Agent + "/iteration=" + strconv.Itoa(k.Iteration)
}

// TableKey is a map key used to index a single cell in a Table.
type TableKey struct {
	Row RowKey
	Col string
}

// TableCell is a single cell in a Table.
type TableCell struct {
	// Center is the average and StdDev its standard deviation,
	// both in the Table's unit.
	Center, StdDev float64

	// Baseline is the baseline cell used for comparisons with
	// this cell, or nil if there is no comparison. This is the
	// cell in the first column of this cell's row, if any.
	Baseline *TableCell
}

// PctRangeString returns the standard deviation of c as a percentage
// of its average.
func (c *TableCell) PctRangeString() string {
	if c.Center == 0 {
		if c.StdDev == 0 {
			return "0%"
		}
		return "∞"
	}
	return fmt.Sprintf("%.0f%%", 100*c.StdDev/math.Abs(c.Center))
}

// Overlaps reports whether the ranges of one standard deviation
// around c and its baseline intersect.
func (c *TableCell) Overlaps() bool {
	b := c.Baseline
	return math.Abs(c.Center-b.Center) <= c.StdDev+b.StdDev
}

// FormatDelta returns the change from the baseline as a percentage.
// It returns "~" if the change is within the standard deviations of
// both cells and "?" if the baseline is zero.
func (c *TableCell) FormatDelta() string {
	if c.Overlaps() {
		return "~"
	}
	if c.Baseline.Center == 0 {
		return "?"
	}
	return fmt.Sprintf("%+.2f%%", (c.Center/c.Baseline.Center-1)*100)
}

// TableSummary summarizes a column of a Table.
type TableSummary struct {
	// HasSummary indicates that Summary is valid.
	HasSummary bool
	// Summary is the geometric mean of all averages in this
	// column.
	Summary float64

	// HasRatio indicates that Ratio is valid.
	HasRatio bool
	// Ratio is the geometric mean of the ratios of this column's
	// averages to the baseline's.
	Ratio float64

	// Warnings is a list of warnings for this summary cell.
	Warnings []error
}

// RowValues returns the averages of every cell in row.
//
// This is useful when computing a common scale for a row using
// benchunit.CommonScale.
func (t *Table) RowValues(row RowKey) []float64 {
	var out []float64
	for _, col := range t.Cols {
		cell, ok := t.Cells[TableKey{row, col}]
		if ok {
			out = append(out, cell.Center)
		}
	}
	return out
}

// ToText renders t as a bordered text table. If useColor is set,
// deltas are colored: green for faster than the baseline and red for
// slower.
func (t *Table) ToText(w io.Writer, useColor bool) error {
	var warningList []string
	warningSet := make(map[string]int)
	warn := func(msgs []error) string {
		var footnotes []string
		for _, msg := range msgs {
			s := msg.Error()
			i, ok := warningSet[s]
			if !ok {
				i = len(warningList)
				warningSet[s] = i
				warningList = append(warningList, s)
			}
			footnotes = append(footnotes, superscript(i+1))
		}
		return strings.Join(footnotes, " ")
	}

	header := []string{"agent", "iteration"}
	for i, col := range t.Cols {
		header = append(header, col+" "+t.Unit, "±")
		if i > 0 {
			header = append(header, "vs "+t.Cols[0])
		}
	}

	var rows [][]string
	unitClass := benchunit.ClassOf(t.Unit)
	for _, row := range t.Rows {
		line := []string{row.Agent, strconv.Itoa(row.Iteration)}

		// Get a common scalar across this row.
		scalar := benchunit.CommonScale(t.RowValues(row), unitClass)

		for i, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row, col}]
			if !ok {
				line = append(line, "", "")
				if i > 0 {
					line = append(line, "")
				}
				continue
			}
			line = append(line, scalar.Format(cell.Center), cell.PctRangeString())
			if i > 0 {
				d := "?"
				if cell.Baseline != nil {
					d = colorDelta(cell, useColor)
				}
				line = append(line, d)
			}
		}
		rows = append(rows, line)
	}

	// Emit summary row.
	if len(t.Rows) > 1 {
		line := []string{t.SummaryLabel, ""}
		for i, col := range t.Cols {
			tsum, ok := t.Summary[col]
			if !ok {
				tsum = &TableSummary{}
			}
			gm := ""
			if tsum.HasSummary {
				gm = benchunit.Scale(tsum.Summary, unitClass)
			}
			line = append(line, gm, warn(tsum.Warnings))
			if i > 0 {
				ratio := "?"
				if tsum.HasRatio {
					ratio = fmt.Sprintf("%+.2f%%", (tsum.Ratio-1)*100)
				}
				line = append(line, ratio)
			}
		}
		rows = append(rows, line)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetBorder(true)
	table.AppendBulk(rows)
	table.Render()

	// Emit warnings.
	for i, msg := range warningList {
		if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), msg); err != nil {
			return err
		}
	}
	return nil
}

func colorDelta(cell *TableCell, useColor bool) string {
	d := cell.FormatDelta()
	if !useColor || d == "~" || d == "?" {
		return d
	}
	c := color.New(color.FgRed)
	if cell.Center < cell.Baseline.Center {
		c = color.New(color.FgGreen)
	}
	c.EnableColor()
	return c.Sprint(d)
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(i int) string {
	if i == 0 {
		return string(superDigits[0])
	}

	var buf [20]rune
	pos := len(buf)
	for i > 0 && pos > 0 {
		pos--
		buf[pos] = superDigits[i%10]
		i /= 10
	}
	return string(buf[pos:])
}

// writeCSV renders t to o. Warnings are written in text format to the
// "warnings" Writer, and prefixed with spreadsheet-style cell
// references. These references assume the table begins on row
// "startRow".
func (t *Table) writeCSV(o *csv.Writer, startRow int, warnings io.Writer) (rowCount int) {
	const labelCols = 2  // <agent> <iteration>
	const centerCols = 2 // <center> <stddev>
	const deltaCols = 1  // <P%>
	startCol := func(exp int) int {
		if exp == 0 {
			// Baseline, so no delta.
			return labelCols
		}
		return labelCols + centerCols + (exp-1)*(centerCols+deltaCols)
	}
	var row []string
	clearTo := func(col int) {
		for len(row) < col {
			row = append(row, "")
		}
	}
	emit := func() {
		o.Write(row)
		row = row[:0]
		rowCount++
	}
	warn := func(msgs []error) {
		// Construct a spreadsheet-style cell label.
		colName := make([]byte, 10)
		colNamePos := len(colName)
		for x := len(row); x > 0; {
			colNamePos--
			colName[colNamePos] = 'A' + byte(x%26)
			x /= 26
		}
		if colNamePos == len(colName) {
			colNamePos--
			colName[colNamePos] = 'A'
		}
		colName = colName[colNamePos:]
		for _, msg := range msgs {
			fmt.Fprintf(warnings, "%s%d: %s\n", colName, startRow+rowCount, msg)
		}
	}

	// Emit column headers.
	row = append(row, "agent", "iteration")
	for exp, col := range t.Cols {
		clearTo(startCol(exp))
		row = append(row, col+" "+t.Unit, "stddev")
		if exp > 0 {
			row = append(row, "vs base")
		}
	}
	emit()

	// Emit table.
	for _, rowKey := range t.Rows {
		row = append(row, rowKey.Agent, strconv.Itoa(rowKey.Iteration))
		for exp, col := range t.Cols {
			cell, ok := t.Cells[TableKey{rowKey, col}]
			if !ok {
				continue
			}
			clearTo(startCol(exp))
			row = append(row, fmt.Sprint(cell.Center), fmt.Sprint(cell.StdDev))
			if exp > 0 && cell.Baseline != nil {
				row = append(row, cell.FormatDelta())
			}
		}
		emit()
	}

	// Emit summary row.
	row = append(row, t.SummaryLabel)
	for exp, col := range t.Cols {
		tsum, ok := t.Summary[col]
		if !ok {
			continue
		}
		clearTo(startCol(exp))
		warn(tsum.Warnings)
		if tsum.HasSummary {
			row = append(row, fmt.Sprint(tsum.Summary))
		}
		if exp > 0 {
			clearTo(startCol(exp) + centerCols)
			if tsum.HasRatio {
				row = append(row, fmt.Sprintf("%+.2f%%", (tsum.Ratio-1)*100))
			} else {
				row = append(row, "?")
			}
		}
	}
	emit()

	return
}
