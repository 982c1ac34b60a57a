// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/graknlabs/benchplot/benchunit"
	"github.com/graknlabs/benchplot/trace"
)

// Units of the exported measurements, as reported by the analysis.
const (
	AverageUnit = "ms/op"
	StdDevUnit  = "sd-ms/op"
)

// A Series identifies the run an OverviewSet was fetched for. Its
// fields become the file configuration of the exported results.
type Series struct {
	Name       string
	Commit     string
	AnalysisID string
}

// WriteOverviews writes one result per agent and iteration of set to
// w. Agents are written in the given order and iterations in
// ascending order. The iterations of an agent are those of its
// "average" metric; a missing agent, metric or standard deviation is
// an error.
func WriteOverviews(w *Writer, series Series, set trace.OverviewSet, agents []string) error {
	return forEachResult(series, set, agents, nil, func(res *Result) error {
		if err := w.Write(res); err != nil {
			return fmt.Errorf("writing %s: %w", res.Name, err)
		}
		return nil
	})
}

// Results returns the results WriteOverviews would write, limited to
// the given iterations. If iterations is nil, every iteration of each
// agent's "average" metric is included; otherwise each agent must
// have values at all of them.
func Results(series Series, set trace.OverviewSet, agents []string, iterations []int) ([]*Result, error) {
	var out []*Result
	err := forEachResult(series, set, agents, iterations, func(res *Result) error {
		out = append(out, res.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEachResult calls fn with a single reused Result for each agent
// and iteration.
func forEachResult(series Series, set trace.OverviewSet, agents []string, iterations []int, fn func(*Result) error) error {
	res := &Result{
		Iters: 1,
		Units: Units{Metadata: []UnitMetadata{
			{AverageUnit, "better", "lower"},
			{StdDevUnit, "better", "lower"},
		}},
	}
	res.SetFileConfig("commit", series.Commit)
	res.SetFileConfig("analysis", series.AnalysisID)
	res.SetFileConfig("series", series.Name)

	for _, agent := range agents {
		avg, err := set.Metric(agent, trace.Average)
		if err != nil {
			return err
		}
		iters := iterations
		if iters == nil {
			iters = avg.Iterations()
		}
		base := benchmarkName(agent)
		for _, it := range iters {
			mean, err := set.Lookup(agent, trace.Average, it)
			if err != nil {
				return err
			}
			sd, err := set.Lookup(agent, trace.StandardDeviation, it)
			if err != nil {
				return err
			}
			res.Name = append(res.Name[:0], base...)
			res.Name = append(res.Name, "/iteration="...)
			res.Name = strconv.AppendInt(res.Name, int64(it), 10)
			res.Values = append(res.Values[:0], value(mean, AverageUnit), value(sd, StdDevUnit))
			if err := fn(res); err != nil {
				return err
			}
		}
	}
	return nil
}

func value(v float64, unit string) Value {
	tidied, factor := benchunit.Tidy(unit)
	return Value{Value: v * factor, Unit: tidied, OrigValue: v, OrigUnit: unit}
}

// benchmarkName turns an agent name into a benchmark base name, which
// may not contain spaces or slashes.
func benchmarkName(agent string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '/':
			return '_'
		}
		return r
	}, agent)
}
