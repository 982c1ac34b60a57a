// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace models the trace overviews produced by a performance
// analysis of one benchmark run and reshapes them into an ordered form
// suitable for charting.
//
// An analysis reports, for each agent, a set of named metrics. The
// "average" and "standard-deviation" metrics map an iteration number
// to a measurement in milliseconds. The API delivers iteration numbers
// as JSON object keys, so they arrive as strings in no particular
// order. Reshape converts them into Metrics: explicit sequences of
// Points sorted by iteration.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Names of the metrics that Reshape converts into Metrics.
const (
	Average           = "average"
	StandardDeviation = "standard-deviation"
)

// Lookup errors. Each is wrapped with the offending key.
var (
	ErrAgentNotFound     = errors.New("agent not found")
	ErrMetricNotFound    = errors.New("metric not found")
	ErrIterationNotFound = errors.New("iteration not found")
)

// A Point is a single measurement taken at an iteration.
type Point struct {
	Iteration int
	Value     float64
}

// A Metric is a sequence of Points in strictly ascending iteration
// order.
type Metric []Point

// Get returns the value recorded for iteration.
func (m Metric) Get(iteration int) (float64, bool) {
	i := sort.Search(len(m), func(i int) bool { return m[i].Iteration >= iteration })
	if i < len(m) && m[i].Iteration == iteration {
		return m[i].Value, true
	}
	return 0, false
}

// Iterations returns the iteration numbers of m in order.
func (m Metric) Iterations() []int {
	out := make([]int, len(m))
	for i, p := range m {
		out[i] = p.Iteration
	}
	return out
}

// Values returns the values of m in iteration order.
func (m Metric) Values() []float64 {
	out := make([]float64, len(m))
	for i, p := range m {
		out[i] = p.Value
	}
	return out
}

// An Overview is the set of metrics recorded for one agent.
type Overview struct {
	// Metrics holds the reshaped iteration-keyed metrics.
	Metrics map[string]Metric

	// Other holds every other metric exactly as it was received.
	Other map[string]json.RawMessage
}

// An OverviewSet maps agent names to their Overview. It holds the
// full result set of one benchmark run.
type OverviewSet map[string]*Overview

// Agents returns the agent names in s, sorted.
func (s OverviewSet) Agents() []string {
	agents := make([]string, 0, len(s))
	for name := range s {
		agents = append(agents, name)
	}
	sort.Strings(agents)
	return agents
}

// Metric returns the named metric of agent.
func (s OverviewSet) Metric(agent, metric string) (Metric, error) {
	o, ok := s[agent]
	if !ok || o == nil {
		return nil, fmt.Errorf("%w: %q", ErrAgentNotFound, agent)
	}
	m, ok := o.Metrics[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q for agent %q", ErrMetricNotFound, metric, agent)
	}
	return m, nil
}

// Lookup returns the value of metric for agent at iteration.
func (s OverviewSet) Lookup(agent, metric string, iteration int) (float64, error) {
	m, err := s.Metric(agent, metric)
	if err != nil {
		return 0, err
	}
	v, ok := m.Get(iteration)
	if !ok {
		return 0, fmt.Errorf("%w: %d in %q of agent %q", ErrIterationNotFound, iteration, metric, agent)
	}
	return v, nil
}

// Raw converts s back into the form delivered by the API, with
// iteration numbers as decimal string keys.
func (s OverviewSet) Raw() RawOverviewSet {
	raw := make(RawOverviewSet, len(s))
	for agent, o := range s {
		ro := make(RawOverview, len(o.Metrics)+len(o.Other))
		for name, msg := range o.Other {
			ro[name] = append(json.RawMessage(nil), msg...)
		}
		for name, m := range o.Metrics {
			ro[name] = m.marshalRaw()
		}
		raw[agent] = ro
	}
	return raw
}

// CommonAgents returns the sorted names of agents present in both a
// and b, leaving out any named in exclude.
func CommonAgents(a, b OverviewSet, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	var agents []string
	for _, name := range a.Agents() {
		if _, ok := b[name]; ok && !skip[name] {
			agents = append(agents, name)
		}
	}
	return agents
}
