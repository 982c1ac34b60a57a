// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// A RawOverview is one agent's metrics as delivered by the API, keyed
// by metric name.
type RawOverview map[string]json.RawMessage

// A RawOverviewSet maps agent names to their RawOverview.
type RawOverviewSet map[string]RawOverview

// A KeyError reports an iteration key that is not a non-negative
// decimal integer.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid iteration key %q", e.Key)
}

var errNotObject = errors.New("metric is not a JSON object")

// Reshape converts raw into an OverviewSet. The "average" and
// "standard-deviation" metrics of every agent become Metrics sorted
// by iteration; all other metrics are carried over unchanged.
//
// If two keys name the same iteration (for example "1" and "01"), the
// one that appears later in the source object wins. A leading "+" is
// accepted, so "+1" also names iteration 1.
//
// Reshape does not modify raw. Reshaping the result of
// OverviewSet.Raw yields an equal OverviewSet.
func Reshape(raw RawOverviewSet) (OverviewSet, error) {
	set := make(OverviewSet, len(raw))
	for agent, ro := range raw {
		o := &Overview{
			Metrics: make(map[string]Metric),
			Other:   make(map[string]json.RawMessage),
		}
		for name, msg := range ro {
			if name != Average && name != StandardDeviation {
				o.Other[name] = append(json.RawMessage(nil), msg...)
				continue
			}
			m, err := reshapeMetric(msg)
			if err != nil {
				return nil, fmt.Errorf("agent %q, metric %q: %w", agent, name, err)
			}
			o.Metrics[name] = m
		}
		set[agent] = o
	}
	return set, nil
}

func reshapeMetric(msg json.RawMessage) (Metric, error) {
	entries, err := decodeEntries(msg)
	if err != nil {
		return nil, err
	}

	byIter := make(map[int]float64, len(entries))
	for _, e := range entries {
		iter, err := strconv.Atoi(e.key)
		if err != nil || iter < 0 {
			return nil, &KeyError{e.key}
		}
		byIter[iter] = e.value
	}

	m := make(Metric, 0, len(byIter))
	for iter, v := range byIter {
		m = append(m, Point{iter, v})
	}
	sort.Slice(m, func(i, j int) bool { return m[i].Iteration < m[j].Iteration })
	return m, nil
}

type entry struct {
	key   string
	value float64
}

// decodeEntries decodes a JSON object of numbers, keeping the order
// in which its keys appear.
func decodeEntries(msg json.RawMessage) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string) // Object keys are always strings.
		var v *float64
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("iteration %q: %w", key, err)
		}
		if v == nil {
			return nil, fmt.Errorf("iteration %q: value is null", key)
		}
		entries = append(entries, entry{key, *v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// marshalRaw encodes m as a JSON object keyed by decimal iteration
// numbers, in iteration order.
func (m Metric) marshalRaw() json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%s", strconv.Itoa(p.Iteration), strconv.FormatFloat(p.Value, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
