// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"io"
)

// A Writer writes the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	// first is set until the first benchmark line after a
	// configuration block has been written.
	first      bool
	fileConfig map[string][]byte
	order      []string

	units     *Units
	nMetadata int
}

// NewWriter returns a writer that writes Go benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, fileConfig: make(map[string][]byte)}
}

// Write writes benchmark result res to w. If res's file configuration
// differs from the current file configuration in w, it first emits
// the appropriate file configuration lines. For Values that have a
// non-zero OrigUnit, this uses OrigValue and OrigUnit so the output
// keeps the units the measurements were reported in.
//
// Unit metadata is tracked by the identity of res.Units, so callers
// writing a stream should reuse a single Result.
func (w *Writer) Write(res *Result) error {
	if w.configChanged(res) {
		w.writeFileConfig(res)
	}

	if w.units != &res.Units {
		// First call, or the caller switched Result streams.
		w.units = &res.Units
		w.nMetadata = 0
	}
	if len(res.Units.Metadata) > w.nMetadata {
		w.writeUnitMetadata(res.Units.Metadata[w.nMetadata:])
		w.nMetadata = len(res.Units.Metadata)
	}

	fmt.Fprintf(&w.buf, "Benchmark%s %d", res.Name, res.Iters)
	for _, val := range res.Values {
		if val.OrigUnit == "" {
			fmt.Fprintf(&w.buf, " %v %s", val.Value, val.Unit)
		} else {
			fmt.Fprintf(&w.buf, " %v %s", val.OrigValue, val.OrigUnit)
		}
	}
	w.buf.WriteByte('\n')
	w.first = false

	// Writes to the buffer can't fail, so only the flush needs
	// checking.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) configChanged(res *Result) bool {
	if len(w.fileConfig) != len(res.FileConfig) {
		return true
	}
	for _, cfg := range res.FileConfig {
		if val, ok := w.fileConfig[cfg.Key]; !ok || !bytes.Equal(cfg.Value, val) {
			return true
		}
	}
	return false
}

func (w *Writer) writeFileConfig(res *Result) {
	if !w.first {
		// Configuration blocks after results get an extra blank.
		w.buf.WriteByte('\n')
		w.first = true
	}

	// Walk keys we know to find changes and deletions.
	for i := 0; i < len(w.order); i++ {
		key := w.order[i]
		idx, ok := res.FileConfigIndex(key)
		if !ok {
			// An empty value deletes the key.
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.fileConfig, key)
			w.order = append(w.order[:i], w.order[i+1:]...)
			i--
			continue
		}
		cfg := &res.FileConfig[idx]
		if bytes.Equal(w.fileConfig[key], cfg.Value) {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", key, cfg.Value)
		w.fileConfig[key] = append(w.fileConfig[key][:0], cfg.Value...)
	}

	// Find new keys.
	for _, cfg := range res.FileConfig {
		if _, ok := w.fileConfig[cfg.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		w.fileConfig[cfg.Key] = append([]byte(nil), cfg.Value...)
		w.order = append(w.order, cfg.Key)
	}

	w.buf.WriteByte('\n')
}

func (w *Writer) writeUnitMetadata(ms []UnitMetadata) {
	for len(ms) > 0 {
		unit := ms[0].Unit
		fmt.Fprintf(&w.buf, "Unit %s", unit)
		// Collect metadata with the same unit on to one line.
		for len(ms) > 0 && ms[0].Unit == unit {
			fmt.Fprintf(&w.buf, " %s=%s", ms[0].Key, ms[0].Value)
			ms = ms[1:]
		}
		w.buf.WriteByte('\n')
	}
}
