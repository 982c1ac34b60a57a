// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt writes trace overview measurements in the Go
// benchmark format.
//
// This implements the format documented at
// https://golang.org/design/14313-benchmark-format, so exported
// series can be compared and filtered with the standard Go benchmark
// tooling.
//
// Each agent and iteration of a series becomes one Result whose name
// is the agent followed by an "iteration" sub-benchmark key, and
// whose values are the average and standard deviation reported for
// that iteration.
package benchfmt

import "bytes"

// A Result is a single benchmark result and all of its measurements.
type Result struct {
	// FileConfig is the set of file-level key/value pairs in
	// effect for this result.
	//
	// Result internally maintains an index of the keys of this slice,
	// so callers must use SetFileConfig to add or delete keys,
	// but may modify values in place. There is one exception to this:
	// for convenience, new Results can be initialized directly,
	// e.g., using a struct literal.
	//
	// SetFileConfig appends new keys to this slice and updates
	// existing ones in place. To delete a key, it swaps the deleted
	// key with the final slice element. This way, the order of
	// these keys is deterministic.
	FileConfig []Config

	// Name is the full name of this benchmark, including all
	// sub-benchmark configuration.
	Name Name

	// Iters is the number of iterations this benchmark's results
	// were averaged over.
	Iters int

	// Values is this benchmark's measurements and their units.
	Values []Value

	// Units is the unit metadata in effect for this result.
	Units Units

	// configPos maps from Config.Key to index in FileConfig. This
	// may be nil, which indicates the index needs to be
	// constructed.
	configPos map[string]int
}

// A Config is a single key/value configuration pair.
type Config struct {
	Key   string
	Value []byte
}

// A Value is a single value/unit measurement from a benchmark result.
type Value struct {
	Value float64
	Unit  string

	// OrigValue and OrigUnit, if non-zero, give the original,
	// untidied value and unit. OrigUnit may be "", indicating that
	// the value wasn't transformed.
	OrigValue float64
	OrigUnit  string
}

// Clone makes a copy of Result that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := &Result{
		FileConfig: make([]Config, len(r.FileConfig)),
		Name:       append([]byte(nil), r.Name...),
		Iters:      r.Iters,
		Values:     append([]Value(nil), r.Values...),
		Units:      Units{Metadata: append([]UnitMetadata(nil), r.Units.Metadata...)},
	}
	for i, cfg := range r.FileConfig {
		r2.FileConfig[i].Key = cfg.Key
		r2.FileConfig[i].Value = append([]byte(nil), cfg.Value...)
	}
	return r2
}

// SetFileConfig sets file configuration key to value, overriding or
// adding the configuration as necessary. If value is "",
// SetFileConfig deletes key.
func (r *Result) SetFileConfig(key, value string) {
	if value == "" {
		r.deleteFileConfig(key)
	} else {
		cfg := r.ensureFileConfig(key)
		cfg.Value = append(cfg.Value[:0], value...)
	}
}

func (r *Result) ensureFileConfig(key string) *Config {
	pos, ok := r.FileConfigIndex(key)
	if ok {
		return &r.FileConfig[pos]
	}
	// Add key. Reuse old space if possible.
	r.configPos[key] = len(r.FileConfig)
	if len(r.FileConfig) < cap(r.FileConfig) {
		r.FileConfig = r.FileConfig[:len(r.FileConfig)+1]
		cfg := &r.FileConfig[len(r.FileConfig)-1]
		cfg.Key = key
		return cfg
	}
	r.FileConfig = append(r.FileConfig, Config{key, nil})
	return &r.FileConfig[len(r.FileConfig)-1]
}

func (r *Result) deleteFileConfig(key string) {
	pos, ok := r.FileConfigIndex(key)
	if !ok {
		return
	}
	// Delete key.
	cfg := &r.FileConfig[pos]
	cfg2 := &r.FileConfig[len(r.FileConfig)-1]
	*cfg, *cfg2 = *cfg2, *cfg
	r.configPos[cfg.Key] = pos
	r.FileConfig = r.FileConfig[:len(r.FileConfig)-1]
	delete(r.configPos, key)
}

// GetFileConfig returns the value of a file configuration key, or ""
// if not present.
func (r *Result) GetFileConfig(key string) string {
	pos, ok := r.FileConfigIndex(key)
	if !ok {
		return ""
	}
	return string(r.FileConfig[pos].Value)
}

// FileConfigIndex returns the index in r.FileConfig of key.
func (r *Result) FileConfigIndex(key string) (pos int, ok bool) {
	if r.configPos == nil {
		// This is a fresh Result. Construct the index.
		r.configPos = make(map[string]int)
		for i, cfg := range r.FileConfig {
			r.configPos[cfg.Key] = i
		}
	}

	pos, ok = r.configPos[key]
	return
}

// Value returns the measurement for the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// A Name is a full benchmark name, including all sub-benchmark
// configuration.
type Name []byte

// String returns the full benchmark name as a string.
func (n Name) String() string {
	return string(n)
}

// Base returns the base part of a full benchmark name, without any
// configuration keys.
func (n Name) Base() []byte {
	slash := bytes.IndexByte(n, '/')
	if slash >= 0 {
		return n[:slash]
	}
	return n
}

// Key returns the value of sub-benchmark configuration key in n.
func (n Name) Key(key string) (string, bool) {
	parts := bytes.Split(n, []byte("/"))
	for _, part := range parts[1:] {
		eq := bytes.IndexByte(part, '=')
		if eq >= 0 && string(part[:eq]) == key {
			return string(part[eq+1:]), true
		}
	}
	return "", false
}
