// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/graknlabs/benchplot/trace"
)

// SnapshotPath returns the file that holds the snapshot of analysisID
// in dir.
func SnapshotPath(dir, analysisID string) string {
	return filepath.Join(dir, analysisID+".json")
}

// SaveSnapshot writes raw to the snapshot file of analysisID in dir,
// creating dir if needed. Metric bodies are stored as received, so
// reshaping a loaded snapshot gives the same result as reshaping the
// original response.
func SaveSnapshot(dir, analysisID string, raw trace.RawOverviewSet) (string, error) {
	if err := checkID(analysisID); err != nil {
		return "", err
	}
	data, err := encodeSnapshot(raw)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}
	path := SnapshotPath(dir, analysisID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

// encodeSnapshot encodes raw with one agent per entry, agents and
// metrics sorted by name. The encoding/json encoders reformat
// RawMessage values, so metric bodies are copied in byte for byte.
func encodeSnapshot(raw trace.RawOverviewSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, agent := range sortedKeys(raw) {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n\t")
		if err := writeKey(&buf, agent); err != nil {
			return nil, err
		}
		buf.WriteString("{")
		ro := raw[agent]
		for j, name := range sortedKeys(ro) {
			msg := ro[name]
			if !json.Valid(msg) {
				return nil, fmt.Errorf("agent %q, metric %q: %w", agent, name, errInvalidBody)
			}
			if j > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n\t\t")
			if err := writeKey(&buf, name); err != nil {
				return nil, err
			}
			buf.Write(msg)
		}
		if len(ro) > 0 {
			buf.WriteString("\n\t")
		}
		buf.WriteString("}")
	}
	if len(raw) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

var errInvalidBody = errors.New("metric body is not valid JSON")

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteString(": ")
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// A SnapshotSource is a Source that reads snapshots written by
// SaveSnapshot from Dir. The commit SHA is not part of a snapshot's
// name and is ignored.
type SnapshotSource struct {
	Dir string
}

// Fetch loads the snapshot of analysisID.
func (s SnapshotSource) Fetch(ctx context.Context, commitSHA, analysisID string) (trace.RawOverviewSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(analysisID); err != nil {
		return nil, err
	}
	path := SnapshotPath(s.Dir, analysisID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var raw trace.RawOverviewSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return raw, nil
}

func checkID(analysisID string) error {
	if analysisID == "" || strings.ContainsAny(analysisID, `/\`) || analysisID == "." || analysisID == ".." {
		return fmt.Errorf("invalid analysis ID %q", analysisID)
	}
	return nil
}
