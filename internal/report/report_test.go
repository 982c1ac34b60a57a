// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graknlabs/benchplot/internal/config"
	"github.com/graknlabs/benchplot/internal/fetch"
	"github.com/graknlabs/benchplot/trace"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves fixed overviews keyed by analysis ID.
type fakeSource map[string]string

func (f fakeSource) Fetch(ctx context.Context, commitSHA, analysisID string) (trace.RawOverviewSet, error) {
	var raw trace.RawOverviewSet
	if err := json.Unmarshal([]byte(f[analysisID]), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

const (
	oldOverviews = `{
		"WriteAgent": {"average": {"8": 4, "4": 1, "12": 9}, "standard-deviation": {"4": 0.5, "8": 1, "12": 2}},
		"ReadAgent": {"average": {"4": 3, "8": 3, "12": 3}, "standard-deviation": {"4": 0.1, "8": 0.1, "12": 0.1}},
		"openSession": {"average": {"4": 1}, "standard-deviation": {"4": 0}},
		"OnlyOld": {"average": {"4": 1}, "standard-deviation": {"4": 0}}
	}`
	graknOverviews = `{
		"ReadAgent": {"average": {"12": 2, "4": 2, "8": 2}, "standard-deviation": {"4": 0.1, "8": 0.1, "12": 0.1}},
		"WriteAgent": {"average": {"4": 2, "8": 8, "12": 18}, "standard-deviation": {"4": 0.5, "8": 1, "12": 2}},
		"openSession": {"average": {"4": 1}, "standard-deviation": {"4": 0}}
	}`
)

func testRunner(t *testing.T, src fetch.Source) (*Runner, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Series[0].AnalysisID = "1"
	cfg.Series[1].AnalysisID = "2"
	cfg.OutputDir = t.TempDir()

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRunner(cfg, src, log), cfg
}

func TestLoad(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	d, err := r.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ReadAgent", "WriteAgent"}, d.Agents)
	assert.Equal(t, "Old", d.A.Name)
	assert.Equal(t, "Grakn", d.B.Name)
	m, err := d.A.Overviews.Metric("WriteAgent", trace.Average)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 12}, m.Iterations())
}

func TestLoadNoCommonAgents(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, fakeSource{
		"1": `{"A": {"average": {"1": 1}}}`,
		"2": `{"B": {"average": {"1": 1}}}`,
	})
	_, err := r.Load(context.Background())
	require.ErrorIs(t, err, ErrNoAgents)
}

func TestLoadBadData(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, fakeSource{"1": oldOverviews, "2": `{"ReadAgent": {"average": {"x": 1}}}`})
	_, err := r.Load(context.Background())
	var keyErr *trace.KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Contains(t, err.Error(), "series Grakn")
}

func TestRender(t *testing.T) {
	t.Parallel()

	r, cfg := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	d, err := r.Load(context.Background())
	require.NoError(t, err)

	paths, err := r.Render(d)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		assert.Equal(t, cfg.OutputDir, filepath.Dir(p))
		names = append(names, filepath.Base(p))
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.Equal(t, []string{"overview.png", "agent_ReadAgent.png", "agent_WriteAgent.png"}, names)
}

func TestRenderMissingIteration(t *testing.T) {
	t.Parallel()

	r, cfg := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	cfg.Iterations = []int{4, 16}
	d, err := r.Load(context.Background())
	require.NoError(t, err)

	_, err = r.Render(d)
	require.ErrorIs(t, err, trace.ErrIterationNotFound)
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "overview.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestResults(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	d, err := r.Load(context.Background())
	require.NoError(t, err)

	rs, err := r.Results(d)
	require.NoError(t, err)
	// 2 series x 2 agents x 3 iterations.
	require.Len(t, rs, 12)
	assert.Equal(t, "Old", rs[0].GetFileConfig("series"))
	assert.Equal(t, "ReadAgent/iteration=4", rs[0].Name.String())
	assert.Equal(t, "Grakn", rs[11].GetFileConfig("series"))
	assert.Equal(t, "WriteAgent/iteration=12", rs[11].Name.String())
}

func TestExport(t *testing.T) {
	t.Parallel()

	r, cfg := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	d, err := r.Load(context.Background())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "bench")
	paths, err := r.Export(d, dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "Old.txt"), filepath.Join(dir, "Grakn.txt")}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	got := string(data)
	assert.True(t, strings.HasPrefix(got, "commit: "+cfg.CommitSHA+"\nanalysis: 2\nseries: Grakn\n"), got)
	assert.Contains(t, got, "BenchmarkWriteAgent/iteration=12 1 18 ms/op 2 sd-ms/op\n")
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	r, cfg := testRunner(t, fakeSource{"1": oldOverviews, "2": graknOverviews})
	dir := t.TempDir()
	paths, err := r.Snapshot(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{fetch.SnapshotPath(dir, "1"), fetch.SnapshotPath(dir, "2")}, paths)

	// A runner reading the snapshots sees the same data.
	offline := NewRunner(cfg, fetch.SnapshotSource{Dir: dir}, logrus.New())
	d, err := offline.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ReadAgent", "WriteAgent"}, d.Agents)
}
