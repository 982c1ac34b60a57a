// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("BENCH_TOKEN", "s3cret")

	path := filepath.Join(t.TempDir(), "benchplot.yaml")
	content := `commit_sha: abc123
token_env: BENCH_TOKEN
http_timeout: 30s
iterations: [1, 2]
series:
  - name: Neo4j
    analysis_id: "1"
    color: [0, 0, 1]
  - name: Grakn
    analysis_id: "2"
    color: [1, 0, 0]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.CommitSHA)
	assert.Equal(t, "s3cret", cfg.Token)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []int{1, 2}, cfg.Iterations)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "Neo4j", cfg.Series[0].Name)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 0.2, cfg.BarWidth)
	assert.Equal(t, []string{"closeClient", "closeSession", "openSession"}, cfg.ExcludeAgents)
	require.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: [1, two"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"one series", func(c *Config) { c.Series = c.Series[:1] }, ErrSeriesCount},
		{"short color", func(c *Config) { c.Series[0].Color = []float64{1, 0} }, ErrInvalidColor},
		{"color out of range", func(c *Config) { c.Series[1].Color = []float64{1, 2, 0} }, ErrInvalidColor},
		{"bad edge color", func(c *Config) { c.EdgeColor = "black" }, ErrInvalidColor},
		{"no iterations", func(c *Config) { c.Iterations = nil }, ErrInvalidValue},
		{"negative iteration", func(c *Config) { c.Iterations = []int{-1} }, ErrInvalidValue},
		{"zero bar width", func(c *Config) { c.BarWidth = 0 }, ErrInvalidValue},
		{"negative cap size", func(c *Config) { c.CapSize = -1 }, ErrInvalidValue},
		{"unknown extension", func(c *Config) { c.ImageExtension = "bmp" }, ErrInvalidExtension},
		{"unnamed series", func(c *Config) { c.Series[0].Name = "" }, ErrInvalidValue},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), test.want)
		})
	}
}

func TestColors(t *testing.T) {
	cfg := Default()

	r, g, b, a := cfg.Series[1].RGB().RGBA()
	assert.Equal(t, []uint32{113, 87, 201, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})

	assert.Equal(t, color.RGBAModel.Convert(color.Black), color.RGBAModel.Convert(cfg.Edge()))
	cfg.EdgeColor = "#ff8000"
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0, A: 0xff}, color.RGBAModel.Convert(cfg.Edge()))

	// Invalid edge colors fall back to black.
	for _, s := range []string{"", "#", "#ab", "abcd", "#abcde", "black"} {
		cfg.EdgeColor = s
		assert.Equal(t, color.RGBAModel.Convert(color.Black), color.RGBAModel.Convert(cfg.Edge()), "edge color %q", s)
	}
}

func TestStringMasksToken(t *testing.T) {
	cfg := Default()
	cfg.Token = "s3cret"

	s := cfg.String()
	assert.NotContains(t, s, "s3cret")
	assert.Contains(t, s, "********")
	assert.Contains(t, s, DefaultCommitSHA)
	assert.Contains(t, s, "Grakn")
}
