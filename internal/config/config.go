// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config handles configuration loading for benchplot.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrSeriesCount      = errors.New("exactly two series are required")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidExtension = errors.New("unsupported image extension")
	ErrInvalidValue     = errors.New("invalid value")
)

// Config holds everything a report run needs.
type Config struct {
	CommitSHA   string        `yaml:"commit_sha"`
	BaseURL     string        `yaml:"base_url"`
	TokenEnv    string        `yaml:"token_env"`
	AuthScheme  string        `yaml:"auth_scheme"`
	UserAgent   string        `yaml:"user_agent"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Series are the two runs to compare. The first is the
	// baseline: its bars are drawn on the left, its iterations
	// drive the line charts and the comparison table is relative to
	// it.
	Series []Series `yaml:"series"`

	Iterations     []int    `yaml:"iterations"`
	BarWidth       float64  `yaml:"bar_width"`
	CapSize        float64  `yaml:"cap_size"`
	EdgeColor      string   `yaml:"edge_color"`
	ExcludeAgents  []string `yaml:"exclude_agents"`
	ImageExtension string   `yaml:"image_extension"`
	OutputDir      string   `yaml:"output_dir"`

	// Token is read from the environment variable named by
	// TokenEnv. It is never loaded from or written to YAML.
	Token string `yaml:"-"`
}

// Series configures one benchmark run.
type Series struct {
	Name       string `yaml:"name"`
	AnalysisID string `yaml:"analysis_id"`
	// Color is an RGB triple of fractions in [0, 1].
	Color []float64 `yaml:"color"`
}

// Default returns the configuration of the grakn vs. neo4j simulation
// comparison.
func Default() *Config {
	return &Config{
		CommitSHA:  DefaultCommitSHA,
		BaseURL:    DefaultBaseURL,
		TokenEnv:   DefaultTokenEnv,
		AuthScheme: DefaultAuthScheme,
		UserAgent:  DefaultUserAgent,
		Series: []Series{
			{Name: "Old", AnalysisID: "2929622178614665216", Color: []float64{24.0 / 256, 127.0 / 256, 183.0 / 256}},
			{Name: "Grakn", AnalysisID: "5027489464949336064", Color: []float64{113.0 / 256, 87.0 / 256, 202.0 / 256}},
		},
		Iterations:     []int{4, 8, 12},
		BarWidth:       0.2,
		CapSize:        3,
		EdgeColor:      "#000",
		ExcludeAgents:  []string{"closeClient", "closeSession", "openSession"},
		ImageExtension: "png",
		OutputDir:      ".",
	}
}

// Load builds the configuration: defaults, overridden by the YAML file
// at path (if path is not empty), with the API token taken from the
// environment after loading a .env file if one exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.Token = os.Getenv(cfg.TokenEnv)
	return cfg, nil
}

var hexColorRe = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate reports the first problem with c, if any.
func (c *Config) Validate() error {
	if len(c.Series) != 2 {
		return fmt.Errorf("%w, got %d", ErrSeriesCount, len(c.Series))
	}
	for _, s := range c.Series {
		if s.Name == "" {
			return fmt.Errorf("%w: series name is empty", ErrInvalidValue)
		}
		if len(s.Color) != 3 {
			return fmt.Errorf("%w for series %q: need 3 components, got %d", ErrInvalidColor, s.Name, len(s.Color))
		}
		for _, f := range s.Color {
			if f < 0 || f > 1 || math.IsNaN(f) {
				return fmt.Errorf("%w for series %q: component %v outside [0, 1]", ErrInvalidColor, s.Name, f)
			}
		}
	}
	if !hexColorRe.MatchString(c.EdgeColor) {
		return fmt.Errorf("%w: edge color %q", ErrInvalidColor, c.EdgeColor)
	}
	if len(c.Iterations) == 0 {
		return fmt.Errorf("%w: no iterations to summarize", ErrInvalidValue)
	}
	for _, it := range c.Iterations {
		if it < 0 {
			return fmt.Errorf("%w: iteration %d is negative", ErrInvalidValue, it)
		}
	}
	if !(c.BarWidth > 0) {
		return fmt.Errorf("%w: bar width must be positive", ErrInvalidValue)
	}
	if c.CapSize < 0 {
		return fmt.Errorf("%w: cap size must not be negative", ErrInvalidValue)
	}
	if !SupportedExtension(c.ImageExtension) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, c.ImageExtension)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http timeout must not be negative", ErrInvalidValue)
	}
	return nil
}

// SupportedExtension reports whether charts can be encoded in the
// image format named by ext.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case "png", "jpg", "jpeg", "svg", "pdf", "eps", "tif", "tiff", "tex":
		return true
	}
	return false
}

// RGB returns the color of s.
func (s Series) RGB() color.Color {
	var c [3]uint8
	for i := range c {
		if i < len(s.Color) {
			c[i] = uint8(math.Round(s.Color[i] * 255))
		}
	}
	return drawing.Color{R: c[0], G: c[1], B: c[2], A: 255}
}

// Edge returns the bar edge color, or black if EdgeColor is not a
// valid hex color.
func (c *Config) Edge() color.Color {
	if !hexColorRe.MatchString(c.EdgeColor) {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(strings.TrimPrefix(c.EdgeColor, "#"))
}

// Marshal returns c encoded as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) String() string {
	tokenDisplay := "(not set)"
	if c.Token != "" {
		tokenDisplay = "********"
	}

	var series strings.Builder
	for i, s := range c.Series {
		fmt.Fprintf(&series, "\nSeries %d:                 %s (analysis %s, color %v)", i+1, s.Name, s.AnalysisID, s.Color)
	}

	return fmt.Sprintf(`Current Configuration:
======================
Commit SHA:               %s
Base URL:                 %s
Token (%s):%s%s
Auth Scheme:              %s%s
Iterations:               %v
Bar Width:                %v
Cap Size:                 %v
Edge Color:               %s
Excluded Agents:          %s
Image Extension:          %s
Output Directory:         %s`,
		c.CommitSHA,
		c.BaseURL,
		c.TokenEnv, strings.Repeat(" ", max(1, 18-len(c.TokenEnv))), tokenDisplay,
		c.AuthScheme,
		series.String(),
		c.Iterations,
		c.BarWidth,
		c.CapSize,
		c.EdgeColor,
		strings.Join(c.ExcludeAgents, ", "),
		c.ImageExtension,
		c.OutputDir,
	)
}
