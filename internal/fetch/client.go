// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch retrieves the trace overviews of a performance
// analysis from the grabl API, or from snapshots of earlier responses
// saved on disk.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/graknlabs/benchplot/trace"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/oauth2"
)

var (
	// ErrMissingToken is returned by NewClient when no API token is
	// configured.
	ErrMissingToken = errors.New("API token is not set")

	// ErrMissingField is returned when a response lacks the
	// performance-analysis or trace-overviews field.
	ErrMissingField = errors.New("missing field in response")
)

// A Source provides the raw trace overviews of an analysis.
type Source interface {
	Fetch(ctx context.Context, commitSHA, analysisID string) (trace.RawOverviewSet, error)
}

// A StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: %s", e.URL, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// analysisQuery selects the trace overviews of one analysis. %s is
// the analysis ID.
const analysisQuery = `{"analysis":{"id":{"selected":"%s"},"trace":{"path":[{"optional":true}],"tracker":{"optional":true},"labels":{"names":[]},"iteration":{}}}}`

// AnalysisURL returns the URL of the performance analysis analysisID of
// the run at commitSHA.
func AnalysisURL(baseURL, commitSHA, analysisID string) string {
	q := strings.ReplaceAll(fmt.Sprintf(analysisQuery, analysisID), `"`, "%22")
	return strings.TrimSuffix(baseURL, "/") + "/" + commitSHA + "/analysis/performance-analysis?q=" + q
}

// Options configures a Client.
type Options struct {
	BaseURL string

	// Token authenticates every request as
	// "Authorization: <AuthScheme> <Token>".
	Token      string
	AuthScheme string

	UserAgent string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// A Client fetches trace overviews from the grabl API.
type Client struct {
	baseURL   string
	userAgent string
	hc        *http.Client
	log       logrus.FieldLogger
}

// NewClient returns a Client for opts. Requests made by the client
// use the transport found in ctx under oauth2.HTTPClient, if any.
func NewClient(ctx context.Context, log logrus.FieldLogger, opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrMissingToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: opts.Token,
		TokenType:   opts.AuthScheme,
	})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = opts.Timeout
	return &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		hc:        hc,
		log:       log.WithField("component", "fetch"),
	}, nil
}

// Fetch performs a single GET of the analysis and returns its trace
// overviews. It does not retry.
func (c *Client) Fetch(ctx context.Context, commitSHA, analysisID string) (trace.RawOverviewSet, error) {
	url := AnalysisURL(c.baseURL, commitSHA, analysisID)
	log := c.log.WithField("analysis", analysisID)

	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := ctxhttp.Do(ctx, c.hc, req)
	if err != nil {
		return nil, fmt.Errorf("fetching analysis %s: %w", analysisID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start),
	}).Debug("Fetched analysis")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	raw, err := ParseOverviews(body)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", analysisID, err)
	}
	return raw, nil
}

// ParseOverviews extracts performance-analysis.trace-overviews from an
// API response body.
func ParseOverviews(data []byte) (trace.RawOverviewSet, error) {
	var doc struct {
		Analysis *struct {
			TraceOverviews *trace.RawOverviewSet `json:"trace-overviews"`
		} `json:"performance-analysis"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if doc.Analysis == nil {
		return nil, fmt.Errorf("%w: performance-analysis", ErrMissingField)
	}
	if doc.Analysis.TraceOverviews == nil {
		return nil, fmt.Errorf("%w: performance-analysis.trace-overviews", ErrMissingField)
	}
	return *doc.Analysis.TraceOverviews, nil
}

// snippet returns the start of an error response body.
func snippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
