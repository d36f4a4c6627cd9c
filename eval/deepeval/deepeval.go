/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package deepeval implements an eval.Scorer that forwards triples to a
// DeepEval (Confident AI) compatible evaluation service.
package deepeval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"chainguard.dev/r2r/eval"
	"chainguard.dev/r2r/eval/remote"
)

const (
	// DefaultBaseURL is the hosted Confident AI endpoint.
	DefaultBaseURL = "https://api.confident-ai.com"
	// DefaultThreshold is the pass mark applied to every metric.
	DefaultThreshold = 0.5

	evaluatePath = "/v1/evaluate"
	apiKeyHeader = "CONFIDENT_API_KEY"
)

// DefaultMetrics are requested when Config.Metrics is empty.
var DefaultMetrics = []string{"answer_relevancy", "faithfulness", "contextual_relevancy"}

// Config configures the DeepEval scorer.
type Config struct {
	// BaseURL of the evaluation service. Defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is sent in the CONFIDENT_API_KEY header.
	APIKey string
	// Metrics to compute. Defaults to DefaultMetrics.
	Metrics []string
	// Threshold is the pass mark for each metric. Nil uses DefaultThreshold;
	// zero is a valid threshold.
	Threshold *float64
	// Timeout for a single evaluation call. Zero keeps the client default.
	Timeout time.Duration
}

type testCase struct {
	Input            string   `json:"input"`
	ActualOutput     string   `json:"actualOutput"`
	RetrievalContext []string `json:"retrievalContext"`
}

type metricSpec struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

type evaluateRequest struct {
	TestCases []testCase   `json:"testCases"`
	Metrics   []metricSpec `json:"metrics"`
}

type metricData struct {
	Name    string   `json:"name"`
	Score   *float64 `json:"score"`
	Reason  string   `json:"reason"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

type evaluateResponse struct {
	TestResults []struct {
		MetricsData []metricData `json:"metricsData"`
	} `json:"testResults"`
}

// scorer implements eval.Scorer
type scorer struct {
	client  *remote.Client
	metrics []metricSpec
}

var _ eval.Scorer = (*scorer)(nil)

// New creates a DeepEval scorer.
func New(cfg Config) (eval.Scorer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("deepeval: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = DefaultMetrics
	}
	threshold := DefaultThreshold
	if cfg.Threshold != nil {
		threshold = *cfg.Threshold
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("deepeval: threshold must be between 0.0 and 1.0, got %f", threshold)
	}

	opts := []remote.Option{remote.WithHeader(apiKeyHeader, cfg.APIKey)}
	if cfg.Timeout > 0 {
		opts = append(opts, remote.WithTimeout(cfg.Timeout))
	}
	client, err := remote.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("deepeval: %w", err)
	}

	metrics := make([]metricSpec, 0, len(cfg.Metrics))
	for _, m := range cfg.Metrics {
		metrics = append(metrics, metricSpec{Name: m, Threshold: threshold})
	}

	return &scorer{
		client:  client,
		metrics: metrics,
	}, nil
}

// ScoreOne implements eval.Scorer
func (s *scorer) ScoreOne(ctx context.Context, query, contextText, completion string) (eval.Result, error) {
	req := evaluateRequest{
		TestCases: []testCase{{
			Input:            query,
			ActualOutput:     completion,
			RetrievalContext: []string{contextText},
		}},
		Metrics: s.metrics,
	}

	var resp evaluateResponse
	if err := s.client.PostJSON(ctx, evaluatePath, req, &resp); err != nil {
		return nil, fmt.Errorf("deepeval: %w", err)
	}
	if len(resp.TestResults) == 0 {
		return nil, errors.New("deepeval: response contained no test results")
	}

	data := resp.TestResults[0].MetricsData
	result := make(eval.Result, len(data))
	for _, md := range data {
		if md.Error != "" {
			return nil, fmt.Errorf("deepeval: metric %q failed: %s", md.Name, md.Error)
		}
		if md.Score == nil {
			return nil, fmt.Errorf("deepeval: metric %q has no score", md.Name)
		}
		label := "fail"
		if md.Success {
			label = "pass"
		}
		result[md.Name] = eval.Metric{
			"score":  *md.Score,
			"reason": md.Reason,
			"label":  label,
		}
	}
	return result, nil
}
