/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package parea implements an eval.Scorer backed by the Parea evaluation service.
package parea

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/r2r/eval"
	"chainguard.dev/r2r/eval/remote"
)

const (
	evaluatePath = "/evaluate"
	apiKeyHeader = "x-user-id"
)

// Config configures the Parea scorer.
type Config struct {
	// BaseURL of the Parea API. Required.
	BaseURL string
	// APIKey identifies the caller. Required.
	APIKey string
	// EvalNames selects the evaluation functions to run. Empty lets the
	// service apply its configured defaults.
	EvalNames []string
	// Timeout for a single evaluation call. Zero keeps the client default.
	Timeout time.Duration
}

type evaluateRequest struct {
	Inputs    map[string]string `json:"inputs"`
	Output    string            `json:"output"`
	EvalNames []string          `json:"eval_names,omitempty"`
}

type score struct {
	Name   string   `json:"name"`
	Score  *float64 `json:"score"`
	Reason string   `json:"reason,omitempty"`
}

type evaluateResponse struct {
	Scores []score `json:"scores"`
}

type scorer struct {
	client    *remote.Client
	evalNames []string
}

var _ eval.Scorer = (*scorer)(nil)

// New creates a Parea scorer.
func New(cfg Config) (eval.Scorer, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("parea: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("parea: API key is required")
	}

	opts := []remote.Option{remote.WithHeader(apiKeyHeader, cfg.APIKey)}
	if cfg.Timeout > 0 {
		opts = append(opts, remote.WithTimeout(cfg.Timeout))
	}
	client, err := remote.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("parea: %w", err)
	}
	return &scorer{client: client, evalNames: cfg.EvalNames}, nil
}

// ScoreOne implements eval.Scorer
func (s *scorer) ScoreOne(ctx context.Context, query, contextText, completion string) (eval.Result, error) {
	req := evaluateRequest{
		Inputs: map[string]string{
			"query":   query,
			"context": contextText,
		},
		Output:    completion,
		EvalNames: s.evalNames,
	}

	var resp evaluateResponse
	if err := s.client.PostJSON(ctx, evaluatePath, req, &resp); err != nil {
		return nil, fmt.Errorf("parea: %w", err)
	}

	result := make(eval.Result, len(resp.Scores))
	for _, sc := range resp.Scores {
		if sc.Name == "" {
			return nil, errors.New("parea: score without a name")
		}
		if sc.Score == nil {
			return nil, fmt.Errorf("parea: %q has no score", sc.Name)
		}
		m := eval.Metric{"score": *sc.Score}
		if sc.Reason != "" {
			m["reason"] = sc.Reason
		}
		result[sc.Name] = m
	}
	return result, nil
}
