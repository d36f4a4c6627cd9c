/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package providers binds each eval.Provider to its backend implementation and
// loads the dispatcher configuration from the environment.
package providers

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/r2r/eval"
	"chainguard.dev/r2r/eval/deepeval"
	"chainguard.dev/r2r/eval/parea"
	"github.com/sethvargo/go-envconfig"
)

// Config selects an evaluation backend and carries the settings of every
// supported backend.
type Config struct {
	Provider     string        `env:"EVAL_PROVIDER,required"`
	SamplingRate float64       `env:"EVAL_SAMPLING_RATE,default=1.0"`
	Timeout      time.Duration `env:"EVAL_TIMEOUT,default=60s"`

	DeepEval DeepEvalConfig
	Parea    PareaConfig
}

// DeepEvalConfig holds the DeepEval backend settings.
type DeepEvalConfig struct {
	BaseURL   string   `env:"DEEPEVAL_BASE_URL,default=https://api.confident-ai.com"`
	APIKey    string   `env:"DEEPEVAL_API_KEY"`
	Metrics   []string `env:"DEEPEVAL_METRICS,default=answer_relevancy,faithfulness,contextual_relevancy"`
	Threshold float64  `env:"DEEPEVAL_THRESHOLD,default=0.5"`
}

// PareaConfig holds the Parea backend settings.
type PareaConfig struct {
	BaseURL   string   `env:"PAREA_BASE_URL"`
	APIKey    string   `env:"PAREA_API_KEY"`
	EvalNames []string `env:"PAREA_EVAL_NAMES"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("processing evaluation config: %w", err)
	}
	return &cfg, nil
}

// NewScorer returns the Scorer bound to cfg.Provider.
func NewScorer(cfg *Config) (eval.Scorer, error) {
	p, err := eval.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	switch p {
	case eval.DeepEval:
		return deepeval.New(deepeval.Config{
			BaseURL:   cfg.DeepEval.BaseURL,
			APIKey:    cfg.DeepEval.APIKey,
			Metrics:   cfg.DeepEval.Metrics,
			Threshold: &cfg.DeepEval.Threshold,
			Timeout:   cfg.Timeout,
		})
	case eval.Parea:
		return parea.New(parea.Config{
			BaseURL:   cfg.Parea.BaseURL,
			APIKey:    cfg.Parea.APIKey,
			EvalNames: cfg.Parea.EvalNames,
			Timeout:   cfg.Timeout,
		})
	default:
		// Unreachable while every Provider has a case above.
		return nil, fmt.Errorf("no backend registered for provider %q", p)
	}
}

// New builds a dispatcher for cfg. Options are applied after the configured
// sampling rate, so callers may override it.
func New(cfg *Config, opts ...eval.Option) (eval.Interface, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}
	all := append([]eval.Option{eval.WithSamplingRate(cfg.SamplingRate)}, opts...)
	return eval.New(cfg.Provider, scorer, all...)
}
