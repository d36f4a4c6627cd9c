/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import "context"

// Metric holds the sub-fields reported for a single metric, such as "score",
// "label" or "reason". Values are either string or float64.
type Metric map[string]any

// Result maps a metric name to its sub-fields.
type Result map[string]Metric

// Scorer is implemented once per supported backend.
type Scorer interface {
	// ScoreOne sends a single triple to the backend and returns its metrics.
	ScoreOne(ctx context.Context, query, contextText, completion string) (Result, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, query, contextText, completion string) (Result, error)

// ScoreOne implements Scorer
func (f ScorerFunc) ScoreOne(ctx context.Context, query, contextText, completion string) (Result, error) {
	return f(ctx, query, contextText, completion)
}

// Interface is the caller-facing evaluation contract.
type Interface interface {
	// Evaluate forwards the triple to the bound backend when the sampling gate
	// passes. forwarded is false when the call was skipped by sampling, in which
	// case result and err are both nil.
	Evaluate(ctx context.Context, query, contextText, completion string) (result Result, forwarded bool, err error)

	// Provider returns the backend this dispatcher is bound to.
	Provider() Provider

	// SamplingRate returns the probability that a call is forwarded.
	SamplingRate() float64
}
