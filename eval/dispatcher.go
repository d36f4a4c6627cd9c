/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import (
	"context"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// dispatcher provides the private implementation of Interface
type dispatcher struct {
	provider Provider
	scorer   Scorer
	rate     float64
	rand     RandSource
	metrics  providerMetrics
	tracer   oteltrace.Tracer
}

var _ Interface = (*dispatcher)(nil)

// New binds a dispatcher to the named provider and its scorer.
// An unsupported provider name fails immediately with a *ConfigError.
func New(provider string, scorer Scorer, opts ...Option) (Interface, error) {
	p, err := ParseProvider(provider)
	if err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, &ConfigError{Field: "scorer", Err: ErrNilScorer}
	}

	d := &dispatcher{
		provider: p,
		scorer:   scorer,
		rate:     1.0,
		rand:     DefaultSource(),
		tracer: otel.Tracer("chainguard.r2r.eval",
			oteltrace.WithInstrumentationVersion("1.0.0")),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.metrics = newProviderMetrics(p)

	return d, nil
}

// Provider implements Interface
func (d *dispatcher) Provider() Provider {
	return d.provider
}

// SamplingRate implements Interface
func (d *dispatcher) SamplingRate() float64 {
	return d.rate
}

// Evaluate implements Interface
func (d *dispatcher) Evaluate(ctx context.Context, query, contextText, completion string) (Result, bool, error) {
	// Strict comparison: samples lie in [0, 1), so a rate of 1.0 always passes
	// and a rate of 0.0 never does.
	if d.rand.Float64() >= d.rate {
		d.metrics.skipped.Inc()
		clog.FromContext(ctx).With("provider", d.provider).Debug("Evaluation skipped by sampling")
		return nil, false, nil
	}

	ctx, span := d.tracer.Start(ctx, "eval.evaluate", oteltrace.WithAttributes(
		attribute.String("eval.provider", string(d.provider)),
		attribute.Float64("eval.sampling_rate", d.rate),
	))
	defer span.End()

	start := time.Now()
	res, err := d.scorer.ScoreOne(ctx, query, contextText, completion)
	d.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.failed.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		clog.FromContext(ctx).With("provider", d.provider).
			With("error", err).
			Error("Evaluation backend failed")
		return nil, true, err
	}

	d.metrics.forwarded.Inc()
	span.SetAttributes(attribute.Int("eval.metrics", len(res)))
	return res, true, nil
}
