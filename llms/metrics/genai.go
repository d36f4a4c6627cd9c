/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics records OpenTelemetry metrics for language model calls.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared by every client; model and backend are dimensions.
const MeterName = "chainguard.r2r.llms"

// GenAI provides counters for token usage and request outcomes. Counters that
// fail to initialize fall back to no-ops.
type GenAI struct {
	backend          string
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	requests         metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates metrics for the named backend using the global meter provider.
func NewGenAI(backend string) *GenAI {
	return NewGenAIWithMeter(otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0")), backend)
}

// NewGenAIWithMeter creates metrics on an explicit meter.
func NewGenAIWithMeter(meter metric.Meter, backend string) *GenAI {
	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "backend", backend)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "backend", backend)
		completionTokens = noop.Int64Counter{}
	}

	requests, err := meter.Int64Counter("genai.requests",
		metric.WithDescription("The number of completion requests by status"),
		metric.WithUnit("{requests}"))
	if err != nil {
		slog.Warn("Failed to create request counter, metrics will be disabled", "error", err, "backend", backend)
		requests = noop.Int64Counter{}
	}

	return &GenAI{
		backend:          backend,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		requests:         requests,
	}
}

// SetAttributeEnricher sets the enricher called before each recording.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attrs(ctx context.Context, model string, extra ...attribute.KeyValue) []attribute.KeyValue {
	base := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("backend", m.backend),
	}
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return append(base, extra...)
}

// RecordTokens records prompt and completion token usage.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(m.attrs(ctx, model)...)
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordRequest records one completion request and whether it failed.
func (m *GenAI) RecordRequest(ctx context.Context, model string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(m.attrs(ctx, model, attribute.String("status", status))...))
}
