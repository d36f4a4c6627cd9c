/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded on r2r_evaluations_total.
const (
	outcomeForwarded = "forwarded"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

var (
	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "r2r_evaluations_total",
			Help: "Total number of evaluate calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "r2r_evaluation_duration_seconds",
			Help:    "Latency of forwarded evaluation calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)
)

// providerMetrics caches the label-bound collectors for one provider.
type providerMetrics struct {
	forwarded prometheus.Counter
	skipped   prometheus.Counter
	failed    prometheus.Counter
	duration  prometheus.Observer
}

func newProviderMetrics(p Provider) providerMetrics {
	label := string(p)
	return providerMetrics{
		forwarded: evaluationCounter.WithLabelValues(label, outcomeForwarded),
		skipped:   evaluationCounter.WithLabelValues(label, outcomeSkipped),
		failed:    evaluationCounter.WithLabelValues(label, outcomeFailed),
		duration:  evaluationDuration.WithLabelValues(label),
	}
}
