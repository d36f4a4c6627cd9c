/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report aggregates the outcomes of many sampled evaluations and
// renders them as a markdown summary.
package report

import (
	"math"
	"slices"
	"sync"

	"chainguard.dev/r2r/eval"
)

// MetricSummary aggregates the numeric "score" field of one metric.
type MetricSummary struct {
	Name  string  `json:"name" yaml:"name"`
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Summary is a point-in-time view of a Collector.
type Summary struct {
	Forwarded int             `json:"forwarded" yaml:"forwarded"`
	Skipped   int             `json:"skipped" yaml:"skipped"`
	Failed    int             `json:"failed" yaml:"failed"`
	Metrics   []MetricSummary `json:"metrics" yaml:"metrics"`
}

// Total returns the number of recorded calls.
func (s Summary) Total() int {
	return s.Forwarded + s.Skipped + s.Failed
}

type accumulator struct {
	count    int
	sum      float64
	min, max float64
}

// Collector records evaluation outcomes. It is safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	forwarded int
	skipped   int
	failed    int
	metrics   map[string]*accumulator
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{metrics: make(map[string]*accumulator)}
}

// Record stores the outcome of one eval.Interface.Evaluate call.
func (c *Collector) Record(res eval.Result, forwarded bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err != nil:
		c.failed++
		return
	case !forwarded:
		c.skipped++
		return
	}

	c.forwarded++
	for name, m := range res {
		score, ok := m["score"].(float64)
		if !ok || math.IsNaN(score) {
			continue
		}
		acc, ok := c.metrics[name]
		if !ok {
			acc = &accumulator{min: score, max: score}
			c.metrics[name] = acc
		}
		acc.count++
		acc.sum += score
		acc.min = min(acc.min, score)
		acc.max = max(acc.max, score)
	}
}

// Summary returns the aggregated view, with metrics sorted by name.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		Forwarded: c.forwarded,
		Skipped:   c.skipped,
		Failed:    c.failed,
		Metrics:   make([]MetricSummary, 0, len(c.metrics)),
	}
	for name, acc := range c.metrics {
		s.Metrics = append(s.Metrics, MetricSummary{
			Name:  name,
			Count: acc.count,
			Mean:  acc.sum / float64(acc.count),
			Min:   acc.min,
			Max:   acc.max,
		})
	}
	slices.SortFunc(s.Metrics, func(a, b MetricSummary) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return s
}
