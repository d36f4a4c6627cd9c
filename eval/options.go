/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import "math"

// Option is a functional option for configuring the dispatcher
type Option func(*dispatcher) error

// WithSamplingRate sets the probability that a call is forwarded to the backend.
// The rate must lie within [0, 1]; the default is 1.0.
func WithSamplingRate(rate float64) Option {
	return func(d *dispatcher) error {
		if math.IsNaN(rate) || rate < 0 || rate > 1 {
			return &ConfigError{Field: "sampling rate", Value: rate, Err: ErrInvalidSamplingRate}
		}
		d.rate = rate
		return nil
	}
}

// WithRandSource overrides the source used for the sampling gate.
func WithRandSource(src RandSource) Option {
	return func(d *dispatcher) error {
		if src == nil {
			return &ConfigError{Field: "rand source", Err: ErrNilRandSource}
		}
		d.rand = src
		return nil
	}
}
