/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider is returned when a provider name is not in the supported set.
	ErrUnsupportedProvider = errors.New("unsupported evaluation provider")
	// ErrInvalidSamplingRate is returned when a sampling rate is outside [0, 1].
	ErrInvalidSamplingRate = errors.New("sampling rate must be within [0, 1]")
	// ErrNilScorer is returned when a dispatcher is constructed without a scorer.
	ErrNilScorer = errors.New("scorer cannot be nil")
	// ErrNilRandSource is returned when WithRandSource is given a nil source.
	ErrNilRandSource = errors.New("rand source cannot be nil")
)

// ConfigError reports an invalid dispatcher configuration.
type ConfigError struct {
	// Field names the offending setting (e.g. "provider").
	Field string
	// Value is the rejected value as supplied by the caller.
	Value any
	// Err is one of the package sentinels.
	Err error
}

// Error implements error
func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, fmt.Sprint(e.Value), e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
