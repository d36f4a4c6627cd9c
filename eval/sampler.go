/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import (
	"math/rand/v2"
	"sync"
)

// RandSource yields uniformly distributed samples in [0, 1).
// Implementations must be safe for concurrent use.
type RandSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide generator. It is seeded by the runtime
// and cannot be controlled by callers.
func DefaultSource() RandSource {
	return globalSource{}
}

// lockedSource serializes access to a seeded generator.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a deterministic RandSource seeded with seed.
func NewSource(seed uint64) RandSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// FixedSource always returns the same sample. It is mostly useful in tests that
// need to pin which side of the sampling gate a call lands on.
type FixedSource float64

// Float64 implements RandSource
func (f FixedSource) Float64() float64 { return float64(f) }
