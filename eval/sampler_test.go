/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

import (
	"errors"
	"sync"
	"testing"
)

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(1234), NewSource(1234)
	for i := range 100 {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("sample %d differs: %v != %v", i, x, y)
		}
	}
}

func TestSources_Range(t *testing.T) {
	for name, src := range map[string]RandSource{
		"default": DefaultSource(),
		"seeded":  NewSource(99),
	} {
		t.Run(name, func(t *testing.T) {
			for range 10000 {
				if v := src.Float64(); v < 0 || v >= 1 {
					t.Fatalf("Float64() = %v, outside [0, 1)", v)
				}
			}
		})
	}
}

func TestNewSource_ConcurrentUse(t *testing.T) {
	src := NewSource(5)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				src.Float64()
			}
		}()
	}
	wg.Wait()
}

func TestWithRandSource_Nil(t *testing.T) {
	err := WithRandSource(nil)(&dispatcher{})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("WithRandSource(nil) error = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "rand source" || !errors.Is(err, ErrNilRandSource) {
		t.Errorf("WithRandSource(nil) error = %#v", cfgErr)
	}
}
