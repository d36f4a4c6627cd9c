/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval_test

import (
	"errors"
	"testing"

	"chainguard.dev/r2r/eval"
	"github.com/google/go-cmp/cmp"
)

func TestProviders(t *testing.T) {
	want := []eval.Provider{eval.DeepEval, eval.Parea}
	got := eval.Providers()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Providers() mismatch (-want +got):\n%s", diff)
	}

	// The returned slice is a copy.
	got[0] = "mutated"
	if eval.Providers()[0] != eval.DeepEval {
		t.Error("Providers() exposes the internal slice")
	}
}

func TestParseProvider(t *testing.T) {
	for _, p := range eval.Providers() {
		got, err := eval.ParseProvider(string(p))
		if err != nil {
			t.Errorf("ParseProvider(%q) error = %v", p, err)
		}
		if got != p {
			t.Errorf("ParseProvider(%q) = %q", p, got)
		}
	}

	for _, name := range []string{"bogus", "deepeval ", "PAREA", "litellm"} {
		_, err := eval.ParseProvider(name)
		if !errors.Is(err, eval.ErrUnsupportedProvider) {
			t.Errorf("ParseProvider(%q) error = %v, want ErrUnsupportedProvider", name, err)
		}
	}
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *eval.ConfigError
		want string
	}{{
		name: "with value",
		err:  &eval.ConfigError{Field: "provider", Value: "bogus", Err: eval.ErrUnsupportedProvider},
		want: `invalid provider "bogus": unsupported evaluation provider`,
	}, {
		name: "numeric value",
		err:  &eval.ConfigError{Field: "sampling rate", Value: 1.5, Err: eval.ErrInvalidSamplingRate},
		want: `invalid sampling rate "1.5": sampling rate must be within [0, 1]`,
	}, {
		name: "without value",
		err:  &eval.ConfigError{Field: "scorer", Err: eval.ErrNilScorer},
		want: "invalid scorer: scorer cannot be nil",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
