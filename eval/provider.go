/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package eval

// Provider identifies a supported evaluation backend.
type Provider string

const (
	// DeepEval forwards to a DeepEval (Confident AI) evaluation service.
	DeepEval Provider = "deepeval"
	// Parea forwards to the Parea evaluation service.
	Parea Provider = "parea"
)

// providers is the closed set of supported backends, in display order.
var providers = []Provider{DeepEval, Parea}

// Providers returns every supported provider.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ParseProvider resolves name to a supported Provider.
func ParseProvider(name string) (Provider, error) {
	for _, p := range providers {
		if string(p) == name {
			return p, nil
		}
	}
	return "", &ConfigError{Field: "provider", Value: name, Err: ErrUnsupportedProvider}
}

// String implements fmt.Stringer
func (p Provider) String() string {
	return string(p)
}
