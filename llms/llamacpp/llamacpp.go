/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llamacpp talks to a local llama.cpp server through its
// OpenAI-compatible endpoint.
package llamacpp

import (
	"net/http"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/openaillm"
)

const (
	// DefaultServerURL is where llama-server listens out of the box.
	DefaultServerURL = "http://localhost:8080/v1"

	// DefaultModel is accepted by llama-server, which serves whatever model
	// it was started with.
	DefaultModel = "default"

	// noKey satisfies the SDK when the server runs without --api-key.
	noKey = "sk-no-key-required"
)

// Config configures a llama.cpp client.
type Config struct {
	ServerURL string
	Model     string
	// APIKey matches the server's --api-key flag, if any.
	APIKey     string
	MaxTokens  int64
	HTTPClient *http.Client
}

// New creates a client named "llamacpp".
func New(cfg Config) (llms.Interface, error) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		cfg.APIKey = noKey
	}
	return openaillm.NewCompatible("llamacpp", openaillm.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.ServerURL,
		Model:           cfg.Model,
		MaxTokens:       cfg.MaxTokens,
		LegacyMaxTokens: true,
		HTTPClient:      cfg.HTTPClient,
	})
}
