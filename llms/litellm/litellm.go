/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package litellm provides a single llms.Interface that routes each request to
// a vendor backend chosen by the model name's "vendor/" prefix.
//
// Supported vendors:
//
//	openai/gpt-4o-mini            OpenAI
//	anthropic/claude-sonnet-4-5   Anthropic
//	gemini/gemini-2.5-flash       Gemini API
//	vertex_ai/gemini-2.5-pro      Gemini on Vertex AI
//	llamacpp/default              local llama.cpp server
//
// A model without a prefix is sent to OpenAI. Backends are created on first
// use, so only the vendors actually called need credentials.
package litellm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/llamacpp"
	"chainguard.dev/r2r/llms/openaillm"
	"github.com/chainguard-dev/clog"
)

// Vendor prefixes understood by the router.
const (
	VendorOpenAI    = "openai"
	VendorAnthropic = "anthropic"
	VendorGemini    = "gemini"
	VendorVertexAI  = "vertex_ai"
	VendorLlamaCpp  = "llamacpp"
)

// DefaultModel is used when neither Config.DefaultModel nor Request.Model is set.
const DefaultModel = VendorOpenAI + "/" + openaillm.DefaultModel

// Config holds credentials for every vendor the router may reach. Only the
// vendors that are used need to be filled in.
type Config struct {
	DefaultModel string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	VertexProject   string
	VertexLocation  string
	LlamaCppURL     string

	// Base URL overrides, for proxies and tests.
	OpenAIBaseURL    string
	AnthropicBaseURL string
	GeminiBaseURL    string

	// MaxTokens is the default completion cap passed to every backend.
	MaxTokens int64

	HTTPClient *http.Client
}

// router implements llms.Interface
type router struct {
	cfg Config

	mu       sync.Mutex
	backends map[string]llms.Interface
}

var _ llms.Interface = (*router)(nil)

// New creates a router. No backend is contacted until Complete is called.
func New(cfg Config) (llms.Interface, error) {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens must not be negative, got %d", cfg.MaxTokens)
	}
	if vendor, _ := ParseModel(cfg.DefaultModel); !knownVendor(vendor) {
		return nil, fmt.Errorf("default model %q: unknown vendor %q", cfg.DefaultModel, vendor)
	}
	return &router{
		cfg:      cfg,
		backends: make(map[string]llms.Interface),
	}, nil
}

// ParseModel splits "vendor/model" at the first slash. A name without a slash
// belongs to OpenAI.
func ParseModel(name string) (vendor, model string) {
	vendor, model, ok := strings.Cut(name, "/")
	if !ok {
		return VendorOpenAI, name
	}
	return vendor, model
}

func knownVendor(vendor string) bool {
	switch vendor {
	case VendorOpenAI, VendorAnthropic, VendorGemini, VendorVertexAI, VendorLlamaCpp:
		return true
	default:
		return false
	}
}

// Name implements llms.Interface
func (r *router) Name() string {
	return "litellm"
}

// Complete implements llms.Interface
func (r *router) Complete(ctx context.Context, req *llms.Request) (*llms.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := req.Model
	if name == "" {
		name = r.cfg.DefaultModel
	}
	vendor, model := ParseModel(name)
	if model == "" {
		return nil, fmt.Errorf("%s: empty model name in %q", vendor, name)
	}

	backend, err := r.backend(ctx, vendor)
	if err != nil {
		return nil, err
	}

	clog.FromContext(ctx).With("vendor", vendor).With("model", model).Debug("Routing completion")

	routed := *req
	routed.Model = model
	return backend.Complete(ctx, &routed)
}

// backend returns the client for vendor, creating it on first use.
func (r *router) backend(ctx context.Context, vendor string) (llms.Interface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.backends[vendor]; ok {
		return b, nil
	}

	b, err := r.newBackend(ctx, vendor)
	if err != nil {
		return nil, err
	}
	r.backends[vendor] = b
	return b, nil
}

func (r *router) newBackend(ctx context.Context, vendor string) (llms.Interface, error) {
	switch vendor {
	case VendorOpenAI:
		if r.cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%s: API key is not configured", vendor)
		}
		return openaillm.New(openaillm.Config{
			APIKey:     r.cfg.OpenAIAPIKey,
			BaseURL:    r.cfg.OpenAIBaseURL,
			MaxTokens:  r.cfg.MaxTokens,
			HTTPClient: r.cfg.HTTPClient,
		})

	case VendorAnthropic:
		if r.cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%s: API key is not configured", vendor)
		}
		return newAnthropic(anthropicConfig{
			apiKey:     r.cfg.AnthropicAPIKey,
			baseURL:    r.cfg.AnthropicBaseURL,
			maxTokens:  r.cfg.MaxTokens,
			httpClient: r.cfg.HTTPClient,
		}), nil

	case VendorGemini:
		if r.cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%s: API key is not configured", vendor)
		}
		return newGemini(ctx, vendor, geminiConfig{
			apiKey:     r.cfg.GeminiAPIKey,
			baseURL:    r.cfg.GeminiBaseURL,
			maxTokens:  r.cfg.MaxTokens,
			httpClient: r.cfg.HTTPClient,
		})

	case VendorVertexAI:
		if r.cfg.VertexProject == "" || r.cfg.VertexLocation == "" {
			return nil, fmt.Errorf("%s: project and location must be configured", vendor)
		}
		return newGemini(ctx, vendor, geminiConfig{
			project:    r.cfg.VertexProject,
			location:   r.cfg.VertexLocation,
			maxTokens:  r.cfg.MaxTokens,
			httpClient: r.cfg.HTTPClient,
		})

	case VendorLlamaCpp:
		return llamacpp.New(llamacpp.Config{
			ServerURL:  r.cfg.LlamaCppURL,
			MaxTokens:  r.cfg.MaxTokens,
			HTTPClient: r.cfg.HTTPClient,
		})

	default:
		return nil, fmt.Errorf("unknown vendor %q", vendor)
	}
}
