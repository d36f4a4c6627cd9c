/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaillm adapts the OpenAI chat completions API, and servers that
// speak it, to llms.Interface.
package openaillm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/metrics"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when neither Config.Model nor Request.Model is set.
const DefaultModel = "gpt-4o-mini"

// Config configures an OpenAI client.
type Config struct {
	// APIKey authenticates against the API. Required by New.
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a proxy or an
	// OpenAI-compatible server. Required by NewCompatible.
	BaseURL string
	// Organization is sent as the OpenAI-Organization header when set.
	Organization string
	// Model is the default model for requests that do not name one.
	Model string
	// MaxTokens is the default completion cap. Zero leaves it to the server.
	MaxTokens int64
	// LegacyMaxTokens sends max_tokens instead of max_completion_tokens, which
	// older OpenAI-compatible servers expect.
	LegacyMaxTokens bool
	// HTTPClient replaces the SDK's default client.
	HTTPClient *http.Client
}

// client implements llms.Interface
type client struct {
	name    string
	sdk     openai.Client
	cfg     Config
	metrics *metrics.GenAI
}

var _ llms.Interface = (*client)(nil)

// New creates a client for the OpenAI API.
func New(cfg Config) (llms.Interface, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return newClient("openai", cfg)
}

// NewCompatible creates a client named name for a server exposing the OpenAI
// chat completions API at cfg.BaseURL.
func NewCompatible(name string, cfg Config) (llms.Interface, error) {
	if name == "" {
		return nil, errors.New("backend name is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s: base URL is required", name)
	}
	return newClient(name, cfg)
}

func newClient(name string, cfg Config) (*client, error) {
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("%s: max tokens must not be negative, got %d", name, cfg.MaxTokens)
	}

	opts := []option.RequestOption{
		// Retries are the caller's concern.
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &client{
		name:    name,
		sdk:     openai.NewClient(opts...),
		cfg:     cfg,
		metrics: metrics.NewGenAI(name),
	}, nil
}

// Name implements llms.Interface
func (c *client) Name() string {
	return c.name
}

// Complete implements llms.Interface
func (c *client) Complete(ctx context.Context, req *llms.Request) (resp *llms.Response, err error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	if model == "" {
		return nil, fmt.Errorf("%s: no model configured", c.name)
	}
	defer func() { c.metrics.RecordRequest(ctx, model, err) }()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toMessages(req.Messages),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	if maxTokens > 0 {
		if c.cfg.LegacyMaxTokens {
			params.MaxTokens = openai.Int(maxTokens)
		} else {
			params.MaxCompletionTokens = openai.Int(maxTokens)
		}
	}

	var reqOpts []option.RequestOption
	if len(req.Stop) > 0 {
		reqOpts = append(reqOpts, option.WithJSONSet("stop", req.Stop))
	}

	log := clog.FromContext(ctx).With("backend", c.name).With("model", model)
	log.With("messages", len(req.Messages)).Debug("Sending chat completion")

	completion, err := c.sdk.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: chat completion: %w", c.name, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response", c.name)
	}

	c.metrics.RecordTokens(ctx, model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)

	choice := completion.Choices[0]
	respModel := completion.Model
	if respModel == "" {
		respModel = model
	}
	return &llms.Response{
		Content:      choice.Message.Content,
		Model:        respModel,
		FinishReason: string(choice.FinishReason),
		Usage: llms.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
		},
	}, nil
}

func toMessages(msgs []llms.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case llms.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case llms.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
