/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package litellm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/metrics"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
)

// defaultAnthropicMaxTokens is sent when no cap is configured, since the
// Messages API requires one.
const defaultAnthropicMaxTokens = 4096

type anthropicConfig struct {
	apiKey     string
	baseURL    string
	maxTokens  int64
	httpClient *http.Client
}

type anthropicClient struct {
	client    anthropic.Client
	maxTokens int64
	metrics   *metrics.GenAI
}

func newAnthropic(cfg anthropicConfig) *anthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.httpClient))
	}

	maxTokens := cfg.maxTokens
	if maxTokens == 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &anthropicClient{
		client:    anthropic.NewClient(opts...),
		maxTokens: maxTokens,
		metrics:   metrics.NewGenAI(VendorAnthropic),
	}
}

func (a *anthropicClient) Name() string {
	return VendorAnthropic
}

func (a *anthropicClient) Complete(ctx context.Context, req *llms.Request) (resp *llms.Response, err error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", VendorAnthropic, err)
	}
	defer func() { a.metrics.RecordRequest(ctx, req.Model, err) }()

	system, turns := req.SplitSystem()
	if len(turns) == 0 {
		return nil, fmt.Errorf("%s: %w", VendorAnthropic, llms.ErrEmptyRequest)
	}

	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, m := range turns {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == llms.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = a.maxTokens
	}
	params := anthropic.MessageNewParams{
		Model:         anthropic.Model(req.Model),
		MaxTokens:     maxTokens,
		Messages:      messages,
		StopSequences: req.Stop,
	}
	if req.Temperature != nil {
		// The Messages API accepts [0, 1].
		params.Temperature = anthropic.Float(min(*req.Temperature, 1))
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	clog.FromContext(ctx).With("backend", VendorAnthropic).With("model", req.Model).Debug("Sending message")

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: create message: %w", VendorAnthropic, err)
	}

	a.metrics.RecordTokens(ctx, req.Model, message.Usage.InputTokens, message.Usage.OutputTokens)

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 && message.StopReason != anthropic.StopReasonMaxTokens {
		return nil, errors.New("anthropic: response contained no text")
	}

	model := string(message.Model)
	if model == "" {
		model = req.Model
	}
	return &llms.Response{
		Content:      text.String(),
		Model:        model,
		FinishReason: string(message.StopReason),
		Usage: llms.Usage{
			PromptTokens:     message.Usage.InputTokens,
			CompletionTokens: message.Usage.OutputTokens,
		},
	}, nil
}
