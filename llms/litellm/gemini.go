/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package litellm

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/metrics"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// geminiConfig selects the Gemini API when apiKey is set and Vertex AI
// otherwise.
type geminiConfig struct {
	apiKey     string
	baseURL    string
	project    string
	location   string
	maxTokens  int64
	httpClient *http.Client
}

type geminiClient struct {
	name      string
	client    *genai.Client
	maxTokens int64
	metrics   *metrics.GenAI
}

func newGemini(ctx context.Context, name string, cfg geminiConfig) (*geminiClient, error) {
	cc := &genai.ClientConfig{
		HTTPClient: cfg.httpClient,
	}
	if cfg.apiKey != "" {
		cc.APIKey = cfg.apiKey
		cc.Backend = genai.BackendGeminiAPI
	} else {
		cc.Project = cfg.project
		cc.Location = cfg.location
		cc.Backend = genai.BackendVertexAI
	}
	if cfg.baseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.baseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create Google AI client: %w", name, err)
	}
	return &geminiClient{
		name:      name,
		client:    client,
		maxTokens: cfg.maxTokens,
		metrics:   metrics.NewGenAI(name),
	}, nil
}

func (g *geminiClient) Name() string {
	return g.name
}

func (g *geminiClient) Complete(ctx context.Context, req *llms.Request) (resp *llms.Response, err error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.name, err)
	}
	defer func() { g.metrics.RecordRequest(ctx, req.Model, err) }()

	system, turns := req.SplitSystem()
	if len(turns) == 0 {
		return nil, fmt.Errorf("%s: %w", g.name, llms.ErrEmptyRequest)
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		role := "user"
		if m.Role == llms.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	config := &genai.GenerateContentConfig{
		StopSequences: req.Stop,
	}
	if req.Temperature != nil {
		config.Temperature = ptr(float32(*req.Temperature))
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.maxTokens
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(min(maxTokens, math.MaxInt32))
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	clog.FromContext(ctx).With("backend", g.name).With("model", req.Model).Debug("Generating content")

	response, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("%s: generate content: %w", g.name, err)
	}
	if len(response.Candidates) == 0 {
		return nil, fmt.Errorf("%s: no candidates in response", g.name)
	}

	var usage llms.Usage
	if response.UsageMetadata != nil {
		usage.PromptTokens = int64(response.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int64(response.UsageMetadata.CandidatesTokenCount)
		g.metrics.RecordTokens(ctx, req.Model, usage.PromptTokens, usage.CompletionTokens)
	}

	model := response.ModelVersion
	if model == "" {
		model = req.Model
	}
	return &llms.Response{
		Content:      response.Text(),
		Model:        model,
		FinishReason: string(response.Candidates[0].FinishReason),
		Usage:        usage,
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
