/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/litellm"
	"chainguard.dev/r2r/llms/llamacpp"
	"chainguard.dev/r2r/llms/openaillm"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
)

// llmConfig holds backend credentials, read from the environment.
type llmConfig struct {
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	OpenAIOrganization string `env:"OPENAI_ORGANIZATION"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`

	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiBaseURL  string `env:"GEMINI_BASE_URL"`
	VertexProject  string `env:"VERTEX_PROJECT"`
	VertexLocation string `env:"VERTEX_LOCATION,default=us-central1"`

	LlamaCppURL    string `env:"LLAMACPP_URL,default=http://localhost:8080/v1"`
	LlamaCppAPIKey string `env:"LLAMACPP_API_KEY"`

	DefaultModel string `env:"LITELLM_DEFAULT_MODEL"`
}

const (
	backendOpenAI   = "openai"
	backendLlamaCpp = "llamacpp"
	backendLiteLLM  = "litellm"
)

type completeOptions struct {
	backend     string
	model       string
	system      string
	maxTokens   int64
	temperature float64
	output      string
}

func newCompleteCommand() *cobra.Command {
	opts := &completeOptions{}

	cmd := &cobra.Command{
		Use:   "complete [prompt...]",
		Short: "Send one prompt to a language model backend",
		Long: `Send a single-turn prompt to a language model and print the reply.

The prompt is taken from the arguments, or from standard input when none
are given. With --backend litellm the model name selects the vendor, e.g.
anthropic/claude-sonnet-4-5 or gemini/gemini-2.5-flash.`,
		Example: `  r2reval complete --backend openai "Summarize RAG in one line"
  echo "hello" | r2reval complete --backend litellm --model anthropic/claude-haiku-4-5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.backend, "backend", "b", backendLiteLLM, "Backend: openai, llamacpp or litellm")
	f.StringVarP(&opts.model, "model", "m", "", "Model name (backend default when empty)")
	f.StringVar(&opts.system, "system", "", "System prompt")
	f.Int64Var(&opts.maxTokens, "max-tokens", 0, "Cap on completion tokens")
	f.Float64Var(&opts.temperature, "temperature", 0, "Sampling temperature")
	f.StringVarP(&opts.output, "output", "o", formatText, "Output format: text, json or yaml")

	return cmd
}

func runComplete(cmd *cobra.Command, opts *completeOptions, args []string) error {
	if err := checkFormat(opts.output, formatText, formatJSON, formatYAML); err != nil {
		return err
	}
	ctx := cmd.Context()

	prompt := strings.Join(args, " ")
	if prompt == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading prompt: %w", err)
		}
		prompt = strings.TrimSpace(string(b))
	}
	if prompt == "" {
		return errors.New("no prompt given")
	}

	var cfg llmConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return fmt.Errorf("processing LLM config: %w", err)
	}

	client, err := newLLM(opts.backend, cfg)
	if err != nil {
		return err
	}

	req := llms.UserPrompt(opts.system, prompt)
	req.Model = opts.model
	req.MaxTokens = opts.maxTokens
	if cmd.Flags().Changed("temperature") {
		req.Temperature = &opts.temperature
	}

	resp, err := client.Complete(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == formatText {
		_, err := fmt.Fprintln(out, resp.Content)
		return err
	}
	return encode(out, opts.output, resp)
}

func newLLM(backend string, cfg llmConfig) (llms.Interface, error) {
	switch backend {
	case backendOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey:       cfg.OpenAIAPIKey,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrganization,
		})
	case backendLlamaCpp:
		return llamacpp.New(llamacpp.Config{
			ServerURL: cfg.LlamaCppURL,
			APIKey:    cfg.LlamaCppAPIKey,
		})
	case backendLiteLLM:
		return litellm.New(litellm.Config{
			DefaultModel:     cfg.DefaultModel,
			OpenAIAPIKey:     cfg.OpenAIAPIKey,
			OpenAIBaseURL:    cfg.OpenAIBaseURL,
			AnthropicAPIKey:  cfg.AnthropicAPIKey,
			AnthropicBaseURL: cfg.AnthropicBaseURL,
			GeminiAPIKey:     cfg.GeminiAPIKey,
			GeminiBaseURL:    cfg.GeminiBaseURL,
			VertexProject:    cfg.VertexProject,
			VertexLocation:   cfg.VertexLocation,
			LlamaCppURL:      cfg.LlamaCppURL,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", backend, backendOpenAI, backendLlamaCpp, backendLiteLLM)
	}
}
