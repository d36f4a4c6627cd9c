/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llms defines the uniform call contract shared by the language model
// clients in its subpackages:
//
//   - openaillm: the OpenAI chat completions API
//   - llamacpp: a local llama.cpp server
//   - litellm: a single client that routes "vendor/model" names to OpenAI,
//     Anthropic, Gemini, Vertex AI or llama.cpp
//
// Each client delegates the wire protocol to the vendor SDK and only adapts
// Request and Response onto it.
package llms

import (
	"context"
	"errors"
	"fmt"
)

// Role is the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	// ErrEmptyRequest is returned when a request carries no messages.
	ErrEmptyRequest = errors.New("request has no messages")
	// ErrUnknownRole is returned when a message role is not recognized.
	ErrUnknownRole = errors.New("unknown message role")
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a completion request.
type Request struct {
	Messages []Message `json:"messages"`

	// Model overrides the client's configured model when set.
	Model string `json:"model,omitempty"`

	// Temperature is left to the backend default when nil.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens caps the completion length. Zero uses the client default.
	MaxTokens int64 `json:"max_tokens,omitempty"`

	Stop []string `json:"stop,omitempty"`
}

// Usage reports token consumption for one call.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens" yaml:"completion_tokens"`
}

// Response is the result of a completion.
type Response struct {
	Content      string `json:"content" yaml:"content"`
	Model        string `json:"model" yaml:"model"`
	FinishReason string `json:"finish_reason,omitempty" yaml:"finish_reason,omitempty"`
	Usage        Usage  `json:"usage" yaml:"usage"`
}

// Interface is implemented by every client.
type Interface interface {
	// Complete sends the conversation and returns the model's reply.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name identifies the backend (e.g. "openai", "llamacpp", "litellm").
	Name() string
}

// Validate checks that the request can be sent to any backend.
func (r *Request) Validate() error {
	if r == nil || len(r.Messages) == 0 {
		return ErrEmptyRequest
	}
	for i, m := range r.Messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("message %d: %w: %q", i, ErrUnknownRole, m.Role)
		}
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", *r.Temperature)
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", r.MaxTokens)
	}
	return nil
}

// SplitSystem separates leading system messages, joined with blank lines, from
// the rest of the conversation. Backends with a dedicated system field use it.
func (r *Request) SplitSystem() (string, []Message) {
	var system string
	rest := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}

// UserPrompt is a convenience for a single-turn request.
func UserPrompt(system, prompt string) *Request {
	req := &Request{}
	if system != "" {
		req.Messages = append(req.Messages, Message{Role: RoleSystem, Content: system})
	}
	req.Messages = append(req.Messages, Message{Role: RoleUser, Content: prompt})
	return req
}
