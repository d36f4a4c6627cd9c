/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainguard.dev/r2r/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T) (*httptest.Server, *map[string]any) {
	t.Helper()
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello back."}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 4, "completion_tokens": 3, "total_tokens": 7}
}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &body
}

func TestComplete_OpenAI(t *testing.T) {
	srv, body := openAIServer(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	out, err := runCommand(t, "", "complete", "--backend", "openai", "--system", "Be polite.", "--temperature", "0", "Hello", "there")
	require.NoError(t, err)
	assert.Equal(t, "Hello back.\n", out)

	msgs, ok := (*body)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hello there", msgs[1].(map[string]any)["content"])
	assert.Contains(t, *body, "temperature")
}

func TestComplete_LiteLLMFromStdin(t *testing.T) {
	srv, body := openAIServer(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	out, err := runCommand(t, "  ping \n", "complete", "--model", "openai/gpt-4o", "-o", "json")
	require.NoError(t, err)

	var got llms.Response
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Hello back.", got.Content)
	assert.Equal(t, llms.Usage{PromptTokens: 4, CompletionTokens: 3}, got.Usage)

	assert.Equal(t, "gpt-4o", (*body)["model"])
	assert.NotContains(t, *body, "temperature")
}

func TestComplete_Errors(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{{
		name:    "unknown backend",
		args:    []string{"complete", "--backend", "bard", "hi"},
		wantErr: `unknown backend "bard"`,
	}, {
		name:    "empty prompt",
		stdin:   "   ",
		args:    []string{"complete"},
		wantErr: "no prompt",
	}, {
		name:    "openai without key",
		args:    []string{"complete", "--backend", "openai", "hi"},
		wantErr: "API key",
	}, {
		name:    "litellm unknown vendor",
		args:    []string{"complete", "--model", "cohere/command-r", "hi"},
		wantErr: `unknown vendor "cohere"`,
	}, {
		name:    "bad output format",
		args:    []string{"complete", "-o", "table", "hi"},
		wantErr: "unsupported output format",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
