/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llamacpp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainguard.dev/r2r/llms"
	"chainguard.dev/r2r/llms/llamacpp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	var (
		body map[string]any
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": "chatcmpl-local",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama-3.2-3b-instruct-q4_k_m.gguf",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "4"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 9, "completion_tokens": 1, "total_tokens": 10}
}`))
	}))
	defer srv.Close()

	c, err := llamacpp.New(llamacpp.Config{ServerURL: srv.URL + "/v1", MaxTokens: 16})
	require.NoError(t, err)
	assert.Equal(t, "llamacpp", c.Name())

	resp, err := c.Complete(context.Background(), llms.UserPrompt("", "2+2?"))
	require.NoError(t, err)

	assert.Equal(t, "4", resp.Content)
	assert.Equal(t, "llama-3.2-3b-instruct-q4_k_m.gguf", resp.Model)
	assert.Equal(t, llms.Usage{PromptTokens: 9, CompletionTokens: 1}, resp.Usage)

	assert.Equal(t, llamacpp.DefaultModel, body["model"])
	assert.EqualValues(t, 16, body["max_tokens"])
	assert.Equal(t, "Bearer sk-no-key-required", auth)
}

func TestNew_Defaults(t *testing.T) {
	c, err := llamacpp.New(llamacpp.Config{})
	require.NoError(t, err)
	assert.Equal(t, "llamacpp", c.Name())
}
