/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parea_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainguard.dev/r2r/eval"
	"chainguard.dev/r2r/eval/parea"
	"github.com/google/go-cmp/cmp"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     parea.Config
		wantErr bool
	}{
		{name: "valid", cfg: parea.Config{BaseURL: "https://parea.example/api", APIKey: "k"}},
		{name: "missing url", cfg: parea.Config{APIKey: "k"}, wantErr: true},
		{name: "missing key", cfg: parea.Config{BaseURL: "https://parea.example/api"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parea.New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScoreOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/evaluate" {
			t.Errorf("path = %q, want /api/evaluate", r.URL.Path)
		}
		if got := r.Header.Get("x-user-id"); got != "key" {
			t.Errorf("x-user-id = %q, want key", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
			return
		}
		wantBody := map[string]any{
			"inputs":     map[string]any{"query": "Q", "context": "C"},
			"output":     "A",
			"eval_names": []any{"context_relevancy", "answer_relevancy"},
		}
		if diff := cmp.Diff(wantBody, body); diff != "" {
			t.Errorf("request body mismatch (-want +got):\n%s", diff)
		}

		_, _ = w.Write([]byte(`{"scores":[
			{"name":"context_relevancy","score":0.8},
			{"name":"answer_relevancy","score":0.65,"reason":"partially answers"}
		]}`))
	}))
	defer srv.Close()

	s, err := parea.New(parea.Config{
		BaseURL:   srv.URL + "/api",
		APIKey:    "key",
		EvalNames: []string{"context_relevancy", "answer_relevancy"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := s.ScoreOne(context.Background(), "Q", "C", "A")
	if err != nil {
		t.Fatalf("ScoreOne() error = %v", err)
	}
	want := eval.Result{
		"context_relevancy": {"score": 0.8},
		"answer_relevancy":  {"score": 0.65, "reason": "partially answers"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScoreOne() mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreOne_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"unnamed":  `{"scores":[{"score":1}]}`,
		"no score": `{"scores":[{"name":"x"}]}`,
		"not json": `<html>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			s, err := parea.New(parea.Config{BaseURL: srv.URL, APIKey: "k"})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if _, err := s.ScoreOne(context.Background(), "q", "c", "a"); err == nil {
				t.Error("ScoreOne() succeeded, want error")
			}
		})
	}
}
