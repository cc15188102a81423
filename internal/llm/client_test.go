package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"geopolis/internal/config"
)

func TestCompleteMissingKeyIsNotConfigured(t *testing.T) {
	c := New(config.LLMConfig{Model: "m"})
	_, err := c.Complete(context.Background(), "sys", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCompleteMissingModelIsNotConfigured(t *testing.T) {
	c := New(config.LLMConfig{APIKey: "k"})
	_, err := c.Complete(context.Background(), "sys", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCompleteRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("auth header = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) == 0 || req.Messages[0].Role != RoleSystem {
			t.Errorf("expected leading system message, got %+v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "hello"}}},
			"usage":   map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	defer srv.Close()

	c := New(config.LLMConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	got, err := c.Complete(context.Background(), "sys", []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Text != "hello" {
		t.Fatalf("text = %q, want hello", got.Text)
	}
	if got.Usage.Total != 15 {
		t.Fatalf("usage total = %d, want 15", got.Usage.Total)
	}
}

func TestCompleteTransportErrorIsNotConfigError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(config.LLMConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "sys", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Fatalf("transport error must not wrap ErrNotConfigured: %v", err)
	}
}
