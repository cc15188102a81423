// Package llm is the boundary to the external text-completion service. It
// speaks the OpenAI-compatible chat-completions wire format and carries no
// retry, caching, or rate-limiting policy; those belong to callers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"geopolis/internal/config"

	"github.com/rs/zerolog/log"
)

// ErrNotConfigured marks a fatal configuration failure (missing credentials
// or model name), distinguishable from transport errors.
var ErrNotConfigured = errors.New("llm_not_configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type TokenUsage struct {
	Prompt     int `json:"prompt_tokens"`
	Completion int `json:"completion_tokens"`
	Total      int `json:"total_tokens"`
}

type Completion struct {
	Text  string
	Usage TokenUsage
}

type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

func New(cfg config.LLMConfig) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage TokenUsage `json:"usage"`
}

// Complete sends one system instruction plus conversation messages and
// returns the raw completion text with its token usage.
func (c *Client) Complete(ctx context.Context, system string, msgs []Message) (Completion, error) {
	if c.apiKey == "" {
		return Completion{}, fmt.Errorf("%w: missing API key", ErrNotConfigured)
	}
	if c.model == "" {
		return Completion{}, fmt.Errorf("%w: missing model name", ErrNotConfigured)
	}

	all := make([]Message, 0, len(msgs)+1)
	all = append(all, Message{Role: RoleSystem, Content: system})
	all = append(all, msgs...)

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: all, Temperature: c.temperature})
	if err != nil {
		return Completion{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Completion{}, fmt.Errorf("completion service status %d: %s", resp.StatusCode, truncateForError(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Completion{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Completion{}, errors.New("completion service returned no choices")
	}

	log.Debug().
		Int("prompt_tokens", parsed.Usage.Prompt).
		Int("completion_tokens", parsed.Usage.Completion).
		Int("total_tokens", parsed.Usage.Total).
		Msg("completion call")

	return Completion{Text: parsed.Choices[0].Message.Content, Usage: parsed.Usage}, nil
}

func truncateForError(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
