// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nglebm19/debias-llm/internal/httputil"
)

// anthropicAPIURL is the Anthropic Messages API endpoint. Package-level var
// for test substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend generates text via the Anthropic Messages API.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// messagesRequest is the request body for the Messages API.
type messagesRequest struct {
	Model         string    `json:"model"`
	MaxTokens     int       `json:"max_tokens"`
	Temperature   float64   `json:"temperature,omitempty"`
	StopSequences []string  `json:"stop_sequences,omitempty"`
	Messages      []message `json:"messages"`
}

// message is a single message in the API conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from the Messages API.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// contentBlock is a content block in the API response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Init verifies that the backend is usable before the first call.
func (c *ClaudeBackend) Init(_ context.Context) error {
	if c.APIKey == "" {
		return fmt.Errorf("no API key configured")
	}
	if c.Model == "" {
		return fmt.Errorf("no model configured")
	}
	return nil
}

// Generate sends the prompt as a single user message and returns the
// concatenated text blocks of the completion.
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	reqBody := messagesRequest{
		Model:         c.Model,
		MaxTokens:     opts.MaxTokens,
		Temperature:   opts.Temperature,
		StopSequences: opts.StopSequences,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(body))
	}

	var mResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return "", fmt.Errorf("decoding Anthropic response: %w", err)
	}

	var b strings.Builder
	for _, block := range mResp.Content {
		if block.Type != "text" {
			continue
		}
		b.WriteString(block.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in Anthropic API response")
	}
	return b.String(), nil
}
