// Package chat proxies dashboard questions to the analysis backend's
// chatbot endpoint.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const chatPath = "/api/v1/chatbot/chat"

const fallbackReply = "Sorry, I encountered an error. Please try again."

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Ask sends a question with the caller's bearer token and returns the
// assistant reply. The backend's answer field is preferred, with
// message and reply as fallbacks.
func (c *Client) Ask(ctx context.Context, question, token string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("chat: empty question")
	}

	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", fmt.Errorf("chat: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("chat: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat: backend returned status %d", resp.StatusCode)
	}

	var payload struct {
		Answer  string `json:"answer"`
		Message string `json:"message"`
		Reply   string `json:"reply"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	for _, candidate := range []string{payload.Answer, payload.Message, payload.Reply} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("chat: empty reply")
}

// FallbackReply is shown in place of an assistant answer when the
// backend call fails.
func FallbackReply() string {
	return fallbackReply
}
