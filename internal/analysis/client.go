// Package analysis talks to the external analysis services and
// orchestrates "Run Analysis" actions. It performs no analysis itself;
// every payload it handles is an opaque JSON document owned by the
// upstream service.
package analysis

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

const defaultTimeout = 10 * time.Minute

// Client issues requests to the analysis endpoints. It never persists
// anything; storage is the caller's responsibility.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Run invokes the endpoint for kind and returns the raw JSON body.
// Empty inputs are precondition failures, not network errors. No
// retries are performed; every call is a single best-effort attempt.
func (c *Client) Run(ctx context.Context, kind Kind, repoURL, token string) ([]byte, error) {
	def, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("unknown analysis kind %q", kind)
	}
	if strings.TrimSpace(repoURL) == "" {
		return nil, ErrMissingRepoURL
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	body, err := encodeRunBody(def, repoURL, token)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+def.Path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "unicorn")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			Kind:          kind,
			Status:        resp.StatusCode,
			ServerMessage: extractServerMessage(raw),
		}
	}
	if !json.Valid(raw) {
		return nil, ErrMalformedResponse
	}
	return raw, nil
}

func encodeRunBody(def Definition, repoURL, token string) ([]byte, error) {
	if def.CamelCaseBody {
		return json.Marshal(map[string]string{
			"repoUrl":  repoURL,
			"patToken": token,
		})
	}
	return json.Marshal(map[string]string{
		"repo_url":  repoURL,
		"pat_token": token,
	})
}

// extractServerMessage pulls the human-readable error the services put
// in their failure bodies: FastAPI-style {"detail": ...} first, then
// the generic {"error": ...} and {"message": ...} spellings.
func extractServerMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, msg := range []string{payload.Detail, payload.Error, payload.Message} {
		if strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg)
		}
	}
	return ""
}
