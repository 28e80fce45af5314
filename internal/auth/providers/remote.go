package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sayan-tan/Unicorn/internal/auth"
)

const loginPath = "/api/v1/auth/login"

// RemoteProvider authenticates against the analysis backend's login
// endpoint and carries the issued bearer token on the principal.
type RemoteProvider struct {
	BaseURL string
	HTTP    *http.Client
}

func NewRemoteProvider(baseURL string, timeout time.Duration) *RemoteProvider {
	return &RemoteProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (p *RemoteProvider) Name() string {
	return auth.MethodRemote
}

func (p *RemoteProvider) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return auth.Principal{}, fmt.Errorf("auth: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return auth.Principal{}, fmt.Errorf("auth: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("auth: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return auth.Principal{}, fmt.Errorf("auth: read response: %w", err)
	}

	var payload struct {
		Token  string `json:"token"`
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &payload)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return auth.Principal{}, auth.ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if payload.Detail != "" {
			return auth.Principal{}, fmt.Errorf("auth: backend returned %d: %s", resp.StatusCode, payload.Detail)
		}
		return auth.Principal{}, fmt.Errorf("auth: backend returned %d", resp.StatusCode)
	case payload.Token == "":
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	return auth.Principal{
		Email:  email,
		Token:  payload.Token,
		Method: auth.MethodRemote,
	}, nil
}
