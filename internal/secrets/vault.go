// Package secrets resolves the repository access token from HashiCorp
// Vault when none is saved through the dashboard.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
)

const tokenField = "pat_token"

type Options struct {
	Address string
	Token   string
	// Path is the logical read path holding the access token,
	// for example "secret/data/unicorn/github".
	Path string
}

// Vault reads the GitHub access token from a fixed secret path.
type Vault struct {
	client *vaultapi.Client
	path   string
}

func NewVault(opts Options) (*Vault, error) {
	address := strings.TrimSpace(opts.Address)
	if address == "" {
		return nil, errors.New("vault address is required")
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, errors.New("vault secret path is required")
	}

	cfg := vaultapi.DefaultConfig()
	cfg.Address = address
	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client setup: %w", err)
	}
	if token := strings.TrimSpace(opts.Token); token != "" {
		client.SetToken(token)
	}
	return &Vault{client: client, path: path}, nil
}

// FetchToken reads the access token from the configured path. Both
// KV v2 payloads (nested under "data") and flat KV v1 payloads are
// accepted.
func (v *Vault) FetchToken(ctx context.Context) (string, error) {
	secret, err := v.client.Logical().ReadWithContext(ctx, v.path)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", v.path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("vault read %s: secret not found", v.path)
	}

	data := secret.Data
	if nested, ok := data["data"].(map[string]any); ok {
		data = nested
	}
	token, _ := data[tokenField].(string)
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("vault read %s: field %q missing or empty", v.path, tokenField)
	}
	return token, nil
}
