package providers

import (
	"context"
	"crypto/subtle"

	"github.com/sayan-tan/Unicorn/internal/auth"
)

// LocalProvider authenticates a single configured admin against an
// argon2id hash. It backs deployments that run without the analysis
// backend's auth service.
type LocalProvider struct {
	AdminEmail   string
	PasswordHash string
}

func NewLocalProvider(adminEmail, passwordHash string) *LocalProvider {
	return &LocalProvider{
		AdminEmail:   auth.NormalizeEmail(adminEmail),
		PasswordHash: passwordHash,
	}
}

func (p *LocalProvider) Name() string {
	return auth.MethodLocal
}

func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(p.AdminEmail)) != 1 {
		// Still burn a hash comparison so timing does not reveal
		// whether the email matched.
		_, _ = auth.ComparePassword(password, p.PasswordHash)
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, p.PasswordHash)
	if err != nil {
		return auth.Principal{}, err
	}
	if !match {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	return auth.Principal{Email: email, Method: auth.MethodLocal}, nil
}
