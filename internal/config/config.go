package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultAnalysisTimeout = 10 * time.Minute
	defaultSessionLifetime = 7 * 24 * time.Hour

	AuthModeRemote = "remote"
	AuthModeLocal  = "local"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	// MetricsAddr is the Prometheus listen address. Empty, "off",
	// "disabled", or "false" leave the metrics endpoint unserved.
	MetricsAddr       string
	AnalysisBaseURL   string
	AnalysisTimeout   time.Duration
	AuthCookieSecure  bool
	AuthMode          string
	AdminEmail        string
	AdminPasswordHash string
	SessionLifetime   time.Duration

	// Vault is an optional fallback source for the repository access
	// token when none has been saved through the UI.
	VaultAddr    string
	VaultToken   string
	VaultPATPath string
}

type LoadOptions struct {
	RequireDatabaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: false})
}

func LoadRequireDB() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPAddr:          getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		AnalysisBaseURL:   strings.TrimRight(getenvDefault("ANALYSIS_API_BASE_URL", "http://localhost:8000"), "/"),
		AnalysisTimeout:   defaultAnalysisTimeout,
		AuthCookieSecure:  getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		AuthMode:          strings.ToLower(strings.TrimSpace(getenvDefault("AUTH_MODE", AuthModeRemote))),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		SessionLifetime:   defaultSessionLifetime,
		VaultAddr:         strings.TrimSpace(os.Getenv("VAULT_ADDR")),
		VaultToken:        strings.TrimSpace(os.Getenv("VAULT_TOKEN")),
		VaultPATPath:      strings.TrimSpace(os.Getenv("VAULT_PAT_PATH")),
	}

	if v := os.Getenv("ANALYSIS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AnalysisTimeout = d
		}
	}
	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionLifetime = d
		}
	}

	switch cfg.AuthMode {
	case AuthModeRemote, AuthModeLocal:
	default:
		return cfg, errors.New("AUTH_MODE must be one of: remote, local")
	}
	if cfg.AuthMode == AuthModeLocal && (cfg.AdminEmail == "" || cfg.AdminPasswordHash == "") {
		return cfg, errors.New("AUTH_MODE=local requires ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
