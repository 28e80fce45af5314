package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sayan-tan/Unicorn/internal/analysis"
	"github.com/sayan-tan/Unicorn/internal/auth/providers"
	"github.com/sayan-tan/Unicorn/internal/chat"
	"github.com/sayan-tan/Unicorn/internal/config"
	httpapp "github.com/sayan-tan/Unicorn/internal/http"
	"github.com/sayan-tan/Unicorn/internal/http/handlers"
	"github.com/sayan-tan/Unicorn/internal/logging"
	"github.com/sayan-tan/Unicorn/internal/metrics"
	"github.com/sayan-tan/Unicorn/internal/repos"
	"github.com/sayan-tan/Unicorn/internal/secrets"
	"github.com/sayan-tan/Unicorn/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "serve"})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime
	// Cookies default to per-session; the login form's remember-me
	// checkbox opts individual sessions into the persistent lifetime.
	sessions.Cookie.Persist = false
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cfg.AuthCookieSecure
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		st = store.NewPostgres(pool)
		sessions.Store = pgxstore.New(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	var tokens analysis.TokenSource
	if cfg.VaultAddr != "" {
		vault, err := secrets.NewVault(secrets.Options{
			Address: cfg.VaultAddr,
			Token:   cfg.VaultToken,
			Path:    cfg.VaultPATPath,
		})
		if err != nil {
			return err
		}
		tokens = vault
	}

	client := analysis.NewClient(cfg.AnalysisBaseURL, cfg.AnalysisTimeout)
	runner := analysis.NewRunner(st, client, tokens, logger)

	var provider providers.Provider
	switch cfg.AuthMode {
	case config.AuthModeLocal:
		provider = providers.NewLocalProvider(cfg.AdminEmail, cfg.AdminPasswordHash)
	default:
		provider = providers.NewRemoteProvider(cfg.AnalysisBaseURL, 30*time.Second)
	}

	h := &handlers.Handlers{
		Cfg:      cfg,
		Store:    st,
		Runner:   runner,
		Repos:    repos.NewService(st, runner),
		Chat:     chat.NewClient(cfg.AnalysisBaseURL, 60*time.Second),
		Sessions: sessions,
		Provider: provider,
		Log:      logger,
	}

	srv, err := httpapp.NewEchoServer(h)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	_, metricsErr := metrics.StartServer(ctx, cfg.MetricsAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		var cause error
		select {
		case <-gctx.Done():
		case cause = <-orNever(metricsErr):
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return cause
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// orNever wraps a possibly-nil error channel so a select can always
// include it.
func orNever(ch <-chan error) <-chan error {
	if ch != nil {
		return ch
	}
	return make(chan error)
}
