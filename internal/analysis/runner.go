package analysis

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sayan-tan/Unicorn/internal/metrics"
	"github.com/sayan-tan/Unicorn/internal/store"
)

const insightWorkers = 4

// TokenSource is an optional fallback supplier for the repository access
// token when none is saved in the store.
type TokenSource interface {
	FetchToken(ctx context.Context) (string, error)
}

// Selection names the analysis groups picked in the run dialog.
type Selection struct {
	Insights bool
	Security bool
	Quality  bool
}

func (s Selection) Empty() bool {
	return !s.Insights && !s.Security && !s.Quality
}

// Result is the outcome of one sub-call within a run.
type Result struct {
	Kind Kind
	Err  error
}

// Report summarizes a run: each attempted kind with its error, if any.
type Report struct {
	RunID   string
	Results []Result
}

func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Runner executes "Run Analysis" actions: it resolves preconditions from
// the store, issues the selected endpoint calls (insight sub-calls
// concurrently), and persists each successful raw payload independently.
// A failed call never overwrites a prior cached result.
type Runner struct {
	Store  store.Store
	Client *Client
	Tokens TokenSource
	Log    *slog.Logger

	// generation fences stale writes: it is bumped whenever the active
	// repository changes, and any result fetched under an older
	// generation is discarded instead of persisted.
	generation atomic.Uint64
}

func NewRunner(s store.Store, c *Client, tokens TokenSource, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{Store: s, Client: c, Tokens: tokens, Log: log}
}

// Generation returns the current store generation.
func (r *Runner) Generation() uint64 {
	return r.generation.Load()
}

// Invalidate bumps the generation. Callers clear the scan keys
// themselves; the bump only fences in-flight runs.
func (r *Runner) Invalidate() {
	r.generation.Add(1)
	metrics.CacheInvalidationsTotal.Inc()
}

// Preconditions loads the saved repository URL and access token,
// falling back to the configured token source for the token.
func (r *Runner) Preconditions(ctx context.Context) (repoURL, token string, err error) {
	repoURL, err = store.GetString(ctx, r.Store, store.KeyRepoURL)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(repoURL) == "" {
		return "", "", ErrMissingRepoURL
	}

	token, err = store.GetString(ctx, r.Store, store.KeyGitHubPAT)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(token) == "" && r.Tokens != nil {
		token, err = r.Tokens.FetchToken(ctx)
		if err != nil {
			r.Log.Warn("token source lookup failed", "error", err)
			token = ""
		}
	}
	if strings.TrimSpace(token) == "" {
		return "", "", ErrMissingToken
	}
	return repoURL, token, nil
}

// Run executes the selected analysis groups and reports per-kind
// outcomes. Insight sub-calls run concurrently with no completion
// ordering; a failing sub-call neither delays nor voids the others.
func (r *Runner) Run(ctx context.Context, sel Selection) (Report, error) {
	report := Report{RunID: uuid.NewString()}

	repoURL, token, err := r.Preconditions(ctx)
	if err != nil {
		return report, err
	}

	gen := r.generation.Load()

	var kinds []Kind
	if sel.Insights {
		kinds = append(kinds, InsightKinds()...)
	}

	for _, res := range parallelCollect(ctx, kinds, insightWorkers, func(ctx context.Context, kind Kind) (struct{}, error) {
		return struct{}{}, r.fetchAndPersist(ctx, kind, repoURL, token, gen)
	}) {
		report.Results = append(report.Results, Result{Kind: res.Item, Err: res.Err})
	}

	if sel.Security {
		report.Results = append(report.Results, Result{
			Kind: KindSecurity,
			Err:  r.fetchAndPersist(ctx, KindSecurity, repoURL, token, gen),
		})
	}
	if sel.Quality {
		report.Results = append(report.Results, Result{
			Kind: KindQuality,
			Err:  r.fetchAndPersist(ctx, KindQuality, repoURL, token, gen),
		})
	}

	for _, res := range report.Results {
		if res.Err != nil {
			r.Log.Warn("analysis sub-call failed", "run_id", report.RunID, "kind", res.Kind, "error", res.Err)
		}
	}
	return report, nil
}

// FetchAndStore issues a single live call for kind and persists the
// result. It backs the fetch-if-empty dialog path.
func (r *Runner) FetchAndStore(ctx context.Context, kind Kind) ([]byte, error) {
	repoURL, token, err := r.Preconditions(ctx)
	if err != nil {
		return nil, err
	}
	gen := r.generation.Load()

	raw, err := r.runInstrumented(ctx, kind, repoURL, token)
	if err != nil {
		return nil, err
	}
	if err := r.persist(ctx, kind, raw, gen); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Runner) fetchAndPersist(ctx context.Context, kind Kind, repoURL, token string, gen uint64) error {
	raw, err := r.runInstrumented(ctx, kind, repoURL, token)
	if err != nil {
		return err
	}
	return r.persist(ctx, kind, raw, gen)
}

func (r *Runner) runInstrumented(ctx context.Context, kind Kind, repoURL, token string) ([]byte, error) {
	start := time.Now()
	raw, err := r.Client.Run(ctx, kind, repoURL, token)
	metrics.AnalysisDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.AnalysisRunsTotal.WithLabelValues(kind.String(), status).Inc()
	return raw, err
}

func (r *Runner) persist(ctx context.Context, kind Kind, raw []byte, gen uint64) error {
	if r.generation.Load() != gen {
		metrics.StaleResultsDiscardedTotal.WithLabelValues(kind.String()).Inc()
		r.Log.Info("discarding stale analysis result", "kind", kind)
		return nil
	}
	return r.Store.Set(ctx, kind.Definition().StorageKey, raw)
}
