// Package repos manages the configured repository list and the active
// repository selection.
package repos

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sayan-tan/Unicorn/internal/store"
)

type Repository struct {
	URL     string `json:"url"`
	PAT     string `json:"pat,omitempty"`
	AddedAt string `json:"addedAt"`
}

type AddResult struct {
	Duplicate bool
	// Switched reports that the active repository changed, which
	// cleared all cached scan results.
	Switched bool
}

// Invalidator fences in-flight analysis runs when the active
// repository changes.
type Invalidator interface {
	Invalidate()
}

type Service struct {
	Store store.Store
	Runs  Invalidator
	Now   func() time.Time
}

func NewService(s store.Store, runs Invalidator) *Service {
	return &Service{Store: s, Runs: runs, Now: time.Now}
}

// Add records a repository. A URL already present in the list is
// reported as a duplicate and changes nothing. A URL different from
// the currently active one clears every cached scan result before the
// new repository becomes active; re-adding the active URL keeps the
// cache.
func (s *Service) Add(ctx context.Context, url, pat string) (AddResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return AddResult{}, fmt.Errorf("repos: repository URL is required")
	}

	existing, err := s.list(ctx)
	if err != nil {
		return AddResult{}, err
	}
	for _, repo := range existing {
		if repo.URL == url {
			return AddResult{Duplicate: true}, nil
		}
	}

	currentURL, err := store.GetString(ctx, s.Store, store.KeyRepoURL)
	if err != nil {
		return AddResult{}, err
	}

	result := AddResult{}
	if currentURL != url {
		if err := s.Store.RemoveAll(ctx, store.ScanKeys()...); err != nil {
			return AddResult{}, err
		}
		if s.Runs != nil {
			s.Runs.Invalidate()
		}
		result.Switched = currentURL != ""
	}

	updated := append(existing, Repository{
		URL:     url,
		PAT:     pat,
		AddedAt: s.Now().UTC().Format(time.RFC3339),
	})
	encoded, err := json.Marshal(updated)
	if err != nil {
		return AddResult{}, fmt.Errorf("repos: encode list: %w", err)
	}
	if err := s.Store.Set(ctx, store.KeyRepos, encoded); err != nil {
		return AddResult{}, err
	}
	if err := s.Store.Set(ctx, store.KeyRepoURL, []byte(url)); err != nil {
		return AddResult{}, err
	}
	if pat != "" {
		if err := s.Store.Set(ctx, store.KeyGitHubPAT, []byte(pat)); err != nil {
			return AddResult{}, err
		}
	}
	return result, nil
}

// Latest returns the most recently added repository for form
// pre-filling.
func (s *Service) Latest(ctx context.Context) (Repository, bool, error) {
	list, err := s.list(ctx)
	if err != nil || len(list) == 0 {
		return Repository{}, false, err
	}
	return list[len(list)-1], true, nil
}

// ActiveURL returns the currently selected repository URL, if any.
func (s *Service) ActiveURL(ctx context.Context) (string, error) {
	return store.GetString(ctx, s.Store, store.KeyRepoURL)
}

func (s *Service) list(ctx context.Context) ([]Repository, error) {
	raw, ok, err := s.Store.Get(ctx, store.KeyRepos)
	if err != nil || !ok {
		return nil, err
	}
	var list []Repository
	if err := json.Unmarshal(raw, &list); err != nil {
		// A corrupt list starts over rather than blocking adds.
		return nil, nil
	}
	return list, nil
}
