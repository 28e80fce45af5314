// Package store is the key-value persistence layer for scan results and
// repository session state. Values are opaque JSON documents; a key holds
// exactly the last successful write, and failed analysis calls never reach
// the store.
package store

import "context"

// Keys mirror the storage contract of the dashboard: one entry per scan
// kind plus the active repository URL, its access token, and the list of
// repositories added so far.
const (
	KeyRepoURL      = "repo_url"
	KeyGitHubPAT    = "github_pat"
	KeyRepos        = "repos"
	KeyForks        = "github_forks"
	KeyContributors = "github_contributors"
	KeyIssues       = "github_issues"
	KeyPullRequests = "github_pull_requests"
	KeySecurity     = "sast_security_threats"
	KeyQuality      = "codeQualityResult"
)

// ScanKeys lists every cached scan-result key, in the order they are
// cleared when the active repository changes.
func ScanKeys() []string {
	return []string{
		KeyForks,
		KeyContributors,
		KeyIssues,
		KeyPullRequests,
		KeySecurity,
		KeyQuality,
	}
}

// Store is a key-value JSON store. Implementations must treat values as
// opaque and must not partially update them.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// RemoveAll deletes every given key.
	RemoveAll(ctx context.Context, keys ...string) error
}

// GetString is a convenience wrapper for keys that hold plain strings
// rather than JSON documents.
func GetString(ctx context.Context, s Store, key string) (string, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}
