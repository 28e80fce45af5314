package analysis

import (
	"strings"

	"github.com/sayan-tan/Unicorn/internal/store"
)

// Kind is one category of analysis with its own endpoint and payload
// schema.
type Kind string

const (
	KindForks        Kind = "forks"
	KindContributors Kind = "contributors"
	KindIssues       Kind = "issues"
	KindPullRequests Kind = "pull_requests"
	KindSecurity     Kind = "security"
	KindQuality      Kind = "quality"
)

// Definition is the per-kind policy: where the raw payload lives, which
// endpoint produces it, how the request body is encoded, and whether an
// empty cache may trigger a live fetch when its dialog opens.
type Definition struct {
	Kind       Kind
	Label      string
	StorageKey string
	Path       string

	// CamelCaseBody selects the {repoUrl, patToken} body encoding used
	// by the quality endpoint; everything else takes {repo_url, pat_token}.
	CamelCaseBody bool

	// FetchIfEmpty allows the dialog handler to issue a live call when
	// the cache is empty. Only pull requests carries this behavior.
	FetchIfEmpty bool
}

var definitions = map[Kind]Definition{
	KindForks: {
		Kind:       KindForks,
		Label:      "Repository Forks",
		StorageKey: store.KeyForks,
		Path:       "/api/v1/github/forks",
	},
	KindContributors: {
		Kind:       KindContributors,
		Label:      "Top Contributors",
		StorageKey: store.KeyContributors,
		Path:       "/api/v1/github/contributors",
	},
	KindIssues: {
		Kind:       KindIssues,
		Label:      "GitHub Issues",
		StorageKey: store.KeyIssues,
		Path:       "/api/v1/github/issues",
	},
	KindPullRequests: {
		Kind:         KindPullRequests,
		Label:        "Pull Requests",
		StorageKey:   store.KeyPullRequests,
		Path:         "/api/v1/github/pull-requests",
		FetchIfEmpty: true,
	},
	KindSecurity: {
		Kind:       KindSecurity,
		Label:      "Security & Threats",
		StorageKey: store.KeySecurity,
		Path:       "/api/v1/sast/scan",
	},
	KindQuality: {
		Kind:          KindQuality,
		Label:         "Health & Quality",
		StorageKey:    store.KeyQuality,
		Path:          "/api/v1/scan/code_quality.api",
		CamelCaseBody: true,
	},
}

// InsightKinds are the GitHub sub-endpoints issued concurrently within
// one run.
func InsightKinds() []Kind {
	return []Kind{KindForks, KindContributors, KindIssues, KindPullRequests}
}

func Lookup(kind Kind) (Definition, bool) {
	def, ok := definitions[kind]
	return def, ok
}

func (k Kind) Definition() Definition {
	return definitions[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a URL/form value to a Kind.
func ParseKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "forks":
		return KindForks, true
	case "contributors":
		return KindContributors, true
	case "issues":
		return KindIssues, true
	case "pull-requests", "pull_requests":
		return KindPullRequests, true
	case "security":
		return KindSecurity, true
	case "quality":
		return KindQuality, true
	default:
		return "", false
	}
}
