package viewmodels

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestBuildForksDialog(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"total_forks": 42,
		"forks": [
			{"fork_owner_avatar": "https://a/1.png", "fork_owner_name": "alice", "forked_repo_name": "widgets-fork"},
			{"fork_owner_avatar": "", "fork_owner_name": "bob", "forked_repo_name": "widgets"}
		]
	}`)
	data := BuildForksDialog(raw)
	if data.Count != 42 {
		t.Fatalf("count = %d", data.Count)
	}
	if len(data.Items) != 2 {
		t.Fatalf("items = %d", len(data.Items))
	}
	first := data.Items[0]
	if first.Avatar != "https://a/1.png" || first.OwnerName != "alice" || first.RepoName != "widgets-fork" {
		t.Fatalf("first item = %+v", first)
	}
}

func TestBuildForksDialogToleratesGarbage(t *testing.T) {
	t.Parallel()

	for _, raw := range [][]byte{nil, []byte("not json"), []byte(`{}`)} {
		data := BuildForksDialog(raw)
		if data.Count != 0 || len(data.Items) != 0 {
			t.Fatalf("raw %q: data = %+v", raw, data)
		}
	}
}

func TestBuildContributorsDialog(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"total_contributors": 7,
		"top_contributors": [
			{"login": "carol", "avatar_url": "https://a/c.png", "contributions": 310}
		]
	}`)
	data := BuildContributorsDialog(raw)
	if data.Count != 7 || len(data.Items) != 1 {
		t.Fatalf("data = %+v", data)
	}
	if data.Items[0].OwnerName != "carol" || data.Items[0].Contributions != 310 {
		t.Fatalf("item = %+v", data.Items[0])
	}
}

func issuesPayload(openedCount int) []byte {
	type issue struct {
		Number    int    `json:"number"`
		Title     string `json:"title"`
		State     string `json:"state"`
		CreatedAt string `json:"created_at"`
		User      string `json:"user"`
	}
	opened := make([]issue, 0, openedCount)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < openedCount; i++ {
		opened = append(opened, issue{
			Number:    i + 1,
			Title:     fmt.Sprintf("issue %d", i+1),
			State:     "open",
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour).Format(time.RFC3339),
			User:      "dave",
		})
	}
	raw, _ := json.Marshal(map[string]any{
		"opened_last_year": opened,
		"closed_last_year": []issue{},
	})
	return raw
}

func TestBuildIssuesDialogCapsListsButCountsEverything(t *testing.T) {
	t.Parallel()

	data := BuildIssuesDialog(issuesPayload(20))
	if data.OpenedCount != 20 {
		t.Fatalf("opened count = %d, want full payload length", data.OpenedCount)
	}
	if len(data.OpenedIssues) != 15 {
		t.Fatalf("opened list = %d, want capped at 15", len(data.OpenedIssues))
	}
	// Newest first: issue 20 was created last.
	if data.OpenedIssues[0].Number != 20 {
		t.Fatalf("first issue = %d, want newest", data.OpenedIssues[0].Number)
	}
	if data.OpenedIssues[14].Number != 6 {
		t.Fatalf("last shown issue = %d", data.OpenedIssues[14].Number)
	}
	if data.ClosedCount != 0 || len(data.ClosedIssues) != 0 {
		t.Fatalf("closed = %d/%d", data.ClosedCount, len(data.ClosedIssues))
	}
}

func TestBuildIssuesDialogUnparseableDatesSortLast(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"opened_last_year": [
			{"number": 1, "title": "bad date", "created_at": "yesterday-ish", "state": "open", "user": "x"},
			{"number": 2, "title": "good date", "created_at": "2026-05-01T00:00:00Z", "state": "open", "user": "x"}
		],
		"closed_last_year": []
	}`)
	data := BuildIssuesDialog(raw)
	if data.OpenedIssues[0].Number != 2 || data.OpenedIssues[1].Number != 1 {
		t.Fatalf("order = %+v", data.OpenedIssues)
	}
}

func TestBuildPullRequestsDialogIndependentFilters(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"total_pull_requests": 4,
		"open_pull_requests": 9,
		"merged_pull_requests": 17,
		"pull_requests": [
			{"number": 1, "title": "open one", "state": "OPEN", "created_at": "2026-01-01T00:00:00Z", "merged_at": null, "author": {"login": "a", "avatarUrl": null}, "url": "u1"},
			{"number": 2, "title": "merged one", "state": "MERGED", "created_at": "2026-01-02T00:00:00Z", "merged_at": "2026-01-03T00:00:00Z", "author": {"login": "b", "avatarUrl": "https://a/b.png"}, "url": "u2"},
			{"number": 3, "title": "open and merged", "state": "OPEN", "created_at": "2026-01-04T00:00:00Z", "merged_at": "2026-01-05T00:00:00Z", "author": {"login": "c", "avatarUrl": null}, "url": "u3"},
			{"number": 4, "title": "closed unmerged", "state": "CLOSED", "created_at": "2026-01-06T00:00:00Z", "merged_at": null, "author": {"login": "d", "avatarUrl": null}, "url": "u4"}
		]
	}`)
	data := BuildPullRequestsDialog(raw)

	// Counts come from the payload's summary fields, not the lists.
	if data.ActiveCount != 9 || data.MergedCount != 17 {
		t.Fatalf("counts = %d/%d", data.ActiveCount, data.MergedCount)
	}
	if len(data.ActiveItems) != 2 {
		t.Fatalf("active items = %d", len(data.ActiveItems))
	}
	if len(data.MergedItems) != 2 {
		t.Fatalf("merged items = %d", len(data.MergedItems))
	}
	// Number 3 satisfies both filters and appears in both lists.
	if data.ActiveItems[1].Number != 3 || data.MergedItems[1].Number != 3 {
		t.Fatalf("overlap missing: active=%+v merged=%+v", data.ActiveItems, data.MergedItems)
	}
	// Number 4 is closed without a merge and appears in neither.
	for _, item := range append(data.ActiveItems, data.MergedItems...) {
		if item.Number == 4 {
			t.Fatal("closed unmerged pull request leaked into a list")
		}
	}
}
