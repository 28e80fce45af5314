package viewmodels

import (
	"encoding/json"
	"sort"
	"time"
)

// issueDisplayCap bounds the rendered list; counts still reflect the
// full payload.
const issueDisplayCap = 15

type IssueItem struct {
	Number    int
	Title     string
	State     string
	CreatedAt string
	ClosedAt  string
	User      string
}

type IssuesDialogData struct {
	OpenedCount  int
	ClosedCount  int
	OpenedIssues []IssueItem
	ClosedIssues []IssueItem
}

func BuildIssuesDialog(raw []byte) IssuesDialogData {
	var payload struct {
		OpenedLastYear []issuePayload `json:"opened_last_year"`
		ClosedLastYear []issuePayload `json:"closed_last_year"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return IssuesDialogData{}
	}
	return IssuesDialogData{
		OpenedCount:  len(payload.OpenedLastYear),
		ClosedCount:  len(payload.ClosedLastYear),
		OpenedIssues: newestIssues(payload.OpenedLastYear),
		ClosedIssues: newestIssues(payload.ClosedLastYear),
	}
}

type issuePayload struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	State     string  `json:"state"`
	CreatedAt string  `json:"created_at"`
	ClosedAt  *string `json:"closed_at"`
	User      string  `json:"user"`
}

// newestIssues sorts newest-first by creation time and caps the list.
// Timestamps that fail to parse sort to the end.
func newestIssues(issues []issuePayload) []IssueItem {
	items := make([]IssueItem, 0, len(issues))
	for _, issue := range issues {
		item := IssueItem{
			Number:    issue.Number,
			Title:     issue.Title,
			State:     issue.State,
			CreatedAt: issue.CreatedAt,
			User:      issue.User,
		}
		if issue.ClosedAt != nil {
			item.ClosedAt = *issue.ClosedAt
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return parseIssueTime(items[i].CreatedAt).After(parseIssueTime(items[j].CreatedAt))
	})
	if len(items) > issueDisplayCap {
		items = items[:issueDisplayCap]
	}
	return items
}

func parseIssueTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
