package viewmodels

import "encoding/json"

type PullRequestItem struct {
	Number       int
	Title        string
	State        string
	CreatedAt    string
	MergedAt     string
	AuthorLogin  string
	AuthorAvatar string
	URL          string
}

type PullRequestsDialogData struct {
	ActiveCount int
	MergedCount int
	ActiveItems []PullRequestItem
	MergedItems []PullRequestItem
}

// BuildPullRequestsDialog splits the payload into active and merged
// views. The filters are independent: a merged pull request that is
// somehow still OPEN appears in both lists. Counts come from the
// payload's own summary fields, not the filtered lists.
func BuildPullRequestsDialog(raw []byte) PullRequestsDialogData {
	var payload struct {
		OpenPullRequests   int `json:"open_pull_requests"`
		MergedPullRequests int `json:"merged_pull_requests"`
		PullRequests       []struct {
			Number    int     `json:"number"`
			Title     string  `json:"title"`
			State     string  `json:"state"`
			CreatedAt string  `json:"created_at"`
			MergedAt  *string `json:"merged_at"`
			Author    struct {
				Login     string  `json:"login"`
				AvatarURL *string `json:"avatarUrl"`
			} `json:"author"`
			URL string `json:"url"`
		} `json:"pull_requests"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return PullRequestsDialogData{}
	}

	data := PullRequestsDialogData{
		ActiveCount: payload.OpenPullRequests,
		MergedCount: payload.MergedPullRequests,
	}
	for _, pr := range payload.PullRequests {
		item := PullRequestItem{
			Number:      pr.Number,
			Title:       pr.Title,
			State:       pr.State,
			CreatedAt:   pr.CreatedAt,
			AuthorLogin: pr.Author.Login,
			URL:         pr.URL,
		}
		if pr.Author.AvatarURL != nil {
			item.AuthorAvatar = *pr.Author.AvatarURL
		}
		if pr.MergedAt != nil {
			item.MergedAt = *pr.MergedAt
		}
		if pr.State == "OPEN" {
			data.ActiveItems = append(data.ActiveItems, item)
		}
		if pr.MergedAt != nil {
			data.MergedItems = append(data.MergedItems, item)
		}
	}
	return data
}
