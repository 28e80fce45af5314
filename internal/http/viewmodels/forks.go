package viewmodels

import "encoding/json"

type ForkItem struct {
	Avatar    string
	RepoName  string
	OwnerName string
}

type ForksDialogData struct {
	Count int
	Items []ForkItem
}

// BuildForksDialog maps the cached forks payload into dialog rows.
// Unparseable or missing data yields an empty dialog.
func BuildForksDialog(raw []byte) ForksDialogData {
	var payload struct {
		TotalForks int `json:"total_forks"`
		Forks      []struct {
			ForkOwnerAvatar string `json:"fork_owner_avatar"`
			ForkOwnerName   string `json:"fork_owner_name"`
			ForkedRepoName  string `json:"forked_repo_name"`
		} `json:"forks"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ForksDialogData{}
	}

	items := make([]ForkItem, 0, len(payload.Forks))
	for _, fork := range payload.Forks {
		items = append(items, ForkItem{
			Avatar:    fork.ForkOwnerAvatar,
			RepoName:  fork.ForkedRepoName,
			OwnerName: fork.ForkOwnerName,
		})
	}
	return ForksDialogData{Count: payload.TotalForks, Items: items}
}
