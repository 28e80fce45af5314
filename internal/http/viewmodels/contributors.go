package viewmodels

import "encoding/json"

type ContributorItem struct {
	Avatar        string
	OwnerName     string
	Contributions int
}

type ContributorsDialogData struct {
	Count int
	Items []ContributorItem
}

func BuildContributorsDialog(raw []byte) ContributorsDialogData {
	var payload struct {
		TotalContributors int `json:"total_contributors"`
		TopContributors   []struct {
			Login         string `json:"login"`
			AvatarURL     string `json:"avatar_url"`
			Contributions int    `json:"contributions"`
		} `json:"top_contributors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ContributorsDialogData{}
	}

	items := make([]ContributorItem, 0, len(payload.TopContributors))
	for _, c := range payload.TopContributors {
		items = append(items, ContributorItem{
			Avatar:        c.AvatarURL,
			OwnerName:     c.Login,
			Contributions: c.Contributions,
		})
	}
	return ContributorsDialogData{Count: payload.TotalContributors, Items: items}
}
