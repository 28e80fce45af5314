package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

type InsightsViewData struct {
	Layout  viewmodels.LayoutData
	HasData bool
}

var insightCards = []struct {
	Dialog      string
	Title       string
	Description string
}{
	{"pull-requests", "Pull Requests", "See open and merged pull requests and their activity."},
	{"issues", "GitHub Issues", "Track open and closed issues and their recent activity."},
	{"forks", "Repository Forks", "See who has forked your repository and when."},
	{"contributors", "Top Contributors", "View the most active contributors to your repository."},
}

func InsightsPage(data InsightsViewData) templ.Component {
	body := component(func(w io.Writer) error {
		if !data.HasData {
			return noData(w,
				"No GitHub Insights Available",
				"Run a GitHub analysis to see insights about forks, contributors, issues, and pull requests for your repository.",
			)
		}
		if err := writeAll(w, `<div class="insight-cards">`); err != nil {
			return err
		}
		for _, card := range insightCards {
			if err := writeAll(w,
				`<a class="insight-card" href="/github-insights/dialogs/`, card.Dialog, `">`,
				`<h2>`, esc(card.Title), `</h2><p>`, esc(card.Description), `</p></a>`,
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</div>`)
	})
	return Page(data.Layout, body)
}

func noData(w io.Writer, title, description string) error {
	return writeAll(w,
		`<section class="no-data"><h2>`, esc(title), `</h2>`,
		`<p>`, esc(description), `</p>`,
		`<a class="button" href="/">Run Analysis</a></section>`,
	)
}

// dialogShell frames a dialog page with its label and count badge.
func dialogShell(w io.Writer, label string, count int, body func(io.Writer) error) error {
	if err := writeAll(w,
		`<section class="dialog"><header><h2>`, esc(label), `</h2>`,
		`<span class="dialog-count">`, FormatInt(count), `</span></header>`,
	); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	return writeAll(w, `</section>`)
}

func ForksDialog(layout viewmodels.LayoutData, data viewmodels.ForksDialogData) templ.Component {
	body := component(func(w io.Writer) error {
		return dialogShell(w, "Repository Forks", data.Count, func(w io.Writer) error {
			if err := writeAll(w, `<ul class="avatar-list">`); err != nil {
				return err
			}
			for _, item := range data.Items {
				if err := writeAll(w,
					`<li><img src="`, esc(item.Avatar), `" alt="" class="avatar">`,
					`<span class="repo">`, esc(item.RepoName), `</span>`,
					`<span class="owner">`, esc(item.OwnerName), `</span></li>`,
				); err != nil {
					return err
				}
			}
			return writeAll(w, `</ul>`)
		})
	})
	return Page(layout, body)
}

func ContributorsDialog(layout viewmodels.LayoutData, data viewmodels.ContributorsDialogData) templ.Component {
	body := component(func(w io.Writer) error {
		return dialogShell(w, "Top Contributors", data.Count, func(w io.Writer) error {
			if err := writeAll(w, `<ul class="avatar-list">`); err != nil {
				return err
			}
			for _, item := range data.Items {
				if err := writeAll(w,
					`<li><img src="`, esc(item.Avatar), `" alt="" class="avatar">`,
					`<span class="owner">`, esc(item.OwnerName), `</span>`,
					`<span class="count">`, FormatInt(item.Contributions), `</span></li>`,
				); err != nil {
					return err
				}
			}
			return writeAll(w, `</ul>`)
		})
	})
	return Page(layout, body)
}

func IssuesDialog(layout viewmodels.LayoutData, data viewmodels.IssuesDialogData) templ.Component {
	body := component(func(w io.Writer) error {
		if err := issueColumn(w, "Opened", data.OpenedCount, data.OpenedIssues); err != nil {
			return err
		}
		return issueColumn(w, "Closed", data.ClosedCount, data.ClosedIssues)
	})
	return Page(layout, body)
}

func issueColumn(w io.Writer, label string, count int, issues []viewmodels.IssueItem) error {
	return dialogShell(w, label+" Issues", count, func(w io.Writer) error {
		if err := writeAll(w, `<ul class="issue-list">`); err != nil {
			return err
		}
		for _, issue := range issues {
			if err := writef(w,
				`<li><span class="number">#%d</span><span class="title">%s</span><span class="user">%s</span><time>%s</time></li>`,
				issue.Number, esc(issue.Title), esc(issue.User), esc(issue.CreatedAt),
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</ul>`)
	})
}

func PullRequestsDialog(layout viewmodels.LayoutData, data viewmodels.PullRequestsDialogData, errorMessage string) templ.Component {
	body := component(func(w io.Writer) error {
		if errorMessage != "" {
			if err := writeAll(w, `<p class="dialog-error" role="alert">`, esc(errorMessage), `</p>`); err != nil {
				return err
			}
		}
		if err := pullColumn(w, "Active", data.ActiveCount, data.ActiveItems); err != nil {
			return err
		}
		return pullColumn(w, "Merged", data.MergedCount, data.MergedItems)
	})
	return Page(layout, body)
}

func pullColumn(w io.Writer, label string, count int, items []viewmodels.PullRequestItem) error {
	return dialogShell(w, label+" Pull Requests", count, func(w io.Writer) error {
		if err := writeAll(w, `<ul class="pr-list">`); err != nil {
			return err
		}
		for _, pr := range items {
			if err := writef(w,
				`<li><a href="%s"><span class="number">#%d</span><span class="title">%s</span></a><span class="author">%s</span></li>`,
				esc(pr.URL), pr.Number, esc(pr.Title), esc(pr.AuthorLogin),
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</ul>`)
	})
}
