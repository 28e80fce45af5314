package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

type HomeViewData struct {
	Layout viewmodels.LayoutData
	// LastRepoURL and LastRepoPAT pre-fill the add-repository form
	// with the most recently added entry.
	LastRepoURL string
	LastRepoPAT string
}

func HomePage(data HomeViewData) templ.Component {
	body := component(func(w io.Writer) error {
		if err := writeAll(w, `<div class="action-cards">`); err != nil {
			return err
		}

		if err := writeAll(w,
			`<section class="action-card" id="add-repo"><h2>Add Repository</h2>`,
			`<p>Point the dashboard at a GitHub repository and store its access token for analysis.</p>`,
			`<form method="post" action="/repos">`,
			`<input type="hidden" name="csrf" value="`, esc(data.Layout.CSRFToken), `">`,
			`<label>Repository URL<input type="url" name="repo_url" value="`, esc(data.LastRepoURL), `" placeholder="https://github.com/owner/repo" required></label>`,
			`<label>Personal Access Token<input type="password" name="pat_token" value="`, esc(data.LastRepoPAT), `"></label>`,
			`<button type="submit">Add</button></form></section>`,
		); err != nil {
			return err
		}

		return writeAll(w,
			`<section class="action-card" id="run-analysis"><h2>Run Analysis</h2>`,
			`<p>Select analysis types and trigger the scans for the configured repository.</p>`,
			`<form method="post" action="/analysis/run">`,
			`<input type="hidden" name="csrf" value="`, esc(data.Layout.CSRFToken), `">`,
			`<label><input type="checkbox" name="groups" value="insights" checked> GitHub Insights</label>`,
			`<label><input type="checkbox" name="groups" value="security"> Security &amp; Threats</label>`,
			`<label><input type="checkbox" name="groups" value="quality"> Health &amp; Quality</label>`,
			`<button type="submit">Run</button></form></section></div>`,
		)
	})
	return Page(data.Layout, body)
}
