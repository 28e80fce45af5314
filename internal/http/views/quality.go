package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

type QualityViewData struct {
	Layout       viewmodels.LayoutData
	HasData      bool
	QualityScore int
	ScanSeconds  float64
}

var qualityCards = []struct {
	Dialog      string
	Title       string
	Description string
}{
	{"files-analyzed", "Files Analyzed", "Total files analyzed in the repo"},
	{"total-issues", "Total Issues", "All detected issues"},
	{"linting-issues", "Linting Issues", "Linting errors found"},
	{"duplicate-files", "Duplicate Files", "Files with duplicate content"},
	{"files-without-docs", "Files Without Docs", "Files missing documentation"},
	{"quality-score", "Quality Score", "Overall code quality score"},
}

func QualityPage(data QualityViewData) templ.Component {
	body := component(func(w io.Writer) error {
		if !data.HasData {
			return noData(w,
				"No Health & Quality Data Available",
				"Run a code analysis to see health and quality metrics for your repository.",
			)
		}
		if err := writeAll(w, `<div class="quality-cards">`); err != nil {
			return err
		}
		for _, card := range qualityCards {
			if err := writeAll(w,
				`<a class="quality-card" href="/health-quality/dialogs/`, card.Dialog, `">`,
				`<h2>`, esc(card.Title), `</h2><p>`, esc(card.Description), `</p>`,
			); err != nil {
				return err
			}
			if card.Dialog == "quality-score" {
				if err := scoreBadge(w, data.QualityScore); err != nil {
					return err
				}
			}
			if err := writeAll(w, `</a>`); err != nil {
				return err
			}
		}
		if err := writeAll(w, `</div>`); err != nil {
			return err
		}
		if data.ScanSeconds > 0 {
			return writeAll(w, `<p class="last-scan">Last scan took `, FormatSeconds(data.ScanSeconds), `</p>`)
		}
		return nil
	})
	return Page(data.Layout, body)
}

func QualityDialog(layout viewmodels.LayoutData, label string, data viewmodels.QualityDialogData) templ.Component {
	body := component(func(w io.Writer) error {
		return dialogShell(w, label, data.Count, func(w io.Writer) error {
			if data.Description != "" {
				if err := writeAll(w, `<p class="dialog-description">`, esc(data.Description), `</p>`); err != nil {
					return err
				}
			}
			if err := writeAll(w, `<ul class="quality-list">`); err != nil {
				return err
			}
			for _, file := range data.Files {
				if err := writeAll(w, `<li><span class="file">`, esc(file.File), `</span>`); err != nil {
					return err
				}
				if file.Summary != "" {
					if err := writeAll(w, `<span class="summary">`, esc(file.Summary), `</span>`); err != nil {
						return err
					}
				}
				for _, suggestion := range file.Suggestions {
					if err := writeAll(w, `<p class="detail">`, esc(suggestion), `</p>`); err != nil {
						return err
					}
				}
				if err := writeAll(w, `</li>`); err != nil {
					return err
				}
			}
			return writeAll(w, `</ul>`)
		})
	})
	return Page(layout, body)
}
