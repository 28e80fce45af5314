package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

type SecurityViewData struct {
	Layout           viewmodels.LayoutData
	HasData          bool
	RemediationScore int
	SecurityScore    int
}

var securityCards = []struct {
	Dialog      string
	Title       string
	Description string
}{
	{"vulnerabilities", "Vulnerabilities Found", "All vulnerabilities found in the code"},
	{"severity-breakdown", "Severity Breakdown", "Breakdown of severity levels"},
	{"secrets", "Secrets Detected", "Secrets or keys detected in code"},
	{"top-risky-files", "Top Risky Files", "Files with highest risk"},
	{"static-warnings", "Static Warnings", "Static analysis warnings"},
	{"dependency-cves", "Dependency CVEs", "Known CVEs in dependencies"},
	{"remediation-score", "Remediation Score", "Score for applied remediations"},
	{"security-score", "Security Score", "Overall security score"},
}

func SecurityPage(data SecurityViewData) templ.Component {
	body := component(func(w io.Writer) error {
		if !data.HasData {
			return noData(w,
				"No Security Analysis Data Available",
				"Run a security analysis to see potential threats and vulnerabilities in your repository.",
			)
		}
		if err := writeAll(w, `<div class="security-cards">`); err != nil {
			return err
		}
		for _, card := range securityCards {
			if err := writeAll(w,
				`<a class="security-card" href="/security-threats/dialogs/`, card.Dialog, `">`,
				`<h2>`, esc(card.Title), `</h2><p>`, esc(card.Description), `</p>`,
			); err != nil {
				return err
			}
			switch card.Dialog {
			case "remediation-score":
				if err := scoreBadge(w, data.RemediationScore); err != nil {
					return err
				}
			case "security-score":
				if err := scoreBadge(w, data.SecurityScore); err != nil {
					return err
				}
			}
			if err := writeAll(w, `</a>`); err != nil {
				return err
			}
		}
		return writeAll(w, `</div>`)
	})
	return Page(data.Layout, body)
}

func scoreBadge(w io.Writer, score int) error {
	return writeAll(w, `<span class="score">`, FormatInt(score), `</span>`)
}

func SecurityDialog(layout viewmodels.LayoutData, label string, data viewmodels.SecurityDialogData) templ.Component {
	body := component(func(w io.Writer) error {
		return dialogShell(w, label, data.Count, func(w io.Writer) error {
			if err := writeAll(w, `<ul class="finding-list">`); err != nil {
				return err
			}
			for _, row := range data.Rows {
				header := ""
				if row.Name == "" {
					header = ` class="group-header"`
				}
				if err := writeAll(w, `<li`, header, `>`); err != nil {
					return err
				}
				if row.Name != "" {
					if err := writeAll(w, `<span class="file">`, esc(row.Name), `</span>`); err != nil {
						return err
					}
				}
				if err := writeAll(w, `<span class="`, SeverityBadgeClass(row.Severity), `">`, esc(row.Severity), `</span>`); err != nil {
					return err
				}
				if row.Description != "" {
					for _, line := range row.Suggestions(data.SplitDescription) {
						if err := writeAll(w, `<p class="detail">`, esc(line), `</p>`); err != nil {
							return err
						}
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
