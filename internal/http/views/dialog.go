package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

// NoCachedDataDialog renders the dialog-level empty state shown when a
// card is opened before its analysis has run.
func NoCachedDataDialog(layout viewmodels.LayoutData, label string) templ.Component {
	body := component(func(w io.Writer) error {
		return dialogShell(w, label, 0, func(w io.Writer) error {
			return writeAll(w,
				`<p class="dialog-empty">No cached data for this card yet. `,
				`<a href="/">Run an analysis</a> to populate it.</p>`,
			)
		})
	})
	return Page(layout, body)
}
