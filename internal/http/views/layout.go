package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/", Label: "Home"},
	{Href: "/github-insights", Label: "GitHub Insights"},
	{Href: "/security-threats", Label: "Security & Threats"},
	{Href: "/health-quality", Label: "Health & Quality"},
}

// Page wraps body in the shared shell: head, navbar, toast region and
// the chat widget.
func Page(layout viewmodels.LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, esc(layout.Title), `</title>`,
			`<link rel="stylesheet" href="/static/app.css"></head>`,
			`<body class="dashboard">`,
		); err != nil {
			return err
		}
		if err := navbar(w, layout); err != nil {
			return err
		}
		if err := toast(w, layout.Toast); err != nil {
			return err
		}
		if err := writeAll(w, `<main class="content">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if err := writeAll(w, `</main>`); err != nil {
			return err
		}
		if err := chatWidget(w, layout.CSRFToken); err != nil {
			return err
		}
		return writeAll(w, `<script src="/static/app.js"></script></body></html>`)
	})
}

func navbar(w io.Writer, layout viewmodels.LayoutData) error {
	if err := writeAll(w, `<nav class="navbar"><span class="brand">Unicorn</span><ul class="nav-links">`); err != nil {
		return err
	}
	for _, link := range navLinks {
		current := ""
		if v := AriaCurrent(layout.ActivePath, link.Href); v != "" {
			current = ` aria-current="` + v + `"`
		}
		if err := writeAll(w, `<li><a href="`, link.Href, `"`, current, `>`, esc(link.Label), `</a></li>`); err != nil {
			return err
		}
	}
	if err := writeAll(w, `</ul>`); err != nil {
		return err
	}
	if layout.UserEmail != "" {
		if err := writeAll(w,
			`<form class="logout" method="post" action="/logout">`,
			`<input type="hidden" name="csrf" value="`, esc(layout.CSRFToken), `">`,
			`<span class="user">`, esc(layout.UserEmail), `</span>`,
			`<button type="submit">Sign out</button></form>`,
		); err != nil {
			return err
		}
	}
	return writeAll(w, `</nav>`)
}

func toast(w io.Writer, t *viewmodels.ToastViewData) error {
	if t == nil || t.Message == "" {
		return nil
	}
	class := "toast toast-success"
	role := "status"
	if t.Destructive {
		class = "toast toast-error"
		role = "alert"
	}
	return writeAll(w, `<div class="`, class, `" role="`, role, `">`, esc(t.Message), `</div>`)
}

func chatWidget(w io.Writer, csrfToken string) error {
	return writeAll(w,
		`<div id="chat-widget" class="chat-widget" data-endpoint="/chat">`,
		`<input type="hidden" name="csrf" value="`, esc(csrfToken), `">`,
		`<button type="button" class="chat-toggle" aria-label="Open assistant">Chat</button>`,
		`</div>`,
	)
}
