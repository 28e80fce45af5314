package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
)

func LoginPage(data viewmodels.LoginViewData) templ.Component {
	body := component(func(w io.Writer) error {
		if err := writeAll(w,
			`<section class="login-card"><h1>Sign in</h1>`,
			`<form method="post" action="/login">`,
			`<input type="hidden" name="csrf" value="`, esc(data.CSRFToken), `">`,
			`<input type="hidden" name="next" value="`, esc(data.Next), `">`,
		); err != nil {
			return err
		}
		if data.ErrorMessage != "" {
			if err := writeAll(w, `<p class="form-error" role="alert">`, esc(data.ErrorMessage), `</p>`); err != nil {
				return err
			}
		}
		checked := ""
		if data.RememberMe {
			checked = ` checked`
		}
		return writeAll(w,
			`<label>Email<input type="email" name="email" value="`, esc(data.Email), `" autocomplete="username" required></label>`,
			`<label>Password<input type="password" name="password" autocomplete="current-password" required></label>`,
			`<label class="remember"><input type="checkbox" name="remember_me" value="1"`, checked, `> Remember me</label>`,
			`<button type="submit">Sign in</button>`,
			`</form></section>`,
		)
	})

	layout := viewmodels.LayoutData{Title: "Sign in", CSRFToken: data.CSRFToken, Toast: data.Toast}
	return Page(layout, body)
}
