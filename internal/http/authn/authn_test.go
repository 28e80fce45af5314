package authn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
)

func TestSanitizeNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace", in: "   ", want: ""},
		{name: "root", in: "/", want: ""},
		{name: "ok_path", in: "/github-insights", want: "/github-insights"},
		{name: "ok_path_query", in: "/github-insights?dialog=forks", want: "/github-insights?dialog=forks"},
		{name: "ok_root_query", in: "/?foo=bar", want: "/?foo=bar"},
		{name: "absolute_url", in: "https://evil.example/", want: ""},
		{name: "protocol_relative", in: "//evil.example/", want: ""},
		{name: "triple_slash", in: "///evil.example/", want: ""},
		{name: "backslash", in: "/\\evil.example/", want: ""},
		{name: "encoded_slash", in: "/%2f%2fevil.example/", want: ""},
		{name: "encoded_backslash", in: "/%5cevil.example/", want: ""},
		{name: "login_path", in: "/login", want: ""},
		{name: "login_subpath", in: "/login/reset", want: ""},
		{name: "newline", in: "/\n/evil", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeNext(tt.in); got != tt.want {
				t.Fatalf("SanitizeNext(%q)=%q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func newSessionRequest(t *testing.T, sessions *scs.SessionManager, target string, authed bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)

	ctx, err := sessions.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if authed {
		sessions.Put(ctx, SessionKeyToken, "jwt-abc")
		sessions.Put(ctx, SessionKeyEmail, "admin@example.com")
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	t.Parallel()

	sessions := scs.New()
	handler := RequireAuth(sessions)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := newSessionRequest(t, sessions, "/github-insights?dialog=forks", false)
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "/login?next=%2Fgithub-insights%3Fdialog%3Dforks" {
		t.Fatalf("location = %q", loc)
	}
}

func TestRequireAuthPassesAuthenticatedSession(t *testing.T) {
	t.Parallel()

	sessions := scs.New()
	var seenEmail string
	handler := RequireAuth(sessions)(func(c echo.Context) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			t.Error("principal missing from context")
		}
		seenEmail = p.Email
		return c.NoContent(http.StatusOK)
	})

	c, rec := newSessionRequest(t, sessions, "/", true)
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if seenEmail != "admin@example.com" {
		t.Fatalf("email = %q", seenEmail)
	}
}

func TestLoadPrincipalRequiresToken(t *testing.T) {
	t.Parallel()

	sessions := scs.New()
	ctx, err := sessions.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, ok := LoadPrincipal(c, sessions); ok {
		t.Fatal("empty session must not authenticate")
	}
}
