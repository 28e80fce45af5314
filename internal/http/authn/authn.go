// Package authn guards dashboard routes behind the scs session.
package authn

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/auth"
)

const (
	ContextKeyPrincipal = "auth_principal"

	SessionKeyToken = "auth_token"
	SessionKeyEmail = "auth_email"
)

func PrincipalFromContext(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

// LoadPrincipal reads the session. Presence of the auth token is the
// only gate; the token is not validated against the backend here.
func LoadPrincipal(c echo.Context, sessions *scs.SessionManager) (auth.Principal, bool) {
	ctx := c.Request().Context()
	token := sessions.GetString(ctx, SessionKeyToken)
	if strings.TrimSpace(token) == "" {
		return auth.Principal{}, false
	}
	return auth.Principal{
		Email: sessions.GetString(ctx, SessionKeyEmail),
		Token: token,
	}, true
}

func RequireAuth(sessions *scs.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := LoadPrincipal(c, sessions)
			if !ok {
				return handleUnauth(c)
			}
			c.Set(ContextKeyPrincipal, principal)
			return next(c)
		}
	}
}

func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func handleUnauth(c echo.Context) error {
	if isAPIRequest(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	location := "/login"
	if c.Request().Method == http.MethodGet {
		if next := SanitizeNext(c.Request().URL.RequestURI()); next != "" {
			location = "/login?next=" + url.QueryEscape(next)
		}
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// SanitizeNext keeps post-login redirects on-site.
func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, "\\") {
		return ""
	}
	if u.Path == "/" && u.RawQuery == "" {
		return ""
	}
	if u.Path == "/login" || strings.HasPrefix(u.Path, "/login/") {
		return ""
	}
	if strings.Contains(next, "\\") {
		return ""
	}
	return next
}
