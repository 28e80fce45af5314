// Package handlers contains HTTP handler logic split by domain.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sayan-tan/Unicorn/internal/analysis"
	"github.com/sayan-tan/Unicorn/internal/auth/providers"
	"github.com/sayan-tan/Unicorn/internal/chat"
	"github.com/sayan-tan/Unicorn/internal/config"
	"github.com/sayan-tan/Unicorn/internal/http/authn"
	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/repos"
	"github.com/sayan-tan/Unicorn/internal/store"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg      config.Config
	Store    store.Store
	Runner   *analysis.Runner
	Repos    *repos.Service
	Chat     *chat.Client
	Sessions *scs.SessionManager
	Provider providers.Provider
	Log      *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c echo.Context, title string) viewmodels.LayoutData {
	principal, _ := authn.PrincipalFromContext(c)
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	repoURL, err := h.Repos.ActiveURL(c.Request().Context())
	if err != nil {
		h.logger().Warn("load active repository failed", "error", err)
	}
	return viewmodels.LayoutData{
		Title:      title,
		CSRFToken:  csrfToken,
		UserEmail:  principal.Email,
		RepoURL:    repoURL,
		ActivePath: c.Request().URL.Path,
		Toast:      popFlashToast(c),
	}
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	h.logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// HandleHealthz reports process liveness.
func (h *Handlers) HandleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}
