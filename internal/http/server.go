// Package httpapp wires the dashboard's routes, sessions, and middleware
// into an echo server.
package httpapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sayan-tan/Unicorn/internal/http/authn"
	"github.com/sayan-tan/Unicorn/internal/http/handlers"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(h *handlers.Handlers) (*EchoServer, error) {
	es := &EchoServer{h: h, e: echo.New()}
	es.e.HideBanner = true
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

// httpErrorHandler keeps error details out of responses. Clients get a
// generic message with a request reference; the detail stays in the log.
func (es *EchoServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := httpStatusFromError(err)
	switch {
	case status == http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	case status >= http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

func httpStatusFromError(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func (es *EchoServer) registerRoutes() {
	es.e.Use(requestID())
	if es.h.Sessions != nil {
		es.e.Use(echo.WrapMiddleware(es.h.Sessions.LoadAndSave))
	}

	es.e.GET("/healthz", es.h.HandleHealthz)

	csrf := es.e.Group("")
	csrf.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	csrf.GET("/login", es.h.HandleLoginGet)
	csrf.POST("/login", es.h.HandleLoginPost)
	csrf.POST("/logout", es.h.HandleLogoutPost)

	authed := csrf.Group("")
	authed.Use(authn.RequireAuth(es.h.Sessions))
	authed.GET("/", es.h.HandleHome)
	authed.POST("/repos", es.h.HandleAddRepo)
	authed.POST("/analysis/run", es.h.HandleRunAnalysis)
	authed.GET("/github-insights", es.h.HandleInsightsPage)
	authed.GET("/github-insights/dialogs/:dialog", es.h.HandleInsightsDialog)
	authed.GET("/security-threats", es.h.HandleSecurityPage)
	authed.GET("/security-threats/dialogs/:dialog", es.h.HandleSecurityDialog)
	authed.GET("/health-quality", es.h.HandleQualityPage)
	authed.GET("/health-quality/dialogs/:dialog", es.h.HandleQualityDialog)
	authed.POST("/chat", es.h.HandleChat)

	es.e.Static("/static", "web/static")
}

// requestID assigns each request an id for log correlation, honoring a
// caller-supplied X-Request-ID.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// Sessions exposes the underlying session manager for tests.
func (es *EchoServer) Sessions() *scs.SessionManager {
	return es.h.Sessions
}

// Handler returns the root http.Handler.
func (es *EchoServer) Handler() http.Handler {
	return es.e
}

// Start starts the HTTP server.
func (es *EchoServer) Start(addr string) error {
	return es.e.Start(addr)
}

// StartServer starts the HTTP server with a custom http.Server.
func (es *EchoServer) StartServer(server *http.Server) error {
	return es.e.StartServer(server)
}

// Shutdown gracefully shuts down the HTTP server.
func (es *EchoServer) Shutdown(ctx context.Context) error {
	return es.e.Shutdown(ctx)
}
