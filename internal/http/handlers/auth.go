package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sayan-tan/Unicorn/internal/auth"
	"github.com/sayan-tan/Unicorn/internal/http/authn"
	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/http/views"
)

func (h *Handlers) HandleLoginGet(c echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if _, ok := authn.LoadPrincipal(c, h.Sessions); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Next:      authn.SanitizeNext(c.QueryParam("next")),
		Toast:     popFlashToast(c),
	}
	return h.RenderComponent(c, views.LoginPage(data))
}

func (h *Handlers) HandleLoginPost(c echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}
	if h.Provider == nil {
		return errors.New("auth provider not configured")
	}

	ctx := c.Request().Context()

	email := auth.NormalizeEmail(c.FormValue("email"))
	password := c.FormValue("password")
	next := authn.SanitizeNext(c.FormValue("next"))
	remember := c.FormValue("remember_me") != ""

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken:  csrfToken,
		Email:      email,
		Next:       next,
		RememberMe: remember,
	}

	if email == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = "Invalid email or password."
		return h.RenderComponent(c, views.LoginPage(data))
	}

	principal, err := h.Provider.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			data.ErrorMessage = "Invalid email or password."
			return h.RenderComponent(c, views.LoginPage(data))
		}
		h.logger().Error("login failed", "provider", h.Provider.Name(), "error", err)
		data.ErrorMessage = "Login is temporarily unavailable. Please try again."
		return h.RenderComponent(c, views.LoginPage(data))
	}

	if err := h.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	sessionToken := principal.Token
	if sessionToken == "" {
		// Local logins carry no backend token. An opaque marker keeps
		// the session guard uniform across auth modes.
		sessionToken = uuid.NewString()
	}
	h.Sessions.Put(ctx, authn.SessionKeyToken, sessionToken)
	h.Sessions.Put(ctx, authn.SessionKeyEmail, principal.Email)
	h.Sessions.RememberMe(ctx, remember)

	if next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) HandleLogoutPost(c echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{Message: "Signed out."})
	return c.Redirect(http.StatusSeeOther, "/login")
}
