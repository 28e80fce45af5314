package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/chat"
	"github.com/sayan-tan/Unicorn/internal/http/authn"
)

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// HandleChat proxies a dashboard chat question to the analysis backend,
// forwarding the caller's session token. Upstream failures surface as
// the canned fallback reply rather than an error page.
func (h *Handlers) HandleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	principal, _ := authn.PrincipalFromContext(c)
	reply, err := h.Chat.Ask(c.Request().Context(), req.Question, principal.Token)
	if err != nil {
		h.logger().Warn("chat request failed", "error", err)
		return c.JSON(http.StatusOK, chatResponse{Reply: chat.FallbackReply()})
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
