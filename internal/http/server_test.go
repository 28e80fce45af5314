package httpapp

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/http/handlers"
)

func newTestServer() (*EchoServer, *echo.Echo) {
	e := echo.New()
	es := &EchoServer{h: &handlers.Handlers{Log: slog.New(slog.DiscardHandler)}, e: e}
	return es, e
}

func TestHTTPErrorHandlerInternalErrorIsGeneric(t *testing.T) {
	es, e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(handlers.ContextKeyRequestID, "req-123")

	es.httpErrorHandler(errors.New("very sensitive error"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusInternalServerError)
	}

	body := rec.Body.String()
	if strings.Contains(body, "very sensitive") {
		t.Fatalf("response leaked error details: %q", body)
	}
	if !strings.Contains(body, "Internal server error") {
		t.Fatalf("response missing generic message: %q", body)
	}
	if !strings.Contains(body, "Reference: req-123") {
		t.Fatalf("response missing request reference: %q", body)
	}
	if !strings.Contains(body, "Code: "+handlers.InternalErrorCode) {
		t.Fatalf("response missing error code: %q", body)
	}
}

func TestHTTPErrorHandlerNotFoundDoesNotLeakMessage(t *testing.T) {
	es, e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	es.httpErrorHandler(echo.NewHTTPError(http.StatusNotFound, "leaky not found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusNotFound)
	}

	body := rec.Body.String()
	if strings.Contains(body, "leaky") {
		t.Fatalf("response leaked error details: %q", body)
	}
	if !strings.Contains(body, "404 page not found") {
		t.Fatalf("response missing not found message: %q", body)
	}
}

func TestHTTPStatusFromErrorUsesStatusCoder(t *testing.T) {
	if got := httpStatusFromError(echo.ErrNotFound); got != http.StatusNotFound {
		t.Fatalf("status=%d want %d", got, http.StatusNotFound)
	}
	if got := httpStatusFromError(echo.ErrForbidden); got != http.StatusForbidden {
		t.Fatalf("status=%d want %d", got, http.StatusForbidden)
	}
	if got := httpStatusFromError(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status=%d want %d", got, http.StatusInternalServerError)
	}
}

func TestHTTPErrorHandlerBadRequestUsesStatusText(t *testing.T) {
	es, e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/bad", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	es.httpErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "leaky bad request"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusBadRequest)
	}

	body := rec.Body.String()
	if strings.Contains(body, "leaky") {
		t.Fatalf("response leaked error details: %q", body)
	}
	if got := strings.TrimSpace(body); got != http.StatusText(http.StatusBadRequest) {
		t.Fatalf("body=%q want %q", got, http.StatusText(http.StatusBadRequest))
	}
}

func TestRequestIDMiddlewareHonorsCallerID(t *testing.T) {
	e := echo.New()
	mw := requestID()
	handler := mw(func(c echo.Context) error {
		id, _ := c.Get(handlers.ContextKeyRequestID).(string)
		if id == "" {
			t.Fatal("request id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-55")
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderXRequestID); got != "caller-55" {
		t.Fatalf("response id = %q, want caller-55", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatal("generated request id missing from response")
	}
}
