package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/analysis"
	"github.com/sayan-tan/Unicorn/internal/auth"
	"github.com/sayan-tan/Unicorn/internal/chat"
	"github.com/sayan-tan/Unicorn/internal/http/authn"
	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/repos"
	"github.com/sayan-tan/Unicorn/internal/store"
)

func newTestHandlers(t *testing.T, backendURL string) *Handlers {
	t.Helper()

	mem := store.NewMemory()
	client := analysis.NewClient(backendURL, 5*time.Second)
	runner := analysis.NewRunner(mem, client, nil, slog.New(slog.DiscardHandler))
	return &Handlers{
		Store:    mem,
		Runner:   runner,
		Repos:    repos.NewService(mem, runner),
		Sessions: scs.New(),
		Log:      slog.New(slog.DiscardHandler),
	}
}

func newFormContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeToast(t *testing.T, rec *httptest.ResponseRecorder) viewmodels.ToastViewData {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name != flashToastCookieName || cookie.MaxAge < 0 {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("decode toast cookie: %v", err)
		}
		var toast viewmodels.ToastViewData
		if err := json.Unmarshal(raw, &toast); err != nil {
			t.Fatalf("unmarshal toast: %v", err)
		}
		return toast
	}
	t.Fatal("no toast cookie set")
	return viewmodels.ToastViewData{}
}

func TestHandleAddRepoSetsSuccessToast(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, rec := newFormContext(t, http.MethodPost, "/repos", url.Values{
		"repo_url":  {"https://github.com/acme/widgets"},
		"pat_token": {"ghp_test"},
	})

	if err := h.HandleAddRepo(c); err != nil {
		t.Fatalf("HandleAddRepo: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if toast := decodeToast(t, rec); toast.Message != "Repository added successfully!" || toast.Destructive {
		t.Fatalf("toast = %+v", toast)
	}

	saved, err := store.GetString(context.Background(), h.Store, store.KeyRepoURL)
	if err != nil || saved != "https://github.com/acme/widgets" {
		t.Fatalf("repo_url = %q, err = %v", saved, err)
	}
}

func TestHandleAddRepoDuplicateToast(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	if _, err := h.Repos.Add(context.Background(), "https://github.com/acme/widgets", "ghp_test"); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	c, rec := newFormContext(t, http.MethodPost, "/repos", url.Values{
		"repo_url": {"https://github.com/acme/widgets"},
	})
	if err := h.HandleAddRepo(c); err != nil {
		t.Fatalf("HandleAddRepo: %v", err)
	}
	if toast := decodeToast(t, rec); toast.Message != "Repository already added!" {
		t.Fatalf("toast = %+v", toast)
	}
}

func TestHandleAddRepoMissingURL(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, rec := newFormContext(t, http.MethodPost, "/repos", url.Values{"repo_url": {"  "}})

	if err := h.HandleAddRepo(c); err != nil {
		t.Fatalf("HandleAddRepo: %v", err)
	}
	if toast := decodeToast(t, rec); !toast.Destructive {
		t.Fatalf("toast = %+v, want destructive", toast)
	}
}

func TestHandleRunAnalysisWithoutRepo(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, rec := newFormContext(t, http.MethodPost, "/analysis/run", url.Values{"groups": {"insights"}})

	if err := h.HandleRunAnalysis(c); err != nil {
		t.Fatalf("HandleRunAnalysis: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	toast := decodeToast(t, rec)
	if !toast.Destructive || !strings.Contains(toast.Message, "Add a repository") {
		t.Fatalf("toast = %+v", toast)
	}
}

func TestHandleRunAnalysisNoSelection(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, _ := newFormContext(t, http.MethodPost, "/analysis/run", url.Values{})

	if err := h.HandleRunAnalysis(c); err != nil {
		t.Fatalf("HandleRunAnalysis: %v", err)
	}
}

func TestHandleRunAnalysisReportsPartialFailure(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/issues") {
			http.Error(w, "rate limited", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":0}`))
	}))
	defer backend.Close()

	h := newTestHandlers(t, backend.URL)
	if _, err := h.Repos.Add(context.Background(), "https://github.com/acme/widgets", "ghp_test"); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	c, rec := newFormContext(t, http.MethodPost, "/analysis/run", url.Values{"groups": {"insights"}})
	if err := h.HandleRunAnalysis(c); err != nil {
		t.Fatalf("HandleRunAnalysis: %v", err)
	}

	toast := decodeToast(t, rec)
	if !toast.Destructive || !strings.Contains(toast.Message, "GitHub Issues") {
		t.Fatalf("toast = %+v", toast)
	}
}

func TestHandleSecurityDialogUnknownSlug(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, rec := newFormContext(t, http.MethodGet, "/security-threats/dialogs/bogus", nil)
	c.SetParamNames("dialog")
	c.SetParamValues("bogus")

	if err := h.HandleSecurityDialog(c); err != nil {
		t.Fatalf("HandleSecurityDialog: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSecurityDialogCacheMiss(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	c, rec := newFormContext(t, http.MethodGet, "/security-threats/dialogs/vulnerabilities", nil)
	c.SetParamNames("dialog")
	c.SetParamValues("vulnerabilities")

	if err := h.HandleSecurityDialog(c); err != nil {
		t.Fatalf("HandleSecurityDialog: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No cached data") {
		t.Fatalf("body missing empty state: %q", rec.Body.String())
	}
}

func TestHandleSecurityDialogRendersCachedPayload(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	payload := `{"vulnerabilities":{"total":1,"files":{"app.py":{"issues":[{"severity":"HIGH","message":"eval use","line":12}]}}}}`
	if err := h.Store.Set(context.Background(), store.KeySecurity, []byte(payload)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	c, rec := newFormContext(t, http.MethodGet, "/security-threats/dialogs/vulnerabilities", nil)
	c.SetParamNames("dialog")
	c.SetParamValues("vulnerabilities")

	if err := h.HandleSecurityDialog(c); err != nil {
		t.Fatalf("HandleSecurityDialog: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "app.py") || !strings.Contains(body, "HIGH: eval use") {
		t.Fatalf("body missing vulnerability row: %q", body)
	}
}

func TestHandlePullRequestsDialogFetchesOnMiss(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/pull-requests") {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"open_pull_requests":1,"merged_pull_requests":0,"pull_requests":[{"title":"Add CI","state":"OPEN"}]}`))
	}))
	defer backend.Close()

	h := newTestHandlers(t, backend.URL)
	if _, err := h.Repos.Add(context.Background(), "https://github.com/acme/widgets", "ghp_test"); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	c, rec := newFormContext(t, http.MethodGet, "/github-insights/dialogs/pull-requests", nil)
	c.SetParamNames("dialog")
	c.SetParamValues("pull-requests")

	if err := h.HandleInsightsDialog(c); err != nil {
		t.Fatalf("HandleInsightsDialog: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Add CI") {
		t.Fatalf("body missing fetched pull request: %q", rec.Body.String())
	}

	if _, ok, err := h.Store.Get(context.Background(), store.KeyPullRequests); err != nil || !ok {
		t.Fatalf("fetched payload not cached: ok=%v err=%v", ok, err)
	}
}

func TestHandlePullRequestsDialogFetchFailure(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer backend.Close()

	h := newTestHandlers(t, backend.URL)
	if _, err := h.Repos.Add(context.Background(), "https://github.com/acme/widgets", "ghp_test"); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	c, rec := newFormContext(t, http.MethodGet, "/github-insights/dialogs/pull-requests", nil)
	c.SetParamNames("dialog")
	c.SetParamValues("pull-requests")

	if err := h.HandleInsightsDialog(c); err != nil {
		t.Fatalf("HandleInsightsDialog: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not load pull requests") {
		t.Fatalf("body missing fetch error message: %q", rec.Body.String())
	}
}

func TestHandleChatReturnsFallbackOnUpstreamError(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer backend.Close()

	h := newTestHandlers(t, "http://backend.invalid")
	h.Chat = chat.NewClient(backend.URL, time.Second)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"What is the quality score?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(authn.ContextKeyPrincipal, auth.Principal{Email: "admin@example.com", Token: "jwt"})

	if err := h.HandleChat(c); err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Reply, "Sorry") {
		t.Fatalf("reply = %q, want fallback", resp.Reply)
	}
}

func TestHandleChatRejectsEmptyQuestion(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, "http://backend.invalid")
	h.Chat = chat.NewClient("http://backend.invalid", time.Second)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":" "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.HandleChat(c); err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestFlashToastRoundTrip(t *testing.T) {
	t.Parallel()

	c, rec := newFormContext(t, http.MethodPost, "/repos", nil)
	setFlashToast(c, viewmodels.ToastViewData{Message: "Repository added successfully!"})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c2 := echo.New().NewContext(req, httptest.NewRecorder())

	toast := popFlashToast(c2)
	if toast == nil || toast.Message != "Repository added successfully!" {
		t.Fatalf("toast = %+v", toast)
	}
}
