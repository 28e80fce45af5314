package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/analysis"
	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/http/views"
	"github.com/sayan-tan/Unicorn/internal/metrics"
	"github.com/sayan-tan/Unicorn/internal/store"
)

func (h *Handlers) HandleInsightsPage(c echo.Context) error {
	layout := h.LayoutData(c, "GitHub Insights")

	hasData, err := h.anyKeyPresent(c.Request().Context(),
		store.KeyForks, store.KeyContributors, store.KeyIssues, store.KeyPullRequests)
	if err != nil {
		return h.RenderError(c, err)
	}
	return h.RenderComponent(c, views.InsightsPage(views.InsightsViewData{
		Layout:  layout,
		HasData: hasData,
	}))
}

func (h *Handlers) HandleInsightsDialog(c echo.Context) error {
	dialog := c.Param("dialog")
	ctx := c.Request().Context()

	switch dialog {
	case "forks":
		metrics.DialogOpensTotal.WithLabelValues(dialog).Inc()
		layout := h.LayoutData(c, "Repository Forks")
		raw, ok, err := h.Store.Get(ctx, store.KeyForks)
		if err != nil {
			return h.RenderError(c, err)
		}
		if !ok {
			return h.RenderComponent(c, views.NoCachedDataDialog(layout, "Repository Forks"))
		}
		return h.RenderComponent(c, views.ForksDialog(layout, viewmodels.BuildForksDialog(raw)))

	case "contributors":
		metrics.DialogOpensTotal.WithLabelValues(dialog).Inc()
		layout := h.LayoutData(c, "Top Contributors")
		raw, ok, err := h.Store.Get(ctx, store.KeyContributors)
		if err != nil {
			return h.RenderError(c, err)
		}
		if !ok {
			return h.RenderComponent(c, views.NoCachedDataDialog(layout, "Top Contributors"))
		}
		return h.RenderComponent(c, views.ContributorsDialog(layout, viewmodels.BuildContributorsDialog(raw)))

	case "issues":
		metrics.DialogOpensTotal.WithLabelValues(dialog).Inc()
		layout := h.LayoutData(c, "GitHub Issues")
		raw, ok, err := h.Store.Get(ctx, store.KeyIssues)
		if err != nil {
			return h.RenderError(c, err)
		}
		if !ok {
			return h.RenderComponent(c, views.NoCachedDataDialog(layout, "GitHub Issues"))
		}
		return h.RenderComponent(c, views.IssuesDialog(layout, viewmodels.BuildIssuesDialog(raw)))

	case "pull-requests":
		metrics.DialogOpensTotal.WithLabelValues(dialog).Inc()
		return h.handlePullRequestsDialog(c)

	default:
		return c.String(http.StatusNotFound, "unknown dialog")
	}
}

// handlePullRequestsDialog is the one cache-miss path that issues a live
// call instead of showing the empty state.
func (h *Handlers) handlePullRequestsDialog(c echo.Context) error {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "Pull Requests")

	raw, ok, err := h.Store.Get(ctx, store.KeyPullRequests)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !ok {
		raw, err = h.Runner.FetchAndStore(ctx, analysis.KindPullRequests)
		if err != nil {
			h.logger().Warn("pull request fetch failed", "error", err)
			return h.RenderComponent(c, views.PullRequestsDialog(layout,
				viewmodels.PullRequestsDialogData{},
				"Could not load pull requests. Please run analysis and try again."))
		}
	}
	return h.RenderComponent(c, views.PullRequestsDialog(layout, viewmodels.BuildPullRequestsDialog(raw), ""))
}

func (h *Handlers) anyKeyPresent(ctx context.Context, keys ...string) (bool, error) {
	for _, key := range keys {
		if _, ok, err := h.Store.Get(ctx, key); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}
