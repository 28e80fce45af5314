package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/analysis"
	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/http/views"
)

func (h *Handlers) HandleHome(c echo.Context) error {
	layout := h.LayoutData(c, "Home")

	data := views.HomeViewData{Layout: layout}
	if latest, ok, err := h.Repos.Latest(c.Request().Context()); err != nil {
		return h.RenderError(c, err)
	} else if ok {
		data.LastRepoURL = latest.URL
		data.LastRepoPAT = latest.PAT
	}
	return h.RenderComponent(c, views.HomePage(data))
}

func (h *Handlers) HandleAddRepo(c echo.Context) error {
	repoURL := strings.TrimSpace(c.FormValue("repo_url"))
	pat := strings.TrimSpace(c.FormValue("pat_token"))

	if repoURL == "" {
		setFlashToast(c, viewmodels.ToastViewData{Message: "Repository URL is required.", Destructive: true})
		return c.Redirect(http.StatusSeeOther, "/")
	}

	result, err := h.Repos.Add(c.Request().Context(), repoURL, pat)
	if err != nil {
		return h.RenderError(c, err)
	}

	switch {
	case result.Duplicate:
		setFlashToast(c, viewmodels.ToastViewData{Message: "Repository already added!"})
	default:
		setFlashToast(c, viewmodels.ToastViewData{Message: "Repository added successfully!"})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) HandleRunAnalysis(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return h.RenderError(c, err)
	}

	var sel analysis.Selection
	for _, group := range form["groups"] {
		switch strings.ToLower(strings.TrimSpace(group)) {
		case "insights":
			sel.Insights = true
		case "security":
			sel.Security = true
		case "quality":
			sel.Quality = true
		}
	}
	if sel.Empty() {
		setFlashToast(c, viewmodels.ToastViewData{Message: "Select at least one analysis to run.", Destructive: true})
		return c.Redirect(http.StatusSeeOther, "/")
	}

	report, err := h.Runner.Run(c.Request().Context(), sel)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrMissingRepoURL):
			setFlashToast(c, viewmodels.ToastViewData{Message: "Add a repository before running analysis.", Destructive: true})
		case errors.Is(err, analysis.ErrMissingToken):
			setFlashToast(c, viewmodels.ToastViewData{Message: "No access token is configured for this repository.", Destructive: true})
		default:
			return h.RenderError(c, err)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}

	failed := report.Failed()
	switch {
	case len(failed) == 0:
		setFlashToast(c, viewmodels.ToastViewData{Message: "Analysis completed successfully!"})
	case len(failed) == len(report.Results):
		setFlashToast(c, viewmodels.ToastViewData{Message: "Analysis failed. Please try again.", Destructive: true})
	default:
		names := make([]string, 0, len(failed))
		for _, res := range failed {
			names = append(names, res.Kind.Definition().Label)
		}
		setFlashToast(c, viewmodels.ToastViewData{
			Message:     fmt.Sprintf("Analysis finished with failures: %s.", strings.Join(names, ", ")),
			Destructive: true,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
