package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/http/views"
	"github.com/sayan-tan/Unicorn/internal/metrics"
	"github.com/sayan-tan/Unicorn/internal/store"
)

var qualityDialogs = map[string]struct {
	Label string
	Build func([]byte) viewmodels.QualityDialogData
}{
	"files-analyzed":     {"Files Analyzed", viewmodels.BuildFilesAnalyzedDialog},
	"total-issues":       {"Total Issues", viewmodels.BuildTotalIssuesDialog},
	"linting-issues":     {"Linting Issues", viewmodels.BuildLintingIssuesDialog},
	"duplicate-files":    {"Duplicate Files", viewmodels.BuildDuplicateFilesDialog},
	"files-without-docs": {"Files Without Docs", viewmodels.BuildFilesWithoutDocsDialog},
	"quality-score":      {"Quality Score", viewmodels.BuildQualityScoreDialog},
}

func (h *Handlers) HandleQualityPage(c echo.Context) error {
	layout := h.LayoutData(c, "Health & Quality")

	raw, ok, err := h.Store.Get(c.Request().Context(), store.KeyQuality)
	if err != nil {
		return h.RenderError(c, err)
	}
	data := views.QualityViewData{Layout: layout, HasData: ok}
	if ok {
		data.QualityScore = viewmodels.QualityScore(raw)
		data.ScanSeconds = viewmodels.QualityScanSeconds(raw)
	}
	return h.RenderComponent(c, views.QualityPage(data))
}

func (h *Handlers) HandleQualityDialog(c echo.Context) error {
	dialog, ok := qualityDialogs[c.Param("dialog")]
	if !ok {
		return c.String(http.StatusNotFound, "unknown dialog")
	}
	metrics.DialogOpensTotal.WithLabelValues(c.Param("dialog")).Inc()

	layout := h.LayoutData(c, dialog.Label)
	raw, found, err := h.Store.Get(c.Request().Context(), store.KeyQuality)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return h.RenderComponent(c, views.NoCachedDataDialog(layout, dialog.Label))
	}
	return h.RenderComponent(c, views.QualityDialog(layout, dialog.Label, dialog.Build(raw)))
}
