package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sayan-tan/Unicorn/internal/http/viewmodels"
	"github.com/sayan-tan/Unicorn/internal/http/views"
	"github.com/sayan-tan/Unicorn/internal/metrics"
	"github.com/sayan-tan/Unicorn/internal/store"
)

// securityDialogs maps dialog slugs to their label and payload
// transformer.
var securityDialogs = map[string]struct {
	Label string
	Build func([]byte) viewmodels.SecurityDialogData
}{
	"vulnerabilities":    {"Vulnerabilities", viewmodels.BuildVulnerabilitiesDialog},
	"severity-breakdown": {"Severity Breakdown", viewmodels.BuildSeverityBreakdownDialog},
	"secrets":            {"Secrets Found", viewmodels.BuildSecretsDialog},
	"top-risky-files":    {"Top Risky Files", viewmodels.BuildTopRiskyFilesDialog},
	"static-warnings":    {"Static Analysis Warnings", viewmodels.BuildStaticWarningsDialog},
	"dependency-cves":    {"Dependency CVEs", viewmodels.BuildDependencyCVEsDialog},
	"remediation-score":  {"Remediation Score", viewmodels.BuildRemediationScoreDialog},
	"security-score":     {"Security Score", viewmodels.BuildSecurityScoreDialog},
}

func (h *Handlers) HandleSecurityPage(c echo.Context) error {
	layout := h.LayoutData(c, "Security & Threats")

	raw, ok, err := h.Store.Get(c.Request().Context(), store.KeySecurity)
	if err != nil {
		return h.RenderError(c, err)
	}
	data := views.SecurityViewData{Layout: layout, HasData: ok}
	if ok {
		data.RemediationScore = viewmodels.BuildRemediationScoreDialog(raw).Count
		data.SecurityScore = viewmodels.BuildSecurityScoreDialog(raw).Count
	}
	return h.RenderComponent(c, views.SecurityPage(data))
}

func (h *Handlers) HandleSecurityDialog(c echo.Context) error {
	dialog, ok := securityDialogs[c.Param("dialog")]
	if !ok {
		return c.String(http.StatusNotFound, "unknown dialog")
	}
	metrics.DialogOpensTotal.WithLabelValues(c.Param("dialog")).Inc()

	layout := h.LayoutData(c, dialog.Label)
	raw, found, err := h.Store.Get(c.Request().Context(), store.KeySecurity)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return h.RenderComponent(c, views.NoCachedDataDialog(layout, dialog.Label))
	}
	return h.RenderComponent(c, views.SecurityDialog(layout, dialog.Label, dialog.Build(raw)))
}
