package viewmodels

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

const severityUnknown = "UNKNOWN"

// severityOrder fixes the breakdown ordering from most to least severe.
var severityOrder = []string{"CRITICAL", "HIGH", "MEDIUM", "LOW", "INFO"}

// SecurityRow is one dialog row. Header pseudo-rows in the severity
// breakdown carry an empty Name and put their text in Severity.
type SecurityRow struct {
	Name        string
	Severity    string
	Description string
}

type SecurityDialogData struct {
	Count int
	Rows  []SecurityRow
	// SplitDescription marks dialogs whose description renders as one
	// suggestion per line instead of a single block.
	SplitDescription bool
}

// Suggestions expands a row's description for rendering.
func (r SecurityRow) Suggestions(split bool) []string {
	if split {
		return strings.Split(r.Description, "\n")
	}
	return []string{r.Description}
}

type sastIssue struct {
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Line     float64 `json:"line"`
}

type sastLeak struct {
	Severity    string `json:"severity"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type sastWarning struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type sastCVE struct {
	Severity    string `json:"severity"`
	Package     string `json:"package"`
	Version     string `json:"version"`
	CVE         string `json:"cve"`
	Description string `json:"description"`
}

type severityBucket struct {
	Count int `json:"count"`
	Files map[string]struct {
		Issues []sastIssue `json:"issues"`
	} `json:"files"`
}

type sastData struct {
	Vulnerabilities struct {
		Files map[string]struct {
			Issues []sastIssue `json:"issues"`
		} `json:"files"`
		Total int `json:"total"`
	} `json:"vulnerabilities"`
	Secrets struct {
		Files map[string]struct {
			Leaks []sastLeak `json:"leaks"`
		} `json:"files"`
		Total int `json:"total"`
	} `json:"secrets"`
	StaticWarnings struct {
		Files map[string]struct {
			Warnings []sastWarning `json:"warnings"`
		} `json:"files"`
		Total int `json:"total"`
	} `json:"static_warnings"`
	DependencyCVEs struct {
		Files map[string][]sastCVE `json:"files"`
		Total int                  `json:"total"`
	} `json:"dependency_cves"`
	SeveritySummary map[string]severityBucket `json:"severity_summary"`
	Timing          struct {
		TotalTime float64 `json:"total_time"`
	} `json:"timing"`
	TopRiskyFiles []struct {
		File       string `json:"file"`
		IssueCount int    `json:"issue_count"`
	} `json:"top_risky_files"`
	RemediationScore   json.RawMessage `json:"remediation_score"`
	VulnerabilityScore json.RawMessage `json:"vulnerability_score"`
}

func decodeSast(raw []byte) sastData {
	var data sastData
	if err := json.Unmarshal(raw, &data); err != nil {
		return sastData{}
	}
	return data
}

func BuildVulnerabilitiesDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	rows := make([]SecurityRow, 0, len(data.Vulnerabilities.Files))
	for _, file := range sortedKeys(data.Vulnerabilities.Files) {
		issues := data.Vulnerabilities.Files[file].Issues
		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			lines = append(lines, fmt.Sprintf("%s: %s", issue.Severity, issue.Message))
		}
		rows = append(rows, SecurityRow{
			Name:        file,
			Severity:    firstSeverity(issues),
			Description: strings.Join(lines, "\n"),
		})
	}
	return SecurityDialogData{Count: data.Vulnerabilities.Total, Rows: rows}
}

// BuildSeverityBreakdownDialog groups issues under ordered severity
// headers. Zero-count levels are omitted and the dialog count includes
// the header rows.
func BuildSeverityBreakdownDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	var rows []SecurityRow
	for _, level := range severityOrder {
		bucket, ok := data.SeveritySummary[strings.ToLower(level)]
		if !ok || bucket.Count <= 0 {
			continue
		}
		rows = append(rows, SecurityRow{
			Severity: fmt.Sprintf("%s (%d issues)", level, bucket.Count),
		})
		for _, file := range sortedKeys(bucket.Files) {
			for _, issue := range bucket.Files[file].Issues {
				line := "N/A"
				if issue.Line > 0 {
					line = fmt.Sprintf("%d", int(issue.Line))
				}
				rows = append(rows, SecurityRow{
					Name:        file,
					Severity:    orUnknown(issue.Severity),
					Description: fmt.Sprintf("Line %s: %s", line, issue.Message),
				})
			}
		}
	}
	return SecurityDialogData{Count: len(rows), Rows: rows}
}

func BuildSecretsDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	rows := make([]SecurityRow, 0, len(data.Secrets.Files))
	for _, file := range sortedKeys(data.Secrets.Files) {
		leaks := data.Secrets.Files[file].Leaks
		lines := make([]string, 0, len(leaks))
		for _, leak := range leaks {
			lines = append(lines, fmt.Sprintf("%s: %s: %s", orUnknown(leak.Severity), leak.Type, leak.Description))
		}
		rows = append(rows, SecurityRow{
			Name:        file,
			Severity:    firstLeakSeverity(leaks),
			Description: strings.Join(lines, "\n"),
		})
	}
	return SecurityDialogData{Count: data.Secrets.Total, Rows: rows}
}

func BuildStaticWarningsDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	rows := make([]SecurityRow, 0, len(data.StaticWarnings.Files))
	for _, file := range sortedKeys(data.StaticWarnings.Files) {
		warnings := data.StaticWarnings.Files[file].Warnings
		lines := make([]string, 0, len(warnings))
		for _, w := range warnings {
			lines = append(lines, fmt.Sprintf("%s: %s", orUnknown(w.Severity), w.Message))
		}
		severity := severityUnknown
		if len(warnings) > 0 && warnings[0].Severity != "" {
			severity = warnings[0].Severity
		}
		rows = append(rows, SecurityRow{
			Name:        file,
			Severity:    severity,
			Description: strings.Join(lines, "\n"),
		})
	}
	return SecurityDialogData{Count: data.StaticWarnings.Total, Rows: rows}
}

// BuildDependencyCVEsDialog joins each file's CVE records into the
// severity column, one record per line.
func BuildDependencyCVEsDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	rows := make([]SecurityRow, 0, len(data.DependencyCVEs.Files))
	for _, file := range sortedKeys(data.DependencyCVEs.Files) {
		cves := data.DependencyCVEs.Files[file]
		lines := make([]string, 0, len(cves))
		for _, cve := range cves {
			desc := cve.Description
			if desc == "" {
				desc = "No description"
			}
			lines = append(lines, fmt.Sprintf("%s: %s@%s: %s (%s)", orUnknown(cve.Severity), cve.Package, cve.Version, cve.CVE, desc))
		}
		rows = append(rows, SecurityRow{
			Name:     file,
			Severity: strings.Join(lines, "\n"),
		})
	}
	return SecurityDialogData{Count: data.DependencyCVEs.Total, Rows: rows}
}

func BuildTopRiskyFilesDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	rows := make([]SecurityRow, 0, len(data.TopRiskyFiles))
	for _, f := range data.TopRiskyFiles {
		rows = append(rows, SecurityRow{
			Name:     f.File,
			Severity: fmt.Sprintf("Issue count: %d", f.IssueCount),
		})
	}
	return SecurityDialogData{Count: len(rows), Rows: rows}
}

func BuildRemediationScoreDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	score := roundedScore(data.RemediationScore)

	criticalHigh := data.SeveritySummary["critical"].Count + data.SeveritySummary["high"].Count
	total := 0
	for _, bucket := range data.SeveritySummary {
		total += bucket.Count
	}

	description := strings.Join([]string{
		fmt.Sprintf("Critical/High Issues: %d", criticalHigh),
		fmt.Sprintf("Total Issues: %d", total),
		fmt.Sprintf("Scan Time: %ds", int(math.Round(data.Timing.TotalTime))),
	}, "\n")

	return SecurityDialogData{
		Count: score,
		Rows: []SecurityRow{{
			Name:        "Remediation Status",
			Severity:    fmt.Sprintf("Overall Score: %d/100", score),
			Description: description,
		}},
		SplitDescription: true,
	}
}

func BuildSecurityScoreDialog(raw []byte) SecurityDialogData {
	data := decodeSast(raw)
	score := roundedScore(data.VulnerabilityScore)

	lines := make([]string, 0, len(severityOrder)+1)
	for _, level := range severityOrder {
		bucket := data.SeveritySummary[strings.ToLower(level)]
		label := level[:1] + strings.ToLower(level[1:])
		lines = append(lines, fmt.Sprintf("%s Issues: %d", label, bucket.Count))
	}
	lines = append(lines, fmt.Sprintf("Scan Time: %ds", int(math.Round(data.Timing.TotalTime))))

	return SecurityDialogData{
		Count: score,
		Rows: []SecurityRow{{
			Name:        "Security Assessment",
			Severity:    fmt.Sprintf("Overall Score: %d/100", score),
			Description: strings.Join(lines, "\n"),
		}},
		SplitDescription: true,
	}
}

func firstSeverity(issues []sastIssue) string {
	if len(issues) > 0 && issues[0].Severity != "" {
		return issues[0].Severity
	}
	return severityUnknown
}

func firstLeakSeverity(leaks []sastLeak) string {
	if len(leaks) > 0 && leaks[0].Severity != "" {
		return leaks[0].Severity
	}
	return severityUnknown
}

func orUnknown(severity string) string {
	if severity == "" {
		return severityUnknown
	}
	return severity
}

// roundedScore tolerates scores encoded as numbers or numeric strings;
// anything else counts as 0.
func roundedScore(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(math.Round(f))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if _, convErr := fmt.Sscanf(s, "%f", &f); convErr == nil {
			return int(math.Round(f))
		}
	}
	return 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
