package viewmodels

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const noFilesListed = "No specific files listed."

// Provenance records where a card's count or file list came from, so
// mismatched sources (counter says 3, list scan finds 1) are visible
// to callers instead of silently conflated.
type Provenance string

const (
	SourceCounters  Provenance = "issue_counters"
	SourceTopIssues Provenance = "top_issues_scan"
	SourceScore     Provenance = "quality_score"
	SourceNone      Provenance = "none"
)

type QualityFile struct {
	File        string
	Summary     string
	Suggestions []string
}

type QualityDialogData struct {
	Count       int
	Files       []QualityFile
	Description string
	CountSource Provenance
	ListSource  Provenance
}

type qualityTopIssue struct {
	File        string   `json:"file"`
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

type qualityData struct {
	FilesAnalyzed struct {
		Total      int            `json:"total"`
		ByLanguage map[string]int `json:"by_language"`
	} `json:"files_analyzed"`
	Issues struct {
		Linting          int `json:"linting"`
		Todos            int `json:"todos"`
		FilesWithoutDocs int `json:"files_without_docs"`
	} `json:"issues"`
	TopIssues    []qualityTopIssue `json:"top_issues"`
	QualityScore json.RawMessage   `json:"quality_score"`
	Timing       struct {
		TotalSeconds float64 `json:"total_seconds"`
	} `json:"timing"`
}

func decodeQuality(raw []byte) qualityData {
	var data qualityData
	if err := json.Unmarshal(raw, &data); err != nil {
		return qualityData{}
	}
	return data
}

// QualityScanSeconds exposes the scan duration for the footer badge.
func QualityScanSeconds(raw []byte) float64 {
	return decodeQuality(raw).Timing.TotalSeconds
}

// QualityScore scales the 0-10 backend score to 0-100.
func QualityScore(raw []byte) int {
	return scaledQualityScore(decodeQuality(raw))
}

func scaledQualityScore(data qualityData) int {
	var f float64
	if err := json.Unmarshal(data.QualityScore, &f); err != nil {
		return 0
	}
	return int(math.Round(f * 10))
}

// BuildFilesAnalyzedDialog lists the per-language breakdown in
// alphabetical order.
func BuildFilesAnalyzedDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	suggestions := make([]string, 0, len(data.FilesAnalyzed.ByLanguage))
	for _, lang := range sortedKeys(data.FilesAnalyzed.ByLanguage) {
		count := data.FilesAnalyzed.ByLanguage[lang]
		plural := "s"
		if count == 1 {
			plural = ""
		}
		suggestions = append(suggestions, fmt.Sprintf("%s: %d file%s", strings.ToUpper(lang), count, plural))
	}
	return QualityDialogData{
		Count:       data.FilesAnalyzed.Total,
		Files:       []QualityFile{{File: "Breakdown by Language", Suggestions: suggestions}},
		Description: "Total files analyzed in the repository.",
		CountSource: SourceCounters,
		ListSource:  SourceCounters,
	}
}

// BuildTotalIssuesDialog sums the linting, TODO, and missing-docs
// counters and attaches keyword-matched file lists from top_issues.
func BuildTotalIssuesDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	linting := data.Issues.Linting
	todos := data.Issues.Todos
	docs := data.Issues.FilesWithoutDocs

	var files []QualityFile
	if linting > 0 {
		files = append(files, QualityFile{
			File:        "Linting Issues",
			Suggestions: filesOrPlaceholder(lintingFiles(data.TopIssues)),
			Summary:     fmt.Sprintf("Total: %d", linting),
		})
	}
	if todos > 0 {
		files = append(files, QualityFile{
			File:        "TODOs",
			Suggestions: filesOrPlaceholder(todoFiles(data.TopIssues)),
			Summary:     fmt.Sprintf("Total: %d", todos),
		})
	}
	if docs > 0 {
		files = append(files, QualityFile{
			File:        "Files Without Docs",
			Suggestions: []string{noFilesListed},
			Summary:     fmt.Sprintf("Total: %d", docs),
		})
	}
	if len(files) == 0 {
		files = []QualityFile{{File: "No issues found"}}
	}
	return QualityDialogData{
		Count:       linting + todos + docs,
		Files:       files,
		CountSource: SourceCounters,
		ListSource:  SourceTopIssues,
	}
}

func BuildLintingIssuesDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	linting := data.Issues.Linting
	if linting == 0 {
		return QualityDialogData{
			Files:       []QualityFile{{File: "No linting issues found."}},
			CountSource: SourceCounters,
			ListSource:  SourceNone,
		}
	}
	return QualityDialogData{
		Count: linting,
		Files: []QualityFile{{
			File:        "Linting Issues",
			Suggestions: filesOrPlaceholder(lintingFiles(data.TopIssues)),
			Summary:     fmt.Sprintf("Total: %d", linting),
		}},
		CountSource: SourceCounters,
		ListSource:  SourceTopIssues,
	}
}

// BuildDuplicateFilesDialog has no dedicated counter; both the count
// and the list come from scanning top_issues.
func BuildDuplicateFilesDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	var matched []string
	for _, issue := range data.TopIssues {
		if strings.Contains(strings.ToLower(issue.Summary), "duplicate") ||
			strings.Contains(strings.ToLower(issue.File), "duplicate") {
			matched = append(matched, issue.File)
		}
	}
	if len(matched) == 0 {
		return QualityDialogData{
			Files:       []QualityFile{{File: "No duplicate files found."}},
			CountSource: SourceTopIssues,
			ListSource:  SourceNone,
		}
	}
	return QualityDialogData{
		Count: len(matched),
		Files: []QualityFile{{
			File:        "Duplicate Files",
			Suggestions: matched,
			Summary:     fmt.Sprintf("Total: %d", len(matched)),
		}},
		CountSource: SourceTopIssues,
		ListSource:  SourceTopIssues,
	}
}

func BuildFilesWithoutDocsDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	docs := data.Issues.FilesWithoutDocs
	if docs == 0 {
		return QualityDialogData{
			Files:       []QualityFile{{File: "No undocumented files found."}},
			CountSource: SourceCounters,
			ListSource:  SourceNone,
		}
	}
	return QualityDialogData{
		Count: docs,
		Files: []QualityFile{{
			File:        "Files Without Docs",
			Suggestions: []string{noFilesListed},
			Summary:     fmt.Sprintf("Total: %d", docs),
		}},
		CountSource: SourceCounters,
		ListSource:  SourceNone,
	}
}

func BuildQualityScoreDialog(raw []byte) QualityDialogData {
	data := decodeQuality(raw)
	files := make([]QualityFile, 0, len(data.TopIssues))
	for _, issue := range data.TopIssues {
		files = append(files, QualityFile{
			File:        issue.File,
			Summary:     issue.Summary,
			Suggestions: issue.Suggestions,
		})
	}
	return QualityDialogData{
		Count:       scaledQualityScore(data),
		Files:       files,
		Description: "Overall code quality score (out of 100).",
		CountSource: SourceScore,
		ListSource:  SourceTopIssues,
	}
}

func lintingFiles(issues []qualityTopIssue) []string {
	var out []string
	for _, issue := range issues {
		// "lint" also matches eslint summaries.
		if strings.Contains(strings.ToLower(issue.Summary), "lint") {
			out = append(out, issue.File)
		}
	}
	return out
}

func todoFiles(issues []qualityTopIssue) []string {
	var out []string
	for _, issue := range issues {
		if strings.Contains(strings.ToLower(issue.Summary), "todo") {
			out = append(out, issue.File)
		}
	}
	return out
}

func filesOrPlaceholder(files []string) []string {
	if len(files) == 0 {
		return []string{noFilesListed}
	}
	return files
}
