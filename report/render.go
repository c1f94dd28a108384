// Package report renders analysis runs for terminals and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/c360studio/speccover/analysis"
	"github.com/c360studio/speccover/coverage"
	"github.com/c360studio/speccover/duplicates"
)

var titler = cases.Title(language.English)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	coveredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	percentStyle = lipgloss.NewStyle().Bold(true)
)

// RenderJSON encodes a run as indented JSON for scripting.
func RenderJSON(run *analysis.Run) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run: %w", err)
	}
	return string(data), nil
}

// RenderCoverage renders the coverage side of a run for a terminal.
func RenderCoverage(run *analysis.Run) string {
	var sb strings.Builder
	res := run.Coverage

	sb.WriteString(headerStyle.Render("Coverage Analysis"))
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  run %s", shortID(run.ID))))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Source scenarios: %d   QA scenarios: %d   Coverage: %s\n\n",
		res.SourceCount, res.QACount,
		percentStyle.Render(fmt.Sprintf("%d%%", res.CoveragePercent))))

	sb.WriteString(sectionStyle.Render("Matches"))
	sb.WriteString("\n")
	for _, m := range res.Matches {
		if m.Covered {
			sb.WriteString(coveredStyle.Render("  covered "))
			sb.WriteString(fmt.Sprintf(" %s  ->  %s  (%.2f >= %.2f)\n",
				m.SourceTitle, m.QATitle, m.Similarity, m.Threshold))
		} else {
			sb.WriteString(missingStyle.Render("  missing "))
			sb.WriteString(fmt.Sprintf(" %s  (best %.2f < %.2f)\n",
				m.SourceTitle, m.Similarity, m.Threshold))
		}
	}

	if len(res.UnmatchedQA) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("Unmatched QA scenarios"))
		sb.WriteString("\n")
		for _, title := range res.UnmatchedQA {
			sb.WriteString(mutedStyle.Render("  " + title))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(CoverageSummary(res))
	sb.WriteString("\n")
	return sb.String()
}

// RenderDuplicates renders the duplicate report for a terminal.
func RenderDuplicates(report *duplicates.Report) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Duplicate Analysis"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("QA scenarios: %d   Duplicates: %d   Optimization potential: %s\n",
		report.TotalScenarios, report.DuplicateCount,
		percentStyle.Render(fmt.Sprintf("%d%%", report.OptimizationPercent))))

	for _, g := range report.Groups {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("%s  %s tier  (%d%%)", g.ID, titler.String(string(g.Tier)), g.Similarity)))
		sb.WriteString("\n")
		for _, title := range g.Titles {
			sb.WriteString("  " + title + "\n")
		}
		sb.WriteString(mutedStyle.Render("  " + g.Reason))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("  " + g.Insight))
		sb.WriteString("\n")
	}

	if len(report.Groups) == 0 {
		sb.WriteString("\n")
		sb.WriteString(coveredStyle.Render("No duplicate scenarios found."))
		sb.WriteString("\n")
	}
	return sb.String()
}

// CoverageSummary builds a short deterministic prose summary of a
// coverage result. A generative summarizer may replace this downstream;
// the analysis is complete without one.
func CoverageSummary(res *coverage.Result) string {
	if res.SourceCount == 0 {
		return "No source scenarios were recovered; nothing to cover."
	}
	missing := res.SourceCount - res.MatchedCount
	parts := []string{
		fmt.Sprintf("%d of %d source behaviors are covered by existing tests (%d%%).",
			res.MatchedCount, res.SourceCount, res.CoveragePercent),
	}
	if missing > 0 {
		parts = append(parts, fmt.Sprintf("%d behaviors have no acceptable QA match.", missing))
	}
	if len(res.UnmatchedQA) > 0 {
		parts = append(parts, fmt.Sprintf("%d QA scenarios matched no source behavior and may be orphaned.", len(res.UnmatchedQA)))
	}
	return strings.Join(parts, " ")
}

// shortID truncates a run ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
