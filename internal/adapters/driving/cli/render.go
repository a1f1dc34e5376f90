package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// Confidence bands used to colour the score.
const (
	confidenceHigh = 0.75
	confidenceLow  = 0.5
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// renderResult writes a pipeline result for a terminal reader.
func renderResult(w io.Writer, result *domain.SummaryResult, showDiagnostics bool) {
	renderRecord(w, &result.Summary)

	m := result.Metrics
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"%d chunks, %d retrieved, %dms", m.ChunkCount, m.RetrievedCount, m.LatencyMs)))

	if !showDiagnostics {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, labelStyle.Render("Diagnostics:"))
	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "  %-12s %s%s\n", d.Stage, d.Message, formatMetadata(d.Metadata))
	}
}

// renderRecord writes a stored summary for a terminal reader.
func renderRecord(w io.Writer, rec *domain.SummaryRecord) {
	fmt.Fprintln(w, titleStyle.Render(rec.Title))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s | %s | %s | %s",
		rec.Mode.Role, rec.Mode.Lens, rec.Mode.Detail, rec.SummaryID)))
	fmt.Fprintln(w)

	if strings.TrimSpace(rec.Summary) == "" {
		fmt.Fprintln(w, warningStyle.Render("No summary content was produced."))
	} else {
		fmt.Fprintln(w, rec.Summary)
	}
	fmt.Fprintln(w)

	if len(rec.Citations) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Citations:"))
		for _, c := range rec.Citations {
			fmt.Fprintf(w, "  [%d] %s, p.%d (%.2f)\n", c.Number, c.Section, c.Page, c.Score)
			fmt.Fprintf(w, "      %s\n", mutedStyle.Render(c.Preview))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s %s   %s %.2f\n",
		labelStyle.Render("Confidence:"), confidenceStyle(rec.Confidence).Render(fmt.Sprintf("%.2f", rec.Confidence)),
		labelStyle.Render("Citation density:"), rec.Guardrails.CitationDensity)

	if len(rec.Guardrails.Violations) == 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Guardrails:"), successStyle.Render("passed"))
		return
	}
	fmt.Fprintln(w, labelStyle.Render("Guardrails:"))
	for _, v := range rec.Guardrails.Violations {
		fmt.Fprintf(w, "  %s %s\n", errorStyle.Render(v.Code), v.Message)
	}
}

func confidenceStyle(c float64) lipgloss.Style {
	switch {
	case c >= confidenceHigh:
		return successStyle
	case c >= confidenceLow:
		return lipgloss.NewStyle()
	default:
		return warningStyle
	}
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, meta[k])
	}
	return " " + mutedStyle.Render("("+strings.Join(parts, " ")+")")
}
