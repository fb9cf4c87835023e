package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"delrest/internal/classify"
	"delrest/internal/run"
)

var (
	keepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))

	actStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A97F")).
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B61FF")).
			Padding(0, 1)
)

func labelStyle(label classify.Label) lipgloss.Style {
	switch label {
	case classify.Keep:
		return keepStyle
	case classify.Act:
		return actStyle
	default:
		return skipStyle
	}
}

// renderReport writes the run outcome: one line per considered file in
// verbose mode, and always a summary block with the per-label counts.
func renderReport(w io.Writer, report *run.Report, verbose bool) {
	if verbose {
		for _, entry := range report.Entries {
			line := fmt.Sprintf("%-6s %s: %s",
				labelStyle(entry.Label).Render(entry.Label.String()), entry.Path, entry.Action)
			if entry.Err != nil {
				line = fmt.Sprintf("%-6s %s: %s",
					failStyle.Render("error"), entry.Path, entry.Err)
			}
			fmt.Fprintln(w, line)
		}
	}

	verb := report.Op.Past()
	if report.DryRun {
		verb = "would be " + verb
	}

	summary := fmt.Sprintf("%d kept, %d %s, %d skipped",
		report.Counts.Keep, report.Counts.Act, verb, report.Counts.Skip)
	if failed := len(report.Failures()); failed > 0 {
		summary += failStyle.Render(fmt.Sprintf(", %d failed", failed))
	}
	fmt.Fprintln(w, summaryStyle.Render(summary))
}
