package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jander99/claude-config/internal/coordination"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// renderReport formats a validation report for terminal display.
func renderReport(report *coordination.Report) string {
	var sb strings.Builder

	sb.WriteString(headingStyle.Render("Coordination validation"))
	sb.WriteByte('\n')
	if report.IsValid {
		sb.WriteString(okStyle.Render("PASS"))
	} else {
		sb.WriteString(errorStyle.Render("FAIL"))
	}
	sb.WriteString("  " + report.Summary() + "\n")

	if len(report.Cycles) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(headingStyle.Render("Cycles") + "\n")
		for _, cycle := range report.Cycles {
			sb.WriteString("  " + errorStyle.Render(cycle.String()) + "\n")
		}
	}

	for _, issue := range report.Issues {
		var line string
		switch issue.Severity {
		case coordination.SeverityError:
			line = errorStyle.Render(fmt.Sprintf("error   [%s] %s", issue.Type, issue.Description))
		case coordination.SeverityWarning:
			line = warnStyle.Render(fmt.Sprintf("warning [%s] %s", issue.Type, issue.Description))
		default:
			line = infoStyle.Render(fmt.Sprintf("info    [%s] %s", issue.Type, issue.Description))
		}
		sb.WriteString("  " + line + "\n")
		if issue.Suggestion != "" {
			sb.WriteString(infoStyle.Render("          suggestion: "+issue.Suggestion) + "\n")
		}
	}
	return sb.String()
}

// renderStats formats optimization stats and suggestions for terminal
// display.
func renderStats(result *coordination.OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString(headingStyle.Render("Optimization") + "\n")
	stats := result.Stats
	fmt.Fprintf(&sb, "  agents: %d  entry points: %d  cached paths: %d\n",
		stats.AgentCount, stats.EntryPointCount, stats.CachedPathCount)
	fmt.Fprintf(&sb, "  avg out-degree: %.2f  max reach: %d  elapsed: %dms\n",
		stats.AvgOutDegree, stats.MaxReach, stats.ElapsedMS)

	if len(result.Suggestions) > 0 {
		sb.WriteString(headingStyle.Render("Suggestions") + "\n")
		for _, s := range result.Suggestions {
			sb.WriteString("  " + warnStyle.Render(s) + "\n")
		}
	}
	return sb.String()
}
