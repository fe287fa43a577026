package tui

import (
	"fmt"
	"strings"

	"toggldash/internal/grouping"
)

func (m Model) viewDashboard() string {
	if m.outcome == nil {
		return dimStyle.Render("  nothing loaded yet, press r to refresh\n")
	}
	if len(m.outcome.Grouped) == 0 {
		return dimStyle.Render(fmt.Sprintf("  no tracked time for %s\n", m.active.Label))
	}

	var b strings.Builder
	for _, project := range m.outcome.Grouped {
		b.WriteString(renderProject(project))
	}

	total := float64(grouping.TotalSeconds(m.outcome.Grouped)) / 3600
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("  Total  %6.2fh", total)))
	b.WriteString("\n")
	return b.String()
}

func renderProject(project grouping.GroupedProject) string {
	var b strings.Builder

	name := headerStyle.Render(project.Name)
	if project.Client != "" {
		name = fmt.Sprintf("%s %s", clientStyle.Render(project.Client+" /"), name)
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", name, totalStyle.Render(fmt.Sprintf("%.2fh", project.Hours()))))

	for _, line := range project.Entries {
		b.WriteString(fmt.Sprintf("    %-50s %6.2fh\n", truncate(line.Description, 50), line.Hours()))
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
