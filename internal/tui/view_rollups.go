package tui

import (
	"fmt"
	"strings"
	"time"

	"toggldash/internal/domain"
)

func (m Model) viewRollups() string {
	if m.outcome == nil {
		return dimStyle.Render("  nothing loaded yet, press r to refresh\n")
	}

	target := m.settings.TargetConfig()
	periods := m.currentPeriods()

	// Overtime never counts days that have not happened yet, even when the
	// active span extends past today.
	activeEnd := m.active.EndDate()
	if today := domain.Midnight(time.Now()); today.Before(activeEnd) {
		activeEnd = today
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s rollups", granularityName(m.granularity))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %9s %9s %9s %9s\n", "period", "worked", "target", "delta", "overtime")))

	for _, p := range periods {
		targetHours, _ := target.PeriodTarget(p)
		delta := target.Delta(p)
		overtime := target.OvertimeWorked(p, m.outcome.Rollups.Daily, activeEnd)

		b.WriteString(fmt.Sprintf("  %-28s %8.2fh %8.2fh %s %8.2fh\n",
			p.Label,
			p.Hours(),
			targetHours,
			deltaStyle(delta).Render(fmt.Sprintf("%+8.2fh", delta)),
			overtime,
		))
	}

	b.WriteString("\n")
	b.WriteString(m.viewDailyStrip())
	return b.String()
}

// viewDailyStrip shows the most recent days of the active span so the period
// rows above have day-level context.
func (m Model) viewDailyStrip() string {
	daily := m.outcome.Rollups.Daily
	const maxDays = 14
	if len(daily) > maxDays {
		daily = daily[len(daily)-maxDays:]
	}

	target := m.settings.TargetConfig()
	var b strings.Builder
	b.WriteString(dimStyle.Render("  recent days\n"))
	for _, day := range daily {
		marker := ""
		if target.DayTarget(day.Date) == 0 {
			marker = dimStyle.Render(" (off)")
		}
		b.WriteString(fmt.Sprintf("  %s  %6.2fh%s\n", day.Date.Format(domain.DayFormat), day.Hours(), marker))
	}
	return b.String()
}

func granularityName(g rollupGranularity) string {
	switch g {
	case rollupMonthly:
		return "Monthly"
	case rollupYearly:
		return "Yearly"
	default:
		return "Weekly"
	}
}
