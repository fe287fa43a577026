package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"toggldash/internal/grouping"
	"toggldash/internal/rollup"
)

// FormatGrouped renders the grouped totals as plain text suitable for pasting
// into an invoice or worklog.
func FormatGrouped(label string, groups []grouping.GroupedProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", label)
	for _, g := range groups {
		name := g.Name
		if g.Client != "" {
			name = fmt.Sprintf("%s / %s", g.Client, g.Name)
		}
		fmt.Fprintf(&b, "%s: %.2fh\n", name, g.Hours())
		for _, line := range g.Entries {
			fmt.Fprintf(&b, "  - %s: %.2fh\n", line.Description, line.Hours())
		}
	}
	fmt.Fprintf(&b, "Total: %.2fh\n", float64(grouping.TotalSeconds(groups))/3600)
	return b.String()
}

// FormatRollups renders one rollup granularity as plain text, one period per
// line with worked hours, target and delta.
func FormatRollups(label string, periods []rollup.PeriodRollup, target rollup.TargetConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", label)
	for _, p := range periods {
		targetHours, _ := target.PeriodTarget(p)
		fmt.Fprintf(&b, "%s: %.2fh worked, %.2fh target, %+.2fh\n", p.Label, p.Hours(), targetHours, target.Delta(p))
	}
	return b.String()
}

// copyToClipboard writes text to the system clipboard.
func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
