package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"toggldash/internal/domain"
)

// updateRefetchConfirm handles the "really spend N calls?" prompt. A re-fetch
// burns one budget unit per day in the span, so it is never triggered by a
// single keypress.
func (m Model) updateRefetchConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "enter":
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refetchCmd())
	case "n", "esc":
		return m.backToDashboard()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewRefetchConfirm() string {
	days := domain.DaysBetween(m.active.StartDate(), m.active.EndDate())
	remaining := 0
	cached := 0
	if m.engine != nil {
		remaining = m.engine.Remaining()
		cached = m.engine.CachedDays(m.workspaceID, m.active)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Re-fetch from Toggl"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Span: %s\n", m.active.Label)
	fmt.Fprintf(&b, "  Cost: %d API call(s), %d left today\n", days, remaining)
	if cached > 0 {
		fmt.Fprintf(&b, "  Cached already: %d of %d day(s), re-fetch overwrites them\n", cached, days)
	}
	if days > remaining {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  Only the first %d day(s) will be fetched.\n", remaining)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  y/enter re-fetch  n/esc cancel"))
	b.WriteString("\n")
	return b.String()
}
