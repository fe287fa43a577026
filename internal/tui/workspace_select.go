package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"toggldash/internal/store"
	"toggldash/internal/sync"
)

func (m Model) updateWorkspaceSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.workspaceID = m.choices[m.cursor].ID
		m.settings.WorkspaceID = m.workspaceID
		store.WriteSettings(m.dir, m.settings)
		m.mode = modeLoading
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(sync.IntentCacheOnly, true))
	case "esc":
		if m.outcome != nil {
			m.mode = modeDashboard
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}
