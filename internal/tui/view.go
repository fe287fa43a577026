package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeLoading:
		body = fmt.Sprintf("\n  %s loading %s...\n", m.spin.View(), m.active.Label)
	case modeLogin:
		body = m.loginForm.View()
	case modeDateInput:
		body = m.dateForm.View()
	case modeSettings:
		body = m.settingsForm.View()
	case modeWorkspaceSelect:
		body = m.viewWorkspaceSelect()
	case modeRefetchConfirm:
		body = m.viewRefetchConfirm()
	case modeRollups:
		body = m.viewRollups()
	case modeError:
		body = m.viewError()
	default:
		body = m.viewDashboard()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString(body)
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("toggldash")
	context := m.active.Label
	if m.outcome != nil && m.outcome.Workspace.Name != "" {
		context = fmt.Sprintf("%s · %s", m.outcome.Workspace.Name, context)
	}
	return fmt.Sprintf("%s  %s\n\n", title, dimStyle.Render(context))
}

func (m Model) viewFooter() string {
	var parts []string

	if m.outcome != nil {
		if m.outcome.FromCache && m.outcome.Status != "" {
			parts = append(parts, warnStyle.Render(m.outcome.Status))
		}
		if !m.outcome.LastRefresh.IsZero() {
			parts = append(parts, dimStyle.Render("fetched "+m.outcome.LastRefresh.Format("2006-01-02 15:04")))
		}
	}
	if m.engine != nil {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d calls left today", m.engine.Remaining())))
	}
	if m.flash != "" {
		parts = append(parts, warnStyle.Render(m.flash))
	}

	help := m.keys.dashboardHelp()
	if m.mode == modeRollups {
		help = m.keys.rollupHelp()
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, dimStyle.Render("  ·  ")))
		b.WriteString("\n")
	}
	if m.mode == modeDashboard || m.mode == modeRollups {
		b.WriteString(dimStyle.Render(renderHelp(help)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewWorkspaceSelect() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Choose a workspace"))
	b.WriteString("\n\n")
	for i, w := range m.choices {
		line := fmt.Sprintf("  %s", w.Name)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %s", w.Name))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter select  esc back  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Something went wrong"))
	b.WriteString("\n\n  ")
	if m.err != nil {
		b.WriteString(m.err.Error())
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r retry  esc back  q quit"))
	b.WriteString("\n")
	return b.String()
}
