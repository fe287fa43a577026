package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "#7C3AED"
	colorDim    = "#6B7280"
	colorGood   = "#10B981"
	colorBad    = "#EF4444"
	colorWarn   = "#F59E0B"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDim))

	clientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent))

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGood))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBad))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarn))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorBad))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))
)

// deltaStyle picks the color for a worked-minus-target value.
func deltaStyle(delta float64) lipgloss.Style {
	switch {
	case delta > 0:
		return positiveStyle
	case delta < 0:
		return negativeStyle
	default:
		return dimStyle
	}
}
