package cli

import "github.com/charmbracelet/lipgloss"

// Style definitions shared by the check and alerts output.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

// toneStyle picks the display style for a tone kind.
func toneStyle(kind string) lipgloss.Style {
	switch kind {
	case "error":
		return errorStyle
	case "warn":
		return warnStyle
	case "unknown-fetch":
		return unknownStyle
	default:
		return labelStyle
	}
}
