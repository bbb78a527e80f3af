package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles, named by role. Lipgloss degrades the colors to what the
// terminal supports.
var (
	StyleLocation = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	StyleHeading  = StyleLocation
	StyleError    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	StyleWarning  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	StyleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies style when colors are enabled and returns text
// unchanged otherwise.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
