package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the signed-in user on the right.
func RenderStatusBar(width int, hints, user string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	userStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface)

	left := " " + hints
	right := ""
	if user != "" {
		right = userStyle.Render(user) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
