package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

// ColorForProgress returns the bar color for a savings progress of 0-100.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Green
	case pct >= 75:
		return t.Yellow
	case pct >= 50:
		return t.AccentBright
	default:
		return t.Accent
	}
}

// ProgressBar renders a bar for pct in [0, 100] followed by the percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)

	color := ColorForProgress(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Border)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return bar.ViewAs(pct/100) + space + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// ShareBar renders a thin horizontal bar for a category's share of spending.
func ShareBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Border)
	return bar.ViewAs(pct / 100)
}
