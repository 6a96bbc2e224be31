package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Wallet palette
var (
	ColorPrimary   = lipgloss.Color("#2563EB")
	ColorDarkBlue  = lipgloss.Color("#1D4ED8")
	ColorBorder    = lipgloss.Color("#D1D5DB")
	ColorTextDim   = lipgloss.Color("#9CA3AF")
	ColorTextMuted = lipgloss.Color("#6B7280")
	ColorText      = lipgloss.Color("#F3F4F6")
	ColorGreen     = lipgloss.Color("#22C55E")
	ColorRed       = lipgloss.Color("#EF4444")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table is a bordered text table for CLI output. The first column is left
// aligned, the rest are right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDarkBlue).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := valueStyle.Padding(0, 1)
			if row == table.HeaderRow {
				style = headerStyle.Padding(0, 1)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}

// RenderShareBar renders a horizontal bar for a 0-100 share.
func RenderShareBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return goodStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderAmount renders a money string, red when negative.
func RenderAmount(s string, negative bool) string {
	if negative {
		return errorStyle.Render(s)
	}
	return valueStyle.Render(s)
}

// RenderNotice renders a short muted line, indented like the rest of the
// command output.
func RenderNotice(format string, args ...any) string {
	return mutedStyle.Render("  " + fmt.Sprintf(format, args...))
}

// RenderError renders a validation message.
func RenderError(title, msg string) string {
	return errorStyle.Render("  "+title+": ") + valueStyle.Render(msg)
}
