package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a single row of block characters.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := peakOf(values)

	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(v / peak * 8))
		b.WriteRune(eighths[min(max(idx, 1), 8)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(b.String())
}

// ColumnChart renders one labelled column per value, height rows tall, with
// the column's compact amount printed above it. Falls back to a Sparkline
// when the area is too small.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}
	if height < 3 || width < n*4 {
		return Sparkline(values, color)
	}
	t := theme.Active

	colW := min(width/n, 10)
	barW := max(colW-2, 1)
	peak := peakOf(values)

	bg := lipgloss.NewStyle().Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	cell := func(s string, style lipgloss.Style) string {
		s = truncate(s, colW)
		left := (colW - lipgloss.Width(s)) / 2
		right := colW - lipgloss.Width(s) - left
		return bg.Render(strings.Repeat(" ", left)) + style.Render(s) + bg.Render(strings.Repeat(" ", right))
	}

	lines := make([]string, 0, height+2)

	var top strings.Builder
	for _, v := range values {
		top.WriteString(cell(CompactAmount(v), dimStyle))
	}
	lines = append(lines, top.String())

	// Heights in eighths of a row.
	units := make([]int, n)
	for i, v := range values {
		units[i] = int(math.Round(math.Max(v, 0) / peak * float64(height*8)))
	}
	for row := height; row >= 1; row-- {
		var b strings.Builder
		floor := (row - 1) * 8
		for _, u := range units {
			fill := min(max(u-floor, 0), 8)
			b.WriteString(cell(strings.Repeat(string(eighths[fill]), barW), barStyle))
		}
		lines = append(lines, b.String())
	}

	var bottom strings.Builder
	for i := range values {
		lbl := ""
		if i < len(labels) {
			lbl = labels[i]
		}
		bottom.WriteString(cell(lbl, dimStyle))
	}
	lines = append(lines, bottom.String())

	return strings.Join(lines, "\n")
}

// CompactAmount formats v with a k/M/B suffix.
func CompactAmount(v float64) string {
	abs := math.Abs(v)
	for _, u := range []struct {
		div    float64
		suffix string
	}{{1e9, "B"}, {1e6, "M"}, {1e3, "k"}} {
		if abs >= u.div {
			q := v / u.div
			if q == math.Trunc(q) {
				return fmt.Sprintf("%.0f%s", q, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", q, u.suffix)
		}
	}
	return fmt.Sprintf("%.0f", v)
}

func peakOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		return 1
	}
	return peak
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
