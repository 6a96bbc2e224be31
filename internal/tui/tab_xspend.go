package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/tui/components"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

func (a App) updateXSpend(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "a" {
		a = a.openForm(formSpending)
		return a, a.form.Init()
	}
	return a, nil
}

func (a App) renderXSpendTab(cw int) string {
	t := theme.Active
	snap := a.engine.Snapshot()
	total := snap.TotalSpending()

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total spending", Value: a.money(total)},
		{Label: "Balance", Value: a.money(snap.Balance), Alert: snap.Balance.IsNegative()},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	entries := snap.Categories.Entries()
	if len(entries) == 0 {
		b.WriteString(components.ContentCard("Spending by category",
			dim.Render("No spending yet. Press a to add some."), cw, false))
		return b.String()
	}

	nameW := 4
	for _, c := range entries {
		nameW = max(nameW, lipgloss.Width(c.Name))
	}
	nameW = min(nameW, inner/4)
	amountW := 0
	for _, c := range entries {
		amountW = max(amountW, lipgloss.Width(a.money(c.Amount)))
	}
	barW := max(inner-nameW-amountW-10, 8)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(nameW)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(amountW).Align(lipgloss.Right)
	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Width(7).Align(lipgloss.Right)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	rows := make([]string, 0, len(entries))
	for _, c := range entries {
		share := cli.Share(c.Amount, total)
		rows = append(rows, nameStyle.Render(truncName(c.Name, nameW))+space+
			amountStyle.Render(a.money(c.Amount))+space+
			components.ShareBar(share, barW)+
			pctStyle.Render(cli.FormatPercent(share)))
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Spending by category (%d)", len(entries)),
		strings.Join(rows, "\n"), cw, false))
	return b.String()
}

func truncName(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:max(w-1, 0)]) + "…"
}
