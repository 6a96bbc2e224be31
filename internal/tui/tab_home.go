package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/tui/components"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

// adviceQuery is asked of the responder to fill the insight card.
const adviceQuery = "any suggestions?"

func (a App) renderHomeTab(cw int) string {
	t := theme.Active
	snap := a.engine.Snapshot()
	spent := snap.TotalSpending()

	metrics := []components.Metric{
		{
			Label: "Total balance",
			Value: a.money(snap.Balance),
			Alert: snap.Balance.IsNegative(),
		},
		{
			Label: "Spent",
			Value: a.money(spent),
			Note:  fmt.Sprintf("%d categories", snap.Categories.Len()),
		},
		{
			Label: "Saved",
			Value: a.money(snap.TotalSaved()),
			Note:  fmt.Sprintf("%d vaults", len(snap.Vaults)),
		},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	values := make([]float64, len(snap.Monthly.Data))
	for i, d := range snap.Monthly.Data {
		values[i] = d.InexactFloat64()
	}
	chartW := components.CardInnerWidth(halves[0])
	chart := components.ColumnChart(values, snap.Monthly.Labels, t.Accent, chartW, 8)
	if chart == "" {
		chart = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No spending recorded yet.")
	}

	insightW := components.CardInnerWidth(halves[1])
	insight := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Width(insightW).
		Render(a.responder.Respond(adviceQuery, snap))

	if top, ok := snap.Categories.Top(); ok {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		insight += "\n\n" + dim.Width(insightW).Render(fmt.Sprintf("Most of your money goes to %s (%s of spending).",
			top.Name, cli.FormatPercent(cli.Share(top.Amount, spent))))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Monthly spending", chart, halves[0], false),
		components.ContentCard("Insight", insight, halves[1], false),
	}))
	return b.String()
}
