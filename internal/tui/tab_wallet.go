package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/tui/components"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

func (a App) updateWallet(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	vaults := a.engine.Snapshot().Vaults

	switch key.String() {
	case "j", "down":
		if a.vaultCursor < len(vaults)-1 {
			a.vaultCursor++
		}
	case "k", "up":
		if a.vaultCursor > 0 {
			a.vaultCursor--
		}
	case "n":
		a = a.openForm(formNewVault)
		return a, a.form.Init()
	case "enter", "e":
		if a.vaultCursor >= len(vaults) {
			return a, nil
		}
		v := vaults[a.vaultCursor]
		a.values.vaultID = v.ID
		a.values.amount = v.Current.String()
		a = a.openForm(formSetAmount)
		return a, a.form.Init()
	}
	return a, nil
}

func (a App) renderWalletTab(cw int) string {
	t := theme.Active
	snap := a.engine.Snapshot()

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total saved", Value: a.money(snap.TotalSaved())},
		{Label: "Vaults", Value: fmt.Sprintf("%d", len(snap.Vaults))},
	}, cw))
	b.WriteString("\n")

	if len(snap.Vaults) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(components.ContentCard("My Vault", dim.Render("No vaults yet. Press n to create one."), cw, false))
		return b.String()
	}

	inner := components.CardInnerWidth(cw)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	cursor := min(a.vaultCursor, len(snap.Vaults)-1)
	for i, v := range snap.Vaults {
		figures := dimStyle.Render(fmt.Sprintf("%s of %s", a.money(v.Current), a.money(v.Goal)))
		pad := max(inner-lipgloss.Width(v.Name)-lipgloss.Width(figures), 1)
		head := nameStyle.Render(v.Name) + dimStyle.Render(strings.Repeat(" ", pad)) + figures

		body := head + "\n" + components.ProgressBar(v.Progress(), inner-8)
		b.WriteString(components.ContentCard("", body, cw, i == cursor))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
