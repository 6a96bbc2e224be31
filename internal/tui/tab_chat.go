package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/assistant"
	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/tui/components"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

const assistantName = "My Wallet AI"

// waitReply blocks until the pending reply arrives or is canceled.
func waitReply(ch <-chan model.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		return replyMsg{msg: msg, ok: ok}
	}
}

func (a App) updateChat(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		return a.switchTab(components.TabHome), nil
	case "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
	case "shift+tab":
		return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
	case "ctrl+r":
		a.chat.Reset()
		a.waiting = false
		a.notice = notice{text: "Conversation reset."}
		return a, nil
	case "enter":
		return a.sendQuery()
	case "pgup":
		a.chatScroll += 5
		return a, nil
	case "pgdown":
		a.chatScroll = max(a.chatScroll-5, 0)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(key)
	return a, cmd
}

func (a App) sendQuery() (tea.Model, tea.Cmd) {
	ch, err := a.chat.Ask(a.input.Value())
	switch {
	case errors.Is(err, assistant.ErrEmptyQuery):
		return a, nil
	case errors.Is(err, assistant.ErrBusy):
		a.notice = notice{text: "Please wait for the reply.", err: true}
		return a, nil
	case err != nil:
		a.notice = notice{text: err.Error(), err: true}
		return a, nil
	}
	a.input.Reset()
	a.waiting = true
	a.chatScroll = 0
	return a, tea.Batch(waitReply(ch), a.spinner.Tick)
}

func (a App) renderChatTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	userLabel := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	botLabel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner - 2).PaddingLeft(2)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var lines []string
	for _, m := range a.engine.Transcript() {
		label := botLabel.Render(assistantName)
		if m.Role == model.RoleUser {
			label = userLabel.Render("You")
		}
		lines = append(lines, label)
		lines = append(lines, strings.Split(textStyle.Render(m.Text), "\n")...)
		lines = append(lines, "")
	}
	if a.waiting {
		lines = append(lines, a.spinner.View()+dim.Render(" "+assistantName+" is typing..."))
	}

	inputCard := components.ContentCard("", a.input.View(), cw, a.activeTab == components.TabChat)

	// Title line and borders take three rows.
	room := max(h-lipgloss.Height(inputCard)-3, 1)
	vp := viewport.New(inner, room)
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(max(vp.TotalLineCount()-room-a.chatScroll, 0))
	transcript := components.ContentCard("Chat", vp.View(), cw, false)

	return transcript + "\n" + inputCard
}
