// Package tui provides the interactive Bubble Tea dashboard for mywallet.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/assistant"
	"github.com/theirongolddev/mywallet/internal/auth"
	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/tui/components"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// replyMsg carries the assistant's reply once the typing delay is over.
// ok is false when the reply was canceled by a reset.
type replyMsg struct {
	msg model.ChatMessage
	ok  bool
}

// Deps are the services the dashboard drives.
type Deps struct {
	Engine    *wallet.Engine
	Gate      *auth.Gate
	Chat      *assistant.Chat
	Responder *assistant.Responder
	Currency  string
}

// notice is a one-line message shown above the status bar until the next
// key press.
type notice struct {
	text string
	err  bool
}

// App is the root Bubble Tea model.
type App struct {
	engine    *wallet.Engine
	gate      *auth.Gate
	chat      *assistant.Chat
	responder *assistant.Responder
	currency  string

	session  model.Session
	loggedIn bool

	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    notice

	// At most one form is open at a time.
	form     *huh.Form
	formKind formKind
	values   *formValues

	vaultCursor int

	input      textinput.Model
	spinner    spinner.Model
	waiting    bool
	chatScroll int // lines scrolled up from the newest message
}

// NewApp creates the root model. Without a stored session the login form
// opens first.
func NewApp(d Deps) App {
	in := textinput.New()
	in.Placeholder = "Ask about your balance, spending or vaults..."
	in.Prompt = "› "
	in.CharLimit = 280

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.AccentBright)

	a := App{
		engine:    d.Engine,
		gate:      d.Gate,
		chat:      d.Chat,
		responder: d.Responder,
		currency:  d.Currency,
		input:     in,
		spinner:   sp,
		values:    &formValues{},
	}
	if a.responder == nil {
		a.responder = assistant.NewResponder(assistant.WithCurrency(d.Currency))
	}

	if sess, ok := a.gate.CurrentSession(); ok {
		a.session, a.loggedIn = sess, true
	} else {
		a = a.openForm(formAuth)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(a.contentWidth()-8, 10)
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case replyMsg:
		// A reply canceled by a reset can land after the next question
		// was asked.
		a.waiting = a.chat.Pending()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a = a.switchTab(tab)
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	a.notice = notice{}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == components.TabChat {
		return a.updateChat(key)
	}

	switch k := key.String(); k {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "tab", "right":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
	case "shift+tab", "left":
		return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
	case "L":
		return a.logout()
	default:
		if len(k) == 1 {
			if idx := components.TabIdxByKey(rune(k[0])); idx >= 0 {
				return a.switchTab(idx), nil
			}
		}
	}

	switch a.activeTab {
	case components.TabWallet:
		return a.updateWallet(key)
	case components.TabXSpend:
		return a.updateXSpend(key)
	}
	return a, nil
}

func (a App) switchTab(idx int) App {
	a.activeTab = idx
	if idx == components.TabChat {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
	return a
}

func (a App) logout() (tea.Model, tea.Cmd) {
	if err := a.gate.Logout(); err != nil {
		a.notice = notice{text: "Could not log out: " + err.Error(), err: true}
		return a, nil
	}
	a.session, a.loggedIn = model.Session{}, false
	a = a.switchTab(components.TabHome)
	a = a.openForm(formAuth)
	return a, a.form.Init()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(a.currency, d)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  mywallet needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"h w x c", "Jump to tab"},
			{"tab ← →", "Previous / Next tab"},
			{"j k", "Move through vaults"},
		}},
		{"Actions", [][2]string{
			{"n", "New vault (Wallet)"},
			{"enter e", "Set vault amount (Wallet)"},
			{"a", "Add spending (XSpend)"},
			{"ctrl+r", "Reset the conversation (Chat)"},
			{"pgup pgdn", "Scroll the conversation (Chat)"},
			{"esc", "Leave the chat box"},
			{"L", "Log out"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q quit  ?  close help"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.session.DisplayName())

	footer := statusBar
	if a.notice.text != "" {
		footer = a.renderNotice(w) + "\n" + statusBar
	}

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(footer), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabHome:
		content = a.renderHomeTab(cw)
	case components.TabWallet:
		content = a.renderWalletTab(cw)
	case components.TabXSpend:
		content = a.renderXSpendTab(cw)
	case components.TabChat:
		content = a.renderChatTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case components.TabWallet:
		return "n new vault  enter set amount  ? help  q quit"
	case components.TabXSpend:
		return "a add spending  ? help  q quit"
	case components.TabChat:
		return "enter send  ctrl+r reset  esc leave  ctrl+c quit"
	default:
		return "h w x c tabs  L log out  ? help  q quit"
	}
}

func (a App) renderNotice(width int) string {
	t := theme.Active
	fg := t.Green
	if a.notice.err {
		fg = t.Red
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(t.Background).
		Bold(true).
		Width(width).
		Render(" " + a.notice.text)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
