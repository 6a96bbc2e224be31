package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/mywallet/internal/auth"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

type formKind int

const (
	formNone formKind = iota
	formAuth
	formNewVault
	formSetAmount
	formSpending
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// formValues backs every form field. It is shared by pointer so that huh
// can write into it while App is passed around by value.
type formValues struct {
	mode     string
	name     string
	email    string
	contact  string
	password string

	vaultID   string
	vaultName string
	goal      string
	amount    string

	entry string
}

func (a App) formWidth() int {
	return min(max(a.width-8, 30), 64)
}

func (a App) openForm(kind formKind) App {
	v := a.values
	var form *huh.Form

	switch kind {
	case formAuth:
		if v.mode == "" {
			v.mode = modeLogin
		}
		v.password = ""
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Welcome to My Wallet").
					Options(
						huh.NewOption("Log in", modeLogin),
						huh.NewOption("Create an account", modeRegister),
					).
					Value(&v.mode),
			),
			huh.NewGroup(
				huh.NewInput().Title("Email").Value(&v.email),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&v.password),
			).WithHideFunc(func() bool { return v.mode != modeLogin }),
			huh.NewGroup(
				huh.NewInput().Title("Full name").Value(&v.name),
				huh.NewInput().Title("Email").Value(&v.email),
				huh.NewInput().Title("Contact").Placeholder("optional").Value(&v.contact),
				huh.NewInput().Title("Password").
					Description("At least 6 characters.").
					EchoMode(huh.EchoModePassword).
					Value(&v.password),
			).WithHideFunc(func() bool { return v.mode != modeRegister }),
		)

	case formNewVault:
		v.vaultName, v.goal = "", ""
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Vault name").Placeholder("e.g. Holiday").Value(&v.vaultName),
				huh.NewInput().Title("Goal amount").Placeholder("e.g. 5000000").Value(&v.goal),
			),
		)

	case formSetAmount:
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Current amount").
					Description("How much is saved in this vault now.").
					Value(&v.amount),
			),
		)

	case formSpending:
		v.entry = ""
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Add spending").
					Description("Category, Amount").
					Placeholder("Food, 50000").
					Value(&v.entry),
			),
		)
	}

	a.form = form.WithShowHelp(true).WithWidth(a.formWidth())
	a.formKind = kind
	return a
}

func (a App) closeForm() App {
	a.form = nil
	a.formKind = formNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submitForm()
	case huh.StateAborted:
		if a.formKind == formAuth {
			return a, tea.Quit
		}
		return a.closeForm(), nil
	}
	return a, cmd
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	kind := a.formKind
	a = a.closeForm()

	switch kind {
	case formAuth:
		var err error
		if a, err = a.submitAuth(); err != nil {
			a = a.openForm(formAuth)
			return a, a.form.Init()
		}
	case formNewVault:
		a = a.submitNewVault()
	case formSetAmount:
		a = a.submitVaultAmount()
	case formSpending:
		a = a.submitSpending()
	}
	return a, nil
}

func (a App) submitAuth() (App, error) {
	v := a.values

	var err error
	switch v.mode {
	case modeRegister:
		a.session, err = a.gate.Register(auth.Registration{
			Name:     strings.TrimSpace(v.name),
			Email:    strings.TrimSpace(v.email),
			Contact:  strings.TrimSpace(v.contact),
			Password: v.password,
		})
	default:
		a.session, err = a.gate.Authenticate(auth.Credentials{
			Email:    strings.TrimSpace(v.email),
			Password: v.password,
		})
	}
	v.password = ""
	if err != nil {
		a.notice = notice{text: auth.UserMessage(err), err: true}
		return a, err
	}

	a.loggedIn = true
	a.notice = notice{text: "Welcome, " + a.session.DisplayName() + "!"}
	return a, nil
}

func (a App) submitNewVault() App {
	v := a.values
	name := strings.TrimSpace(v.vaultName)
	if name == "" {
		a.notice = notice{text: wallet.MsgVaultName, err: true}
		return a
	}
	goal, err := wallet.ParseAmount(v.goal)
	if err != nil {
		a.notice = notice{text: wallet.MsgVaultGoal, err: true}
		return a
	}
	if _, err := a.engine.CreateVault(name, goal); err != nil {
		a.notice = notice{text: wallet.UserMessage(err), err: true}
		return a
	}
	a.vaultCursor = len(a.engine.Snapshot().Vaults) - 1
	a.notice = notice{text: "Vault " + name + " created."}
	return a
}

func (a App) submitVaultAmount() App {
	v := a.values
	amount, err := wallet.ParseAmount(v.amount)
	if err != nil {
		a.notice = notice{text: wallet.MsgVaultAmount, err: true}
		return a
	}
	if err := a.engine.SetVaultAmount(v.vaultID, amount); err != nil {
		a.notice = notice{text: wallet.UserMessage(err), err: true}
		return a
	}
	a.notice = notice{text: "Vault updated."}
	return a
}

func (a App) submitSpending() App {
	category, amount, err := wallet.ParseSpendingEntry(a.values.entry)
	if err == nil {
		err = a.engine.RecordSpending(category, amount)
	}
	if err != nil {
		a.notice = notice{text: wallet.UserMessage(err), err: true}
		return a
	}
	a.notice = notice{text: "Added " + a.money(amount) + " to " + category + "."}
	return a
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)

	title := map[formKind]string{
		formAuth:      "My Wallet",
		formNewVault:  "New vault",
		formSetAmount: "Update vault",
		formSpending:  "XSpend",
	}[a.formKind]

	body := titleStyle.Render(title) + "\n\n"
	if a.notice.err {
		body += errStyle.Render(a.notice.text) + "\n\n"
	}
	body += a.form.View()

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
