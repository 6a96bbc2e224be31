package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/assistant"
	"github.com/theirongolddev/mywallet/internal/tui"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive wallet dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) (err error) {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); err == nil {
			err = cerr
		}
	}()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	r := e.responder()
	app := tui.NewApp(tui.Deps{
		Engine:    e.engine,
		Gate:      e.gate,
		Chat:      assistant.NewChat(e.engine, r, e.cfg.TypingDelay(), e.logger),
		Responder: r,
		Currency:  e.cfg.General.Currency,
	})

	e.logger.Info("dashboard started")
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
