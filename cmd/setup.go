package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/config"
	"github.com/theirongolddev/mywallet/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		// A broken file is replaced by the answers below.
		cfg = config.DefaultConfig()
	}

	delay := strconv.Itoa(cfg.Assistant.TypingDelayMS)
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to mywallet!").
				Description("Let's set up a few things."),
			huh.NewInput().
				Title("Currency code").
				Description("Shown in front of every amount.").
				CharLimit(3).
				Value(&cfg.General.Currency),
			huh.NewSelect[string]().
				Title("Where should your wallet be stored?").
				Options(
					huh.NewOption("SQLite database (default)", "sqlite"),
					huh.NewOption("Bolt file", "bolt"),
					huh.NewOption("Memory only, nothing is saved", "memory"),
				).
				Value(&cfg.Store.Backend),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Assistant typing delay (ms)").
				Value(&delay).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return errors.New("enter a whole number of milliseconds")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&cfg.Appearance.Theme),
			huh.NewConfirm().
				Title("Keep the demo account (user@example.com)?").
				Value(&cfg.Auth.DemoAccount),
		),
	)
	if err := form.Run(); err != nil {
		return promptErr(err)
	}

	cfg.Assistant.TypingDelayMS, _ = strconv.Atoi(delay)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `mywallet setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
