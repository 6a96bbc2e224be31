package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Backend: %s\n", cfg.Store.Backend)
	if cfg.Store.Backend != "memory" {
		fmt.Printf("    Path:    %s\n", cfg.StorePath())
	}
	fmt.Println()

	fmt.Println("  [Assistant]")
	fmt.Printf("    Typing delay:   %s\n", cfg.TypingDelay())
	fmt.Printf("    High balance:   %.0f\n", cfg.Assistant.HighBalance)
	fmt.Printf("    Spending ratio: %.2f\n", cfg.Assistant.SpendingRatio)
	fmt.Println()

	fmt.Println("  [Auth]")
	fmt.Printf("    Demo account: %v\n", cfg.Auth.DemoAccount)
	fmt.Printf("    Bcrypt cost:  %d\n", cfg.Auth.BcryptCost)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Println("  Run `mywallet setup` to reconfigure.")
	return nil
}
