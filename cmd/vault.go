package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Savings goals",
	RunE:  runVaultList,
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vaults and their progress",
	RunE:  runVaultList,
}

var vaultCreateCmd = &cobra.Command{
	Use:     "create <name> <goal>",
	Short:   "Create a vault with a savings goal",
	Example: `  mywallet vault create "New Laptop" 3,500,000`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runVaultCreate,
}

var vaultSetCmd = &cobra.Command{
	Use:   "set <id> <amount>",
	Short: "Set how much is saved in a vault",
	Args:  cobra.ExactArgs(2),
	RunE:  runVaultSet,
}

func init() {
	vaultCmd.AddCommand(vaultListCmd, vaultCreateCmd, vaultSetCmd)
	rootCmd.AddCommand(vaultCmd)
}

func runVaultList(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, _ model.Session) error {
		snap := e.engine.Snapshot()

		fmt.Println()
		fmt.Println(cli.RenderTitle("MY VAULT"))
		fmt.Println()

		if len(snap.Vaults) == 0 {
			fmt.Println(cli.RenderNotice("No vaults yet. Create one with: mywallet vault create <name> <goal>"))
			fmt.Println()
			return nil
		}

		rows := make([][]string, 0, len(snap.Vaults))
		for _, v := range snap.Vaults {
			rows = append(rows, []string{
				v.Name,
				v.ID,
				e.money(v.Current),
				e.money(v.Goal),
				cli.FormatPercent(v.Progress()),
				cli.RenderShareBar(v.Progress(), 20),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Vault", "ID", "Saved", "Goal", "Progress", ""},
			Rows:    rows,
		}))
		fmt.Println()
		fmt.Println(cli.RenderNotice("Total saved: %s", e.money(snap.TotalSaved())))
		fmt.Println()
		return nil
	})
}

func runVaultCreate(_ *cobra.Command, args []string) error {
	// Everything but the last argument is the name, so quotes are optional.
	name := strings.Join(args[:len(args)-1], " ")
	goal, err := wallet.ParseAmount(args[len(args)-1])
	if err != nil {
		return &wallet.InputError{Message: wallet.MsgVaultGoal}
	}

	return withWallet(func(e *env, _ model.Session) error {
		id, err := e.engine.CreateVault(name, goal)
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("\n  Created vault %q (%s) with a goal of %s.\n\n", name, id, e.money(goal))
		}
		return nil
	})
}

func runVaultSet(_ *cobra.Command, args []string) error {
	amount, err := wallet.ParseAmount(args[1])
	if err != nil {
		return &wallet.InputError{Message: wallet.MsgVaultAmount}
	}

	return withWallet(func(e *env, _ model.Session) error {
		if err := e.engine.SetVaultAmount(args[0], amount); err != nil {
			return err
		}
		if !flagQuiet {
			for _, v := range e.engine.Snapshot().Vaults {
				if v.ID == args[0] {
					fmt.Printf("\n  %s: %s of %s (%s)\n\n",
						v.Name, e.money(v.Current), e.money(v.Goal), cli.FormatPercent(v.Progress()))
				}
			}
		}
		return nil
	})
}
