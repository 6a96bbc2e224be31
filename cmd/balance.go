package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your balance, spending and savings at a glance",
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, sess model.Session) error {
		snap := e.engine.Snapshot()

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("MY WALLET  %s", sess.DisplayName())))
		fmt.Println()

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"", "Amount"},
			Rows: [][]string{
				{"Balance", cli.RenderAmount(e.money(snap.Balance), snap.Balance.IsNegative())},
				{"Spent", e.money(snap.TotalSpending())},
				{"Saved in vaults", e.money(snap.TotalSaved())},
			},
		}))

		if top, ok := snap.Categories.Top(); ok {
			fmt.Println()
			fmt.Println(cli.RenderNotice("Most of your money goes to %s (%s of spending).",
				top.Name, cli.FormatPercent(cli.Share(top.Amount, snap.TotalSpending()))))
		}
		fmt.Println()
		return nil
	})
}
