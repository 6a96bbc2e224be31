package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

var spendCmd = &cobra.Command{
	Use:   "spend <category> <amount> | spend \"Category, Amount\"",
	Short: "Record spending against a category",
	Example: `  mywallet spend Food 50000
  mywallet spend "Transport, 12,000"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSpend,
}

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Spending breakdown by category and month",
	RunE:  runSpending,
}

func init() {
	rootCmd.AddCommand(spendCmd, spendingCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	var (
		category string
		amount   decimal.Decimal
		err      error
	)
	if len(args) == 1 {
		category, amount, err = wallet.ParseSpendingEntry(args[0])
	} else {
		category = args[0]
		if amount, err = wallet.ParseAmount(args[1]); err != nil {
			err = &wallet.InputError{Message: wallet.MsgSpending}
		}
	}
	if err != nil {
		return err
	}

	return withWallet(func(e *env, _ model.Session) error {
		if err := e.engine.RecordSpending(category, amount); err != nil {
			return err
		}
		if !flagQuiet {
			snap := e.engine.Snapshot()
			spent, _ := snap.Categories.Get(category)
			fmt.Printf("\n  Recorded %s on %s.\n", e.money(amount), category)
			fmt.Printf("  %s total: %s  |  Balance: %s\n\n",
				category, e.money(spent), cli.RenderAmount(e.money(snap.Balance), snap.Balance.IsNegative()))
		}
		return nil
	})
}

func runSpending(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, _ model.Session) error {
		snap := e.engine.Snapshot()
		total := snap.TotalSpending()

		fmt.Println()
		fmt.Println(cli.RenderTitle("XSPEND"))
		fmt.Println()

		if snap.Categories.Len() == 0 {
			fmt.Println(cli.RenderNotice("No spending recorded yet."))
			fmt.Println()
			return nil
		}

		rows := make([][]string, 0, snap.Categories.Len()+1)
		for _, c := range snap.Categories.Entries() {
			share := cli.Share(c.Amount, total)
			rows = append(rows, []string{
				c.Name,
				e.money(c.Amount),
				cli.FormatPercent(share),
				cli.RenderShareBar(share, 20),
			})
		}
		rows = append(rows, []string{"Total", e.money(total), "", ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Category",
			Headers: []string{"Category", "Amount", "Share", ""},
			Rows:    rows,
		}))
		fmt.Println()

		if len(snap.Monthly.Labels) > 0 {
			monthly := make([][]string, 0, len(snap.Monthly.Labels))
			for i, label := range snap.Monthly.Labels {
				monthly = append(monthly, []string{label, e.money(snap.Monthly.Data[i])})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Monthly Spending",
				Headers: []string{"Month", "Spent"},
				Rows:    monthly,
			}))
			fmt.Println()
		}

		fmt.Println(cli.RenderNotice(`Add spending with: mywallet spend "Food, 50000"`))
		fmt.Println()
		return nil
	})
}
