// Package budget handles the monthly budget commands
package budget

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/ledger"
	"fjacquet/khoroch-khata/internal/report"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Set and track monthly category budgets",
	Long: `Set monthly spending limits per expense category for the active profile and
compare them with this month's expenses.`,
}

var setCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set the monthly limit of a category; 0 hides it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := root.ParseAmount(args[1])
		if err != nil {
			return err
		}
		if err := root.App.GetLedger().SetBudget(cmd.Context(), args[0], limit); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Budget for %s set to %s\n", args[0], currencyutils.Format(limit, root.Currency()))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show this month's spending against every budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := root.App.GetLedger().State()
		profile, ok := report.ActiveProfile(state)
		if !ok {
			return ledger.ErrNoActiveProfile
		}
		lines := report.BudgetProgress(profile, report.CurrentMonthExpenses(state.Transactions, profile.ID, root.Now()))
		if len(lines) == 0 {
			fmt.Fprintln(root.Out(cmd), "No budgets set")
			return nil
		}
		for _, b := range lines {
			status := ""
			if b.Exceeded() {
				status = "\tLIMIT REACHED"
			}
			fmt.Fprintf(root.Out(cmd), "%s\t%s / %s\t%s%%%s\n", b.Category,
				currencyutils.Format(b.Spent, state.Currency),
				currencyutils.Format(b.Limit, state.Currency),
				b.Percent.Round(0).String(), status)
		}
		return nil
	},
}

func init() {
	Cmd.AddCommand(setCmd, showCmd)
}
