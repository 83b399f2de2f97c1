// Package report handles the dashboard and export report commands
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/common"
	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/ledger"
	"fjacquet/khoroch-khata/internal/report"
)

var (
	format       string
	output       string
	summaryDates root.RangeFlags
	csvDates     root.RangeFlags
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Summaries and CSV exports of the active profile",
	Long: `Summaries and CSV exports of the active profile over a date range.

Example:
  khoroch-khata report summary --range last_month --format yaml
  khoroch-khata report csv --range this_month`,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals, category breakdown and budget progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := summaryDates.DateRange()
		if err != nil {
			return err
		}
		state := root.App.GetLedger().State()
		summary, ok := report.BuildSummary(state, r, root.Now())
		if !ok {
			return ledger.ErrNoActiveProfile
		}
		out := root.Out(cmd)
		if format != "text" {
			data, err := report.NewReportGenerator(root.App.GetLogger()).GenerateReport(summary, format)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		c := state.Currency
		fmt.Fprintf(out, "%s (%s)\n", summary.Profile, summary.Range)
		fmt.Fprintf(out, "income   %s\n", currencyutils.Format(summary.Totals.Income, c))
		fmt.Fprintf(out, "expense  %s\n", currencyutils.Format(summary.Totals.Expense, c))
		fmt.Fprintf(out, "balance  %s\n", currencyutils.Format(summary.Totals.Balance, c))
		for _, ct := range summary.Breakdown {
			fmt.Fprintf(out, "  %s\t%s\n", ct.Category, currencyutils.Format(ct.Total, c))
		}
		for _, b := range summary.Budgets {
			fmt.Fprintf(out, "budget %s\t%s / %s\t%s%%\n", b.Category,
				currencyutils.Format(b.Spent, c), currencyutils.Format(b.Limit, c), b.Percent.Round(0))
		}
		return nil
	},
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export the filtered transactions as a CSV file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := csvDates.DateRange()
		if err != nil {
			return err
		}
		state := root.App.GetLedger().State()
		txs := report.FilterByProfileAndRange(state.Transactions, root.ActiveProfileID(), r, root.Now())

		path := output
		if path == "" {
			path = common.ReportFileName(root.Now())
		}
		delimiter := []rune(root.App.GetConfig().Export.CSVDelimiter)[0]
		if err := common.ExportTransactionsCSV(root.App.GetFilesystem(), path, txs, state.Currency, delimiter, root.App.GetLogger()); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Exported %d transaction(s) to %s\n", len(txs), path)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	summaryDates.Bind(summaryCmd, report.RangeThisMonth)

	csvCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default Report-<date>.csv)")
	csvDates.Bind(csvCmd, report.RangeAll)

	Cmd.AddCommand(summaryCmd, csvCmd)
}
