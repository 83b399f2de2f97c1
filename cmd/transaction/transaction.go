// Package transaction handles the income and expense commands
package transaction

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/categorizer"
	"fjacquet/khoroch-khata/internal/common"
	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/report"
)

var (
	txType           string
	amount           string
	category         string
	note             string
	date             string
	payment          string
	useMatch         bool
	acceptSuggestion bool

	filterType     string
	filterCategory string
	search         string
	limit          int
	dates          root.RangeFlags
)

// Cmd represents the transaction command
var Cmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Record, list and edit income and expenses",
	Long: `Record, list and edit the income and expenses of the active profile.
While recording, the note is matched against past entries and the keyword table
to suggest a category.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction for the active profile",
	Long: `Record a transaction for the active profile.

A category given with --category is kept even when the note suggests another
one; pass --accept-suggestion to take the suggestion instead. When a past entry
with a similar note exists, --use-match copies its amount, category and payment method.

Example:
  khoroch-khata transaction add --amount 50 --note "বাস ভাড়া"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		c := root.App.NewComposer(categorizer.WithClock(root.Now))
		c.SetType(t)
		if err := applyFields(cmd, c); err != nil {
			return err
		}
		return save(cmd, c, func(draft models.Transaction) (models.Transaction, error) {
			return root.App.GetLedger().AddTransaction(cmd.Context(), draft)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a transaction, keeping its id and profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		existing, err := find(args[0])
		if err != nil {
			return err
		}
		c := root.App.NewComposer(categorizer.WithClock(root.Now), categorizer.WithInitial(existing))
		if cmd.Flags().Changed("type") {
			t, err := root.ParseType(txType)
			if err != nil {
				return err
			}
			c.SetType(t)
		}
		if err := applyFields(cmd, c); err != nil {
			return err
		}
		return save(cmd, c, func(draft models.Transaction) (models.Transaction, error) {
			return root.App.GetLedger().UpdateTransaction(cmd.Context(), existing.ID, draft)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.App.GetLedger().DeleteTransaction(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(root.Out(cmd), "Deleted transaction %s\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the transactions of the active profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := dates.DateRange()
		if err != nil {
			return err
		}
		state := root.App.GetLedger().State()
		txs := report.FilterByProfileAndRange(state.Transactions, root.ActiveProfileID(), r, root.Now())
		txs = report.Query{Type: filterType, Category: filterCategory, Search: search}.Apply(txs)
		totals := report.ComputeTotals(txs)
		if limit > 0 {
			txs = report.Recent(txs, limit)
		}

		out := root.Out(cmd)
		for _, t := range txs {
			printTransaction(out, t, state.Currency)
		}
		fmt.Fprintf(out, "%d transaction(s) | income %s | expense %s | balance %s\n", len(txs),
			currencyutils.Format(totals.Income, state.Currency),
			currencyutils.Format(totals.Expense, state.Currency),
			currencyutils.Format(totals.Balance, state.Currency))
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Print a shareable summary of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := find(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(root.Out(cmd), common.ShareSummary(t, root.Currency()))
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <note>",
	Short: "Show the category suggestion for a note without recording anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := root.ParseType(txType)
		if err != nil {
			return err
		}
		c := root.App.NewComposer(categorizer.WithClock(root.Now))
		c.SetType(t)
		sug := c.SetNote(args[0])
		if sug.IsEmpty() {
			fmt.Fprintln(root.Out(cmd), "No suggestion")
			return nil
		}
		describeSuggestion(root.Out(cmd), sug, root.Currency())
		return nil
	},
}

// applyFields copies the changed flags onto the draft. The note goes last
// so its suggestion sees the final type and category.
func applyFields(cmd *cobra.Command, c *categorizer.Composer) error {
	flags := cmd.Flags()
	if flags.Changed("amount") {
		a, err := root.ParseAmount(amount)
		if err != nil {
			return err
		}
		c.SetAmount(a)
	}
	if flags.Changed("date") {
		d, err := root.ParseDate(date)
		if err != nil {
			return err
		}
		c.SetDate(d)
	}
	if flags.Changed("payment") {
		m, err := root.ParsePaymentMethod(payment)
		if err != nil {
			return err
		}
		c.SetPaymentMethod(m)
	}
	if flags.Changed("category") {
		c.SetCategory(category)
	}
	if !flags.Changed("note") {
		return nil
	}

	out := root.Out(cmd)
	currency := root.Currency()
	sug := c.SetNote(note)
	describeSuggestion(out, sug, currency)
	if useMatch && c.ApplyHistoricalMatch() {
		fmt.Fprintln(out, "Copied amount, category and payment method from the matching entry")
	}
	if pending, ok := c.PendingSuggestion(); ok {
		if acceptSuggestion {
			c.AcceptSuggestion()
			fmt.Fprintf(out, "Using suggested category %s\n", pending)
		} else {
			fmt.Fprintf(out, "Keeping %s; pass --accept-suggestion to use %s\n", c.Draft().Category, pending)
		}
	}
	return nil
}

// describeSuggestion prints what the smart lookup found.
func describeSuggestion(out io.Writer, sug categorizer.Suggestion, currency models.CurrencyConfig) {
	if sug.Match != nil {
		fmt.Fprintf(out, "Similar entry: %s | %s | %s | %s\n",
			sug.Match.Note, sug.Match.Category, currencyutils.Format(sug.Match.Amount, currency), sug.Match.Date)
	}
	if sug.Category != "" {
		fmt.Fprintf(out, "Suggested category: %s (keyword %q)\n", sug.Category, sug.Keyword)
	}
}

func save(cmd *cobra.Command, c *categorizer.Composer, persist func(models.Transaction) (models.Transaction, error)) error {
	if !c.Ready() {
		return fmt.Errorf("an amount and a category are required")
	}
	tx, err := persist(c.Draft())
	if err != nil {
		return err
	}
	fmt.Fprint(root.Out(cmd), "Saved ")
	printTransaction(root.Out(cmd), tx, root.Currency())
	return nil
}

func find(id string) (models.Transaction, error) {
	for _, t := range root.App.GetLedger().State().Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, fmt.Errorf("transaction not found: %s", id)
}

func printTransaction(out io.Writer, t models.Transaction, currency models.CurrencyConfig) {
	fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Type, t.Category,
		currencyutils.Format(t.Amount, currency), t.PaymentMethod, t.Note)
}

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().StringVarP(&amount, "amount", "a", "", "Amount; Bengali digits and ৳ are accepted")
		c.Flags().StringVarP(&category, "category", "C", "", "Category name")
		c.Flags().StringVarP(&note, "note", "n", "", "Free-text note used for category suggestions")
		c.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVarP(&payment, "payment", "p", string(models.PaymentCash), "Payment method: Cash, bKash, Nagad or Bank")
		c.Flags().BoolVar(&useMatch, "use-match", false, "Copy amount, category and payment from a similar past entry")
		c.Flags().BoolVar(&acceptSuggestion, "accept-suggestion", false, "Replace --category with the keyword suggestion")
	}
	for _, c := range []*cobra.Command{addCmd, updateCmd, suggestCmd} {
		c.Flags().StringVarP(&txType, "type", "t", string(models.TypeExpense), "Transaction type: income or expense")
	}

	listCmd.Flags().StringVarP(&filterType, "type", "t", report.AllFilter, "Filter by type: income, expense or all")
	listCmd.Flags().StringVarP(&filterCategory, "category", "C", report.AllFilter, "Filter by category name")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Filter by note or category text")
	listCmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most this many entries (0 for all)")
	dates.Bind(listCmd, report.RangeAll)

	Cmd.AddCommand(addCmd, updateCmd, deleteCmd, listCmd, shareCmd, suggestCmd)
}
