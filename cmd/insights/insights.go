// Package insights handles the AI spending advice command
package insights

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/advisor"
	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/report"
)

var (
	raw   bool
	width int
	dates root.RangeFlags
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask the AI advisor for spending advice",
	Long: `Summarize the active profile's spending and ask the Gemini model for advice in
Bengali. Advice unlocks once enough transactions are recorded and requires
GEMINI_API_KEY with ai.enabled set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := dates.DateRange()
		if err != nil {
			return err
		}
		state := root.App.GetLedger().State()
		txs := report.FilterByProfileAndRange(state.Transactions, root.ActiveProfileID(), r, root.Now())
		svc := root.App.GetAdvisor()
		out := root.Out(cmd)

		if !svc.Unlocked(txs) {
			fmt.Fprintf(out, "Advice unlocks at %d transactions: %d%% there\n",
				root.App.GetConfig().AI.MinTransactions, svc.Progress(txs))
			return nil
		}

		advice, err := svc.Advise(cmd.Context(), txs, state.Currency)
		if errors.Is(err, advisor.ErrAdvisorDisabled) {
			return fmt.Errorf("%w: set ai.enabled and GEMINI_API_KEY", err)
		}
		if err != nil {
			return err
		}

		printAnalysis(cmd, advice.Analysis, state.Currency)
		if advice.Fallback {
			root.Log.WithError(advice.Err).Debug("Advisor fell back")
		}
		text := advice.Text
		if !raw {
			text = render(text, state.Theme)
		}
		fmt.Fprintln(out, text)
		return nil
	},
}

func printAnalysis(cmd *cobra.Command, a report.Analysis, c models.CurrencyConfig) {
	out := root.Out(cmd)
	fmt.Fprintf(out, "Total expenses: %s\n", currencyutils.Format(a.TotalExpenses, c))
	if a.TopCategory.Category != "" {
		fmt.Fprintf(out, "Top category: %s (%s)\n", a.TopCategory.Category, currencyutils.Format(a.TopCategory.Total, c))
	}
	fmt.Fprintf(out, "Weekend: %s | Weekdays: %s | Daily average: %s\n\n",
		currencyutils.Format(a.WeekendSpending, c),
		currencyutils.Format(a.WeekdaySpending, c),
		currencyutils.Format(a.DailyAverage, c))
}

// render formats the markdown answer for the terminal in the document's
// theme, falling back to the plain text.
func render(markdown, theme string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		root.Log.WithError(err).Debug("Markdown renderer unavailable")
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		root.Log.WithError(err).Debug("Failed to render advice")
		return markdown
	}
	return out
}

func init() {
	Cmd.Flags().BoolVar(&raw, "raw", false, "Print the advice without markdown rendering")
	Cmd.Flags().IntVar(&width, "width", 80, "Wrap width of the rendered advice")
	dates.Bind(Cmd, report.RangeAll)
}
