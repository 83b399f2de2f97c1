package root

import (
	"github.com/spf13/cobra"

	"fjacquet/khoroch-khata/internal/report"
)

// RangeFlags binds the --range, --from and --to date filter flags.
type RangeFlags struct {
	Range string
	From  string
	To    string
}

// Bind registers the flags on cmd with def as the default range.
func (r *RangeFlags) Bind(cmd *cobra.Command, def report.RangeType) {
	cmd.Flags().StringVarP(&r.Range, "range", "r", string(def), "Date range: today, this_week, this_month, last_month, custom or all")
	cmd.Flags().StringVar(&r.From, "from", "", "First day of a custom range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.To, "to", "", "Last day of a custom range (YYYY-MM-DD)")
}

// DateRange converts the flags. Setting --from or --to implies a custom
// range.
func (r *RangeFlags) DateRange() (report.DateRange, error) {
	rangeType, err := report.ParseRangeType(r.Range)
	if err != nil {
		return report.DateRange{}, err
	}
	out := report.DateRange{Type: rangeType}
	if r.From != "" || r.To != "" {
		out.Type = report.RangeCustom
	}
	if r.From != "" {
		if out.Start, err = ParseDate(r.From); err != nil {
			return report.DateRange{}, err
		}
	}
	if r.To != "" {
		if out.End, err = ParseDate(r.To); err != nil {
			return report.DateRange{}, err
		}
	}
	return out, nil
}

// ActiveProfileID returns the id of the profile commands act on, or "".
func ActiveProfileID() string {
	p, ok := report.ActiveProfile(App.GetLedger().State())
	if !ok {
		return ""
	}
	return p.ID
}

