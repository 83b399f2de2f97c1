package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/models"
)

// DefaultWeekend is Friday and Saturday.
var DefaultWeekend = []time.Weekday{time.Friday, time.Saturday}

// Analysis is the spending summary handed to the advisor.
type Analysis struct {
	CategoryTotals  []CategoryTotal `json:"categoryTotals" yaml:"category_totals"`
	WeekendSpending decimal.Decimal `json:"weekendSpending" yaml:"weekend_spending"`
	WeekdaySpending decimal.Decimal `json:"weekdaySpending" yaml:"weekday_spending"`
	DailyAverage    decimal.Decimal `json:"dailyAverage" yaml:"daily_average"`
	TopCategory     CategoryTotal   `json:"topCategory" yaml:"top_category"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses" yaml:"total_expenses"`
}

// Analyze summarizes the expenses in txs. weekend lists the rest days;
// nil means DefaultWeekend. It reports false for an empty set.
func Analyze(txs []models.Transaction, weekend []time.Weekday) (Analysis, bool) {
	if len(txs) == 0 {
		return Analysis{}, false
	}
	if weekend == nil {
		weekend = DefaultWeekend
	}
	rest := make(map[time.Weekday]bool, len(weekend))
	for _, d := range weekend {
		rest[d] = true
	}

	a := Analysis{
		CategoryTotals:  expenseTotals(txs),
		WeekendSpending: decimal.Zero,
		WeekdaySpending: decimal.Zero,
		TotalExpenses:   decimal.Zero,
	}
	dates := make(map[string]bool)
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		if rest[t.Date.Weekday()] {
			a.WeekendSpending = a.WeekendSpending.Add(t.Amount)
		} else {
			a.WeekdaySpending = a.WeekdaySpending.Add(t.Amount)
		}
		a.TotalExpenses = a.TotalExpenses.Add(t.Amount)
		dates[t.Date.String()] = true
	}

	days := int64(len(dates))
	if days == 0 {
		days = 1
	}
	a.DailyAverage = a.TotalExpenses.Div(decimal.NewFromInt(days))

	a.TopCategory = CategoryTotal{Total: decimal.Zero}
	for _, ct := range a.CategoryTotals {
		if ct.Total.GreaterThan(a.TopCategory.Total) {
			a.TopCategory = ct
		}
	}
	return a, true
}
