package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals sums a transaction set by type.
type Totals struct {
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// ComputeTotals sums income and expense. Balance is income minus expense.
func ComputeTotals(txs []models.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Amount)
		case models.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryTotal is the summed expense of one category.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
}

// expenseTotals groups expenses by category in first-seen order.
func expenseTotals(txs []models.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
	}
	return out
}

// CategoryBreakdown groups expenses by category, largest first. Equal
// totals keep first-seen order.
func CategoryBreakdown(txs []models.Transaction) []CategoryTotal {
	out := expenseTotals(txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// BudgetLine is the current-month consumption of one budget.
type BudgetLine struct {
	Category string          `json:"category" yaml:"category"`
	Limit    decimal.Decimal `json:"limit" yaml:"limit"`
	Spent    decimal.Decimal `json:"spent" yaml:"spent"`
	Percent  decimal.Decimal `json:"percent" yaml:"percent"`
}

// Exceeded reports whether spending reached the limit.
func (b BudgetLine) Exceeded() bool { return b.Spent.GreaterThanOrEqual(b.Limit) }

// BudgetProgress reports every positive budget of profile against
// currentMonthExpenses, ordered by category name. Percent is clamped to
// [0, 100].
func BudgetProgress(profile models.Profile, currentMonthExpenses []models.Transaction) []BudgetLine {
	spent := make(map[string]decimal.Decimal)
	for _, ct := range expenseTotals(currentMonthExpenses) {
		spent[ct.Category] = ct.Total
	}

	names := make([]string, 0, len(profile.Budgets))
	for name, limit := range profile.Budgets {
		if limit.IsPositive() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]BudgetLine, 0, len(names))
	for _, name := range names {
		limit := profile.Budgets[name]
		s, ok := spent[name]
		if !ok {
			s = decimal.Zero
		}
		percent := decimal.Min(s.Div(limit).Mul(hundred), hundred)
		if percent.IsNegative() {
			percent = decimal.Zero
		}
		out = append(out, BudgetLine{Category: name, Limit: limit, Spent: s, Percent: percent})
	}
	return out
}
