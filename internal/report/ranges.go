// Package report derives views from the state document: date-filtered
// transaction sets, totals, category aggregates, budget progress and the
// spending analysis. Everything here is a pure function of its inputs.
package report

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/models"
)

// RangeType names a date filter.
type RangeType string

// Date filters
const (
	RangeToday     RangeType = "today"
	RangeThisWeek  RangeType = "this_week"
	RangeThisMonth RangeType = "this_month"
	RangeLastMonth RangeType = "last_month"
	RangeCustom    RangeType = "custom"
	RangeAll       RangeType = "all"
)

// RangeTypes lists the known filters.
var RangeTypes = []RangeType{RangeToday, RangeThisWeek, RangeThisMonth, RangeLastMonth, RangeCustom, RangeAll}

// ParseRangeType maps a name to a RangeType.
func ParseRangeType(s string) (RangeType, error) {
	for _, r := range RangeTypes {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

// DateRange selects transactions by date. Start and End only apply to
// RangeCustom and either may be zero.
type DateRange struct {
	Type  RangeType
	Start dateutils.Date
	End   dateutils.Date
}

// ResolveRange turns r into inclusive bounds anchored on now. A zero bound
// is open.
func ResolveRange(r DateRange, now time.Time) (from, to dateutils.Date) {
	today := dateutils.Today(now)
	switch r.Type {
	case RangeToday:
		return today, dateutils.Date{}
	case RangeThisWeek:
		return today.StartOfWeek(), dateutils.Date{}
	case RangeThisMonth:
		return today.StartOfMonth(), dateutils.Date{}
	case RangeLastMonth:
		prev := today.StartOfMonth().AddDays(-1)
		return prev.StartOfMonth(), prev
	case RangeCustom:
		return r.Start, r.End
	default:
		return dateutils.Date{}, dateutils.Date{}
	}
}

// FilterByProfileAndRange keeps the transactions of profileID dated inside
// r, preserving stored order.
func FilterByProfileAndRange(txs []models.Transaction, profileID string, r DateRange, now time.Time) []models.Transaction {
	from, to := ResolveRange(r, now)
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ProfileID == profileID && t.Date.Between(from, to) {
			out = append(out, t)
		}
	}
	return out
}

// CurrentMonthExpenses keeps the expenses of profileID dated in now's
// calendar month.
func CurrentMonthExpenses(txs []models.Transaction, profileID string, now time.Time) []models.Transaction {
	today := dateutils.Today(now)
	out := make([]models.Transaction, 0)
	for _, t := range txs {
		if t.ProfileID == profileID && t.IsExpense() && t.Date.SameMonth(today) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveProfile returns the active profile, falling back to the first one.
func ActiveProfile(s models.AppState) (models.Profile, bool) {
	if i := s.ProfileIndex(s.ActiveProfileID); i >= 0 {
		return s.Profiles[i], true
	}
	if len(s.Profiles) > 0 {
		return s.Profiles[0], true
	}
	return models.Profile{}, false
}
