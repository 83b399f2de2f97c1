package report

import (
	"sort"
	"strings"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/models"
)

// AllFilter matches every type or every category.
const AllFilter = "all"

// DefaultRecentCount is how many transactions the dashboard lists.
const DefaultRecentCount = 6

// Query narrows a transaction list. Empty fields match everything.
type Query struct {
	Type     string
	Category string
	Search   string
	Start    dateutils.Date
	End      dateutils.Date
}

// Matches reports whether t passes every filter of q.
func (q Query) Matches(t models.Transaction) bool {
	if q.Type != "" && q.Type != AllFilter && string(t.Type) != q.Type {
		return false
	}
	if q.Category != "" && q.Category != AllFilter && t.Category != q.Category {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Note), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}
	return t.Date.Between(q.Start, q.End)
}

// Apply returns the matching transactions in their original order.
func (q Query) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Recent returns at most n leading transactions.
func Recent(txs []models.Transaction, n int) []models.Transaction {
	if n < 0 {
		n = 0
	}
	if len(txs) <= n {
		return txs
	}
	return txs[:n]
}

// RemindersFor returns the reminders of profileID.
func RemindersFor(rs []models.Reminder, profileID string) []models.Reminder {
	out := make([]models.Reminder, 0, len(rs))
	for _, r := range rs {
		if r.ProfileID == profileID {
			out = append(out, r)
		}
	}
	return out
}

// SortReminders returns rs ordered by date, then by time of day. A reminder
// without a time sorts before timed ones on the same day.
func SortReminders(rs []models.Reminder) []models.Reminder {
	out := append([]models.Reminder(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Date.Compare(out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].RemindTime < out[j].RemindTime
	})
	return out
}
