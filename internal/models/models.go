// Package models defines the state document persisted by the ledger: profiles,
// transactions, reminders, categories and display settings.
package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/dateutils"
)

func init() {
	// Amounts are plain JSON numbers in the persisted document.
	decimal.MarshalJSONWithoutQuotes = true
}

// Profile is one independent financial identity sharing the store.
type Profile struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	Avatar   string                     `json:"avatar"`
	Email    string                     `json:"email,omitempty"`
	Password string                     `json:"password,omitempty"`
	Image    string                     `json:"image,omitempty"`
	Color    string                     `json:"color"`
	Budgets  map[string]decimal.Decimal `json:"budgets,omitempty"`
}

// Transaction is a single income or expense entry owned by a profile.
type Transaction struct {
	ID            string          `json:"id"`
	ProfileID     string          `json:"profileId"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          dateutils.Date  `json:"date"`
	Note          string          `json:"note"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// IsExpense reports whether the transaction spends money.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// IsIncome reports whether the transaction receives money.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// Reminder is a dated task, optionally with a time of day.
type Reminder struct {
	ID          string         `json:"id"`
	ProfileID   string         `json:"profileId"`
	Task        string         `json:"task"`
	Date        dateutils.Date `json:"date"`
	RemindTime  string         `json:"remindTime,omitempty"`
	IsCompleted bool           `json:"isCompleted"`
}

// Category is a named bucket with a display icon token.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories holds the two independent category collections.
type Categories struct {
	Income  []Category `json:"income"`
	Expense []Category `json:"expense"`
}

// For returns the collection for the given transaction type.
func (c Categories) For(t TransactionType) []Category {
	if t == TypeIncome {
		return c.Income
	}
	return c.Expense
}

// Has reports whether a category with exactly this name exists for t.
func (c Categories) Has(t TransactionType, name string) bool {
	for _, cat := range c.For(t) {
		if cat.Name == name {
			return true
		}
	}
	return false
}

// IndexFold returns the index of the category whose name equals name
// ignoring case and surrounding space, or -1.
func (c Categories) IndexFold(t TransactionType, name string) int {
	name = strings.TrimSpace(name)
	for i, cat := range c.For(t) {
		if strings.EqualFold(strings.TrimSpace(cat.Name), name) {
			return i
		}
	}
	return -1
}

// CurrencyConfig is the single global amount formatting rule.
type CurrencyConfig struct {
	Symbol   string           `json:"symbol"`
	Position CurrencyPosition `json:"position"`
}

// Sounds holds optional encoded audio references.
type Sounds struct {
	Reminder string `json:"reminder,omitempty"`
	Budget   string `json:"budget,omitempty"`
	System   string `json:"system,omitempty"`
}

// NotificationSettings toggles the notification side effects.
type NotificationSettings struct {
	EnableDailySummary bool   `json:"enableDailySummary"`
	EnableBudgetAlerts bool   `json:"enableBudgetAlerts"`
	EnableReminders    bool   `json:"enableReminders"`
	Sounds             Sounds `json:"sounds"`
}

// AppState is the root document: the unit of persistence, export and sync.
type AppState struct {
	Profiles             []Profile            `json:"profiles"`
	ActiveProfileID      string               `json:"activeProfileId"`
	Transactions         []Transaction        `json:"transactions"`
	Reminders            []Reminder           `json:"reminders"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	Categories           Categories           `json:"categories"`
	Theme                string               `json:"theme"`
	AccentColor          string               `json:"accentColor"`
	Currency             CurrencyConfig       `json:"currency"`
}

// ProfileIndex returns the position of the profile with id, or -1.
func (s *AppState) ProfileIndex(id string) int {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// ProfileByEmail returns the first profile whose email matches,
// case-insensitively.
func (s *AppState) ProfileByEmail(email string) (Profile, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Profile{}, false
	}
	for _, p := range s.Profiles {
		if p.Email != "" && strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return Profile{}, false
}

// NormalizeActive makes ActiveProfileID reference an existing profile
// whenever there is one. It reports whether anything changed.
func (s *AppState) NormalizeActive() bool {
	if len(s.Profiles) == 0 {
		if s.ActiveProfileID != "" {
			s.ActiveProfileID = ""
			return true
		}
		return false
	}
	if s.ProfileIndex(s.ActiveProfileID) >= 0 {
		return false
	}
	s.ActiveProfileID = s.Profiles[0].ID
	return true
}

// Clone returns a deep copy so a mutation can never alias the original.
func (s AppState) Clone() AppState {
	out := s
	if s.Profiles != nil {
		out.Profiles = make([]Profile, len(s.Profiles))
		for i, p := range s.Profiles {
			if p.Budgets != nil {
				budgets := make(map[string]decimal.Decimal, len(p.Budgets))
				for k, v := range p.Budgets {
					budgets[k] = v
				}
				p.Budgets = budgets
			}
			out.Profiles[i] = p
		}
	}
	if s.Transactions != nil {
		out.Transactions = append([]Transaction(nil), s.Transactions...)
	}
	if s.Reminders != nil {
		out.Reminders = append([]Reminder(nil), s.Reminders...)
	}
	if s.Categories.Income != nil {
		out.Categories.Income = append([]Category(nil), s.Categories.Income...)
	}
	if s.Categories.Expense != nil {
		out.Categories.Expense = append([]Category(nil), s.Categories.Expense...)
	}
	return out
}
