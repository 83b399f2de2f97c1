package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/internal/dateutils"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Empty(t, s.Profiles)
	assert.Equal(t, "", s.ActiveProfileID)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, "99, 102, 241", s.AccentColor)
	assert.Equal(t, CurrencyConfig{Symbol: "৳", Position: PositionPrefix}, s.Currency)
	assert.True(t, s.NotificationSettings.EnableReminders)
	assert.Len(t, s.Categories.Expense, 10)
	assert.Len(t, s.Categories.Income, 5)
	assert.Equal(t, "খাদ্য", s.Categories.Expense[0].Name)
	assert.Equal(t, "বেতন", s.Categories.Income[0].Name)
}

func TestDefaultCategoriesAreFreshCopies(t *testing.T) {
	a := DefaultCategories()
	a.Expense[0].Name = "changed"
	assert.Equal(t, "খাদ্য", DefaultCategories().Expense[0].Name)
}

func TestCategories_Lookup(t *testing.T) {
	c := DefaultCategories()

	assert.True(t, c.Has(TypeExpense, "পরিবহন"))
	assert.False(t, c.Has(TypeIncome, "পরিবহন"))
	assert.Equal(t, 1, c.IndexFold(TypeExpense, "  পরিবহন "))

	c.Expense = append(c.Expense, Category{Name: "Coffee", Icon: DefaultCategoryIcon})
	assert.Equal(t, 10, c.IndexFold(TypeExpense, "coffee"))
	assert.Equal(t, -1, c.IndexFold(TypeIncome, "coffee"))
}

func TestAppState_NormalizeActive(t *testing.T) {
	tests := []struct {
		name       string
		state      AppState
		wantActive string
		wantChange bool
	}{
		{"empty keeps empty", AppState{}, "", false},
		{"empty clears dangling", AppState{ActiveProfileID: "gone"}, "", true},
		{"valid untouched", AppState{Profiles: []Profile{{ID: "a"}, {ID: "b"}}, ActiveProfileID: "b"}, "b", false},
		{"dangling picks first", AppState{Profiles: []Profile{{ID: "a"}, {ID: "b"}}, ActiveProfileID: "x"}, "a", true},
		{"unset picks first", AppState{Profiles: []Profile{{ID: "a"}}}, "a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			assert.Equal(t, tt.wantChange, s.NormalizeActive())
			assert.Equal(t, tt.wantActive, s.ActiveProfileID)
		})
	}
}

func TestAppState_ProfileByEmail(t *testing.T) {
	s := AppState{Profiles: []Profile{{ID: "a"}, {ID: "b", Email: "Rina@Example.com"}}}

	p, ok := s.ProfileByEmail("rina@example.com")
	require.True(t, ok)
	assert.Equal(t, "b", p.ID)

	_, ok = s.ProfileByEmail("")
	assert.False(t, ok)
	_, ok = s.ProfileByEmail("nobody@example.com")
	assert.False(t, ok)
}

func TestAppState_CloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.Profiles = []Profile{{ID: "a", Budgets: map[string]decimal.Decimal{"বাজার": decimal.NewFromInt(1000)}}}
	s.Transactions = []Transaction{{ID: "t1", Note: "চা"}}
	s.Reminders = []Reminder{{ID: "r1"}}

	c := s.Clone()
	c.Profiles[0].Budgets["বাজার"] = decimal.NewFromInt(1)
	c.Transactions[0].Note = "changed"
	c.Reminders[0].Task = "changed"
	c.Categories.Expense[0].Name = "changed"

	assert.Equal(t, "1000", s.Profiles[0].Budgets["বাজার"].String())
	assert.Equal(t, "চা", s.Transactions[0].Note)
	assert.Equal(t, "", s.Reminders[0].Task)
	assert.Equal(t, "খাদ্য", s.Categories.Expense[0].Name)
}

func TestTransactionJSONShape(t *testing.T) {
	tx := Transaction{
		ID:            "t1",
		ProfileID:     "p1",
		Type:          TypeExpense,
		Category:      "খাদ্য",
		Amount:        decimal.RequireFromString("120.5"),
		Date:          dateutils.MustParse("2024-05-03"),
		Note:          "চা ও নাস্তা",
		PaymentMethod: PaymentBKash,
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"t1","profileId":"p1","type":"expense","category":"খাদ্য",
		"amount":120.5,"date":"2024-05-03","note":"চা ও নাস্তা","paymentMethod":"bKash"
	}`, string(data))

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, tx.Amount.Equal(back.Amount))
	assert.Equal(t, tx.Note, back.Note)
	assert.Equal(t, tx.Date, back.Date)
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.False(t, TransactionType("loan").Valid())
	for _, m := range PaymentMethods {
		assert.True(t, m.Valid())
	}
	assert.False(t, PaymentMethod("cash").Valid())
}
