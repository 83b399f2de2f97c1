package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantDropped []string
		check       func(t *testing.T, s models.AppState)
	}{
		{
			name:        "not json",
			doc:         `{{{`,
			wantDropped: []string{"$"},
			check: func(t *testing.T, s models.AppState) {
				assert.Equal(t, models.DefaultState().Theme, s.Theme)
				assert.NotNil(t, s.Profiles)
			},
		},
		{
			name: "older document without newer members",
			doc:  `{"profiles":[{"id":"p1","name":"রিনা","avatar":"","color":""}],"activeProfileId":"p1","transactions":[]}`,
			check: func(t *testing.T, s models.AppState) {
				assert.Len(t, s.Profiles, 1)
				assert.NotNil(t, s.Reminders)
				assert.Equal(t, "৳", s.Currency.Symbol)
				assert.True(t, s.NotificationSettings.EnableReminders)
				assert.Len(t, s.Categories.Expense, 10)
			},
		},
		{
			name:        "bad member does not spoil good ones",
			doc:         `{"profiles":[{"id":"p1","name":"a"}],"transactions":"oops","theme":"light"}`,
			wantDropped: []string{"transactions"},
			check: func(t *testing.T, s models.AppState) {
				assert.Len(t, s.Profiles, 1)
				assert.Empty(t, s.Transactions)
				assert.NotNil(t, s.Transactions)
				assert.Equal(t, models.ThemeLight, s.Theme)
			},
		},
		{
			name: "partial nested members keep defaults",
			doc:  `{"profiles":[],"notificationSettings":{"enableReminders":false},"currency":{"symbol":"$"},"categories":{"income":[]}}`,
			check: func(t *testing.T, s models.AppState) {
				assert.False(t, s.NotificationSettings.EnableReminders)
				assert.True(t, s.NotificationSettings.EnableDailySummary)
				assert.Equal(t, "$", s.Currency.Symbol)
				assert.Equal(t, models.PositionPrefix, s.Currency.Position)
				assert.Empty(t, s.Categories.Income)
				assert.Len(t, s.Categories.Expense, 10)
			},
		},
		{
			name: "null members are treated as absent",
			doc:  `{"profiles":null,"theme":null,"categories":null}`,
			check: func(t *testing.T, s models.AppState) {
				assert.NotNil(t, s.Profiles)
				assert.Equal(t, models.ThemeDark, s.Theme)
				assert.Len(t, s.Categories.Income, 5)
			},
		},
		{
			name: "dangling active profile is repaired",
			doc:  `{"profiles":[{"id":"a","name":"x"},{"id":"b","name":"y"}],"activeProfileId":"zzz"}`,
			check: func(t *testing.T, s models.AppState) {
				assert.Equal(t, "a", s.ActiveProfileID)
			},
		},
		{
			name: "unknown members are ignored",
			doc:  `{"profiles":[],"legacyFlag":true}`,
			check: func(t *testing.T, s models.AppState) {
				assert.Empty(t, s.Profiles)
			},
		},
		{
			name:        "bad nested member keeps whole default",
			doc:         `{"profiles":[],"categories":{"income":[{"name":"বেতন"}],"expense":7}}`,
			wantDropped: []string{"categories"},
			check: func(t *testing.T, s models.AppState) {
				assert.Equal(t, models.DefaultCategories(), s.Categories)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, dropped := DecodeLenient([]byte(tt.doc), logging.NewMockLogger())
			assert.Equal(t, tt.wantDropped, dropped)
			tt.check(t, state)
		})
	}
}

func TestEncode_NeverWritesNullLists(t *testing.T) {
	data, err := Encode(models.AppState{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"profiles":[]`)
	assert.Contains(t, string(data), `"transactions":[]`)
	assert.Contains(t, string(data), `"reminders":[]`)
	assert.Contains(t, string(data), `"income":[]`)
}
