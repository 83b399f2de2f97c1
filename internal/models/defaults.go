package models

// DefaultCategories returns a fresh copy of the built-in category sets.
func DefaultCategories() Categories {
	return Categories{
		Expense: []Category{
			{Name: "খাদ্য", Icon: "fa-utensils"},
			{Name: "পরিবহন", Icon: "fa-bus"},
			{Name: "বাজার", Icon: "fa-shopping-cart"},
			{Name: "বিল", Icon: "fa-file-invoice-dollar"},
			{Name: "ডিপিএস পেমেন্ট", Icon: "fa-piggy-bank"},
			{Name: "লোন পেমেন্ট", Icon: "fa-hand-holding-dollar"},
			{Name: "বিনোদন", Icon: "fa-gamepad"},
			{Name: "শিক্ষা", Icon: "fa-graduation-cap"},
			{Name: "স্বাস্থ্য", Icon: "fa-heartbeat"},
			{Name: "অন্যান্য", Icon: "fa-ellipsis"},
		},
		Income: []Category{
			{Name: "বেতন", Icon: "fa-briefcase"},
			{Name: "বোনাস", Icon: "fa-gift"},
			{Name: "উপহার", Icon: "fa-hand-holding-heart"},
			{Name: "বিনিয়োগ", Icon: "fa-chart-line"},
			{Name: "অন্যান্য", Icon: "fa-plus-circle"},
		},
	}
}

// DefaultState returns the document used when nothing has been persisted.
func DefaultState() AppState {
	return AppState{
		Profiles:     []Profile{},
		Transactions: []Transaction{},
		Reminders:    []Reminder{},
		NotificationSettings: NotificationSettings{
			EnableDailySummary: true,
			EnableBudgetAlerts: true,
			EnableReminders:    true,
		},
		Categories:  DefaultCategories(),
		Theme:       ThemeDark,
		AccentColor: DefaultAccentColor,
		Currency:    CurrencyConfig{Symbol: DefaultCurrencySymbol, Position: PositionPrefix},
	}
}
