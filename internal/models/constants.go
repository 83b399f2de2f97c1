package models

// StorageKey is the slot name under which the state document is persisted.
const StorageKey = "khoroch_khata_data"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

// Payment methods
const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentBKash PaymentMethod = "bKash"
	PaymentNagad PaymentMethod = "Nagad"
	PaymentBank  PaymentMethod = "Bank"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentBKash, PaymentNagad, PaymentBank}

// Valid reports whether p is one of PaymentMethods.
func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// CurrencyPosition places the currency symbol before or after the amount.
type CurrencyPosition string

// Currency positions
const (
	PositionPrefix CurrencyPosition = "prefix"
	PositionSuffix CurrencyPosition = "suffix"
)

// Themes
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Defaults of a fresh document
const (
	DefaultAccentColor    = "99, 102, 241"
	DefaultCurrencySymbol = "৳"
	DefaultCategoryIcon   = "fa-tag"
)

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
