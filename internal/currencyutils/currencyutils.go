// Package currencyutils formats and parses amounts according to the
// document's currency rule.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/models"
)

// Format renders amount with the currency symbol before or after it,
// grouping thousands. Cents are shown only when the amount has them. The
// sign stays with the number, so -500 reads "৳ -500".
func Format(amount decimal.Decimal, c models.CurrencyConfig) string {
	fraction := 0
	if !amount.Round(2).Equal(amount.Truncate(0)) {
		fraction = 2
	}

	minor := amount.Abs().Shift(int32(fraction)).Round(0).IntPart()
	number := money.NewFormatter(fraction, ".", ",", "", "1").Format(minor)
	if amount.IsNegative() && minor != 0 {
		number = "-" + number
	}

	switch {
	case c.Symbol == "":
		return number
	case c.Position == models.PositionSuffix:
		return number + " " + c.Symbol
	default:
		return c.Symbol + " " + number
	}
}

var bengaliDigits = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
)

var latinDigits = strings.NewReplacer(
	"0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪",
	"5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯",
)

// ToLatinDigits replaces Bengali digits with ASCII ones.
func ToLatinDigits(s string) string { return bengaliDigits.Replace(s) }

// ToBengaliDigits replaces ASCII digits with Bengali ones.
func ToBengaliDigits(s string) string { return latinDigits.Replace(s) }

var currencyNoise = regexp.MustCompile(`(?i)(৳|টাকা|tk\.?|bdt|[€$£¥₹]|\s)`)

// ParseAmount parses a user-entered amount. It accepts Bengali digits,
// currency markers and comma thousand separators.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := StandardizeAmount(amountStr)
	if s == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': empty", amountStr)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and separators so the result can
// be parsed by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	s := ToLatinDigits(amountStr)
	s = currencyNoise.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

// FormatBengali is Format with Bengali digits, as amounts are shown to the
// user.
func FormatBengali(amount decimal.Decimal, c models.CurrencyConfig) string {
	return ToBengaliDigits(Format(amount, c))
}
