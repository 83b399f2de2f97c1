package common

import (
	"fmt"

	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/models"
)

// ShareSummary is the text shared or copied for one transaction.
func ShareSummary(t models.Transaction, currency models.CurrencyConfig) string {
	kind := "ব্যয়"
	if t.IsIncome() {
		kind = "আয়"
	}
	return fmt.Sprintf("📌 লেনদেন বিবরণ:\n🔹 টাইপ: %s\n📂 ক্যাটাগরি: %s\n💰 পরিমাণ: %s\n💳 পেমেন্ট: %s\n📅 তারিখ: %s\n(খরচ খাতা)",
		kind, t.Category, currencyutils.FormatBengali(t.Amount, currency), t.PaymentMethod, BengaliDate(t.Date))
}
