package advisor

import (
	"fmt"
	"strings"

	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/models"
)

// SystemInstruction sets the advisor's persona.
const SystemInstruction = "You are an expert financial strategist and behavior analyst for Bangladeshi families. " +
	"You analyze spending patterns to identify psychological triggers and wastage. " +
	"Your advice is culturally relevant (e.g., mentioning bazaar, snacks/nasta, or family responsibilities). " +
	"Speak exclusively in Bengali."

const promptTemplate = `এখানে আমার সাম্প্রতিক আর্থিক লেনদেনের তথ্য দেওয়া হলো:
%s

আমার খরচের ধরণ বিশ্লেষণ করে নিচের বিষয়গুলো সম্পর্কে বিস্তারিত বাংলা পরামর্শ দিন:
১. সাপ্তাহিক ছুটির দিন (শুক্রবার ও শনিবার) বনাম সপ্তাহের অন্য দিনগুলোর খরচের তুলনা এবং প্যাটার্ন।
২. কোন ক্যাটাগরিতে সবচেয়ে বেশি অপচয় হচ্ছে এবং কেন।
৩. খরচ কমানোর জন্য ৩টি সুনির্দিষ্ট এবং বাস্তবমুখী পদক্ষেপ।

উত্তরটি বন্ধুত্বপূর্ণ এবং প্রেরণাদায়ক ভাষায় লিখুন। কারেন্সি হিসেবে '%s' ব্যবহার করুন।`

// FormatValue renders an amount the way the advisor sees it: currency
// rule applied, Bengali digits.
func FormatValue(t models.Transaction, c models.CurrencyConfig) string {
	return currencyutils.FormatBengali(t.Amount, c)
}

// SummaryLine describes one transaction, e.g.
// "2024-05-03 (Friday): expense of ৳ ৫০০ for খাদ্য (চা)".
func SummaryLine(t models.Transaction, c models.CurrencyConfig) string {
	return fmt.Sprintf("%s (%s): %s of %s for %s (%s)",
		t.Date, t.Date.Weekday(), t.Type, FormatValue(t, c), t.Category, t.Note)
}

// BuildPrompt assembles the user prompt from every transaction in order.
func BuildPrompt(txs []models.Transaction, c models.CurrencyConfig) string {
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, SummaryLine(t, c))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(lines, "\n"), c.Symbol)
}

// Progress returns how far, in percent, count is toward threshold
// transactions.
func Progress(count, threshold int) int {
	if threshold <= 0 {
		return 100
	}
	p := count * 100 / threshold
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
