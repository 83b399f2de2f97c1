package categorizer

import (
	"strings"
)

// HistoricalName identifies HistoricalStrategy in results and logs.
const HistoricalName = "Historical"

// HistoricalStrategy finds the first past transaction of the same type whose
// note contains the typed text.
type HistoricalStrategy struct{}

// Name returns the name of this strategy.
func (HistoricalStrategy) Name() string { return HistoricalName }

// Categorize scans in.History in stored order.
func (s HistoricalStrategy) Categorize(in Input) StrategyResult {
	res := StrategyResult{Strategy: s.Name()}
	needle := strings.ToLower(strings.TrimSpace(in.Note))
	if needle == "" {
		return res
	}
	for i := range in.History {
		tx := in.History[i]
		if tx.Type != in.Type || tx.Note == "" {
			continue
		}
		if strings.Contains(strings.ToLower(tx.Note), needle) {
			res.Found = true
			res.Category = tx.Category
			res.Match = &tx
			return res
		}
	}
	return res
}
