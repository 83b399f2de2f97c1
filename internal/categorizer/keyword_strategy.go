package categorizer

import "strings"

// KeywordName identifies KeywordStrategy in results and logs.
const KeywordName = "Keyword"

// KeywordStrategy matches the note against a KeywordTable, keeping only
// categories the user currently has.
type KeywordStrategy struct {
	table KeywordTable
}

// NewKeywordStrategy creates a strategy over table.
func NewKeywordStrategy(table KeywordTable) *KeywordStrategy {
	return &KeywordStrategy{table: table}
}

// Name returns the name of this strategy.
func (s *KeywordStrategy) Name() string { return KeywordName }

// Categorize returns the first declared category with a matching keyword.
func (s *KeywordStrategy) Categorize(in Input) StrategyResult {
	res := StrategyResult{Strategy: s.Name()}
	if strings.TrimSpace(in.Note) == "" {
		return res
	}
	allowed := func(name string) bool { return in.Categories.Has(in.Type, name) }
	rule, kw, ok := s.table.Match(in.Type, in.Note, allowed)
	if !ok {
		return res
	}
	res.Found = true
	res.Category = rule.Category
	res.Keyword = kw
	return res
}

var _ CategorizationStrategy = (*KeywordStrategy)(nil)
var _ CategorizationStrategy = HistoricalStrategy{}
