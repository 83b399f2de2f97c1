package categorizer

import (
	"strings"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// Suggestion combines the outcome of both lookup passes.
type Suggestion struct {
	// Match is the past transaction to offer for one-click reuse.
	Match *models.Transaction
	// Category is the keyword-table category, empty when none matched.
	Category string
	Keyword  string
}

// IsEmpty reports whether neither pass found anything.
func (s Suggestion) IsEmpty() bool { return s.Match == nil && s.Category == "" }

// Lookup runs the historical and keyword strategies side by side.
type Lookup struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewLookup creates a Lookup over table.
func NewLookup(table KeywordTable, logger logging.Logger) *Lookup {
	return &Lookup{
		strategies: []CategorizationStrategy{
			HistoricalStrategy{},
			NewKeywordStrategy(table),
		},
		logger: logging.OrDefault(logger),
	}
}

// Run evaluates in against every strategy. Both passes are independent;
// a blank note yields an empty suggestion.
func (l *Lookup) Run(in Input) Suggestion {
	if strings.TrimSpace(in.Note) == "" {
		return Suggestion{}
	}
	var results StrategyResults
	for _, s := range l.strategies {
		results.Results = append(results.Results, s.Categorize(in))
	}

	var sug Suggestion
	if r, ok := results.First(HistoricalName); ok {
		sug.Match = r.Match
	}
	if r, ok := results.First(KeywordName); ok {
		sug.Category = r.Category
		sug.Keyword = r.Keyword
	}

	l.logger.WithFields(
		logging.Field{Key: logging.FieldType, Value: string(in.Type)},
		logging.Field{Key: logging.FieldStatus, Value: results.Summary()},
		logging.Field{Key: logging.FieldCategory, Value: sug.Category},
		logging.Field{Key: logging.FieldKeyword, Value: sug.Keyword},
	).Debug("Smart lookup evaluated")
	return sug
}
