// Package categorizer suggests a category for a transaction while its note
// is being typed.
package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/khoroch-khata/internal/models"
)

// Input is what a strategy sees for one lookup.
type Input struct {
	Note       string
	Type       models.TransactionType
	History    []models.Transaction
	Categories models.Categories
}

// CategorizationStrategy defines one independent pass of the lookup.
type CategorizationStrategy interface {
	// Categorize inspects in and reports what it found. It must be
	// deterministic for a fixed input.
	Categorize(in Input) StrategyResult

	// Name returns the name of this strategy for logging.
	Name() string
}

// StrategyResult is the outcome of a single strategy.
type StrategyResult struct {
	Strategy string
	Found    bool
	Category string
	Keyword  string
	Match    *models.Transaction
}

// StrategyResults aggregates the results of every strategy in run order.
type StrategyResults struct {
	Results []StrategyResult
}

// First returns the first successful result of the named strategy.
func (sr StrategyResults) First(strategy string) (StrategyResult, bool) {
	for _, r := range sr.Results {
		if r.Strategy == strategy && r.Found {
			return r, true
		}
	}
	return StrategyResult{}, false
}

// Summary returns a human-readable summary of all strategy attempts.
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		status := "no_match"
		if r.Found {
			status = "success"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", r.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
