package report

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// Summary is the dashboard view of one profile over one date range.
type Summary struct {
	Profile   string          `json:"profile" yaml:"profile"`
	Range     RangeType       `json:"range" yaml:"range"`
	From      string          `json:"from,omitempty" yaml:"from,omitempty"`
	To        string          `json:"to,omitempty" yaml:"to,omitempty"`
	Count     int             `json:"count" yaml:"count"`
	Totals    Totals          `json:"totals" yaml:"totals"`
	Breakdown []CategoryTotal `json:"breakdown" yaml:"breakdown"`
	Budgets   []BudgetLine    `json:"budgets" yaml:"budgets"`
}

// BuildSummary derives the dashboard view of the active profile.
func BuildSummary(state models.AppState, r DateRange, now time.Time) (Summary, bool) {
	profile, ok := ActiveProfile(state)
	if !ok {
		return Summary{}, false
	}
	txs := FilterByProfileAndRange(state.Transactions, profile.ID, r, now)
	from, to := ResolveRange(r, now)
	rangeType := r.Type
	if rangeType == "" {
		rangeType = RangeAll
	}
	return Summary{
		Profile:   profile.Name,
		Range:     rangeType,
		From:      from.String(),
		To:        to.String(),
		Count:     len(txs),
		Totals:    ComputeTotals(txs),
		Breakdown: CategoryBreakdown(txs),
		Budgets:   BudgetProgress(profile, CurrentMonthExpenses(state.Transactions, profile.ID, now)),
	}, true
}

// ReportGenerator renders summaries in machine-readable formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{
		logger: logging.OrDefault(logger).WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders v as "json" or "yaml".
func (g *ReportGenerator) GenerateReport(v any, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSONReport(v)
	case "yaml":
		return g.generateYAMLReport(v)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
