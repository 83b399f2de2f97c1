package categorizer

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"fjacquet/khoroch-khata/internal/models"
)

//go:embed keywords.yaml
var defaultKeywords []byte

// KeywordRule maps one category to its trigger keywords.
type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTable holds the ordered rules for each transaction type.
type KeywordTable struct {
	Expense []KeywordRule `yaml:"expense"`
	Income  []KeywordRule `yaml:"income"`
}

// DefaultKeywordTable returns the built-in bilingual table.
func DefaultKeywordTable() KeywordTable {
	table, err := ParseKeywordTable(defaultKeywords)
	if err != nil {
		panic(fmt.Sprintf("embedded keyword table: %v", err))
	}
	return table
}

// ParseKeywordTable decodes a YAML keyword table.
func ParseKeywordTable(data []byte) (KeywordTable, error) {
	var table KeywordTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return KeywordTable{}, fmt.Errorf("error parsing keyword table: %w", err)
	}
	for _, rules := range [][]KeywordRule{table.Expense, table.Income} {
		for i, r := range rules {
			if strings.TrimSpace(r.Category) == "" {
				return KeywordTable{}, fmt.Errorf("keyword rule %d has no category", i)
			}
		}
	}
	return table, nil
}

// LoadKeywordTable reads a table from path. A missing file yields the
// default table.
func LoadKeywordTable(fs afero.Fs, path string) (KeywordTable, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultKeywordTable(), nil
	}
	if err != nil {
		return KeywordTable{}, fmt.Errorf("error reading keyword table %s: %w", path, err)
	}
	return ParseKeywordTable(data)
}

// SaveKeywordTable writes table to path as YAML.
func SaveKeywordTable(fs afero.Fs, path string, table KeywordTable) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("error encoding keyword table: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing keyword table %s: %w", path, err)
	}
	return nil
}

// Rules returns the rules for t in declared order.
func (k KeywordTable) Rules(t models.TransactionType) []KeywordRule {
	if t == models.TypeIncome {
		return k.Income
	}
	return k.Expense
}

// Match returns the first rule of type t with a keyword contained in the
// lowercased note. allowed filters out categories the user does not have.
func (k KeywordTable) Match(t models.TransactionType, note string, allowed func(string) bool) (KeywordRule, string, bool) {
	lower := strings.ToLower(note)
	for _, rule := range k.Rules(t) {
		for _, kw := range rule.Keywords {
			if kw == "" || !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			if allowed != nil && !allowed(rule.Category) {
				break
			}
			return rule, kw, true
		}
	}
	return KeywordRule{}, "", false
}
