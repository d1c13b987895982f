package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nmansour/fabflow/internal/categorize"
)

// CategoryRuleFile is the sidecar format users edit to customize merchant
// categorization. Rules are an ordered list, not a map: the scan is
// first-match-wins, so position matters and must survive round-trips.
type CategoryRuleFile struct {
	Default string          `json:"default"`
	Rules   []CategoryEntry `json:"rules"`
}

// CategoryEntry is one keyword-to-category rule.
type CategoryEntry struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// LoadCategoryRules reads a sidecar rule file. An empty path returns the
// shipped defaults.
func LoadCategoryRules(path string) ([]categorize.Rule, string, error) {
	if path == "" {
		return categorize.DefaultRules(), categorize.CategoryDefault, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read categories file: %w", err)
	}

	var file CategoryRuleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to decode categories file: %w", err)
	}

	rules := make([]categorize.Rule, 0, len(file.Rules))
	for _, entry := range file.Rules {
		if entry.Keyword == "" || entry.Category == "" {
			return nil, "", fmt.Errorf("category rule with empty keyword or category")
		}
		rules = append(rules, categorize.Rule{Keyword: entry.Keyword, Category: entry.Category})
	}

	defaultCategory := file.Default
	if defaultCategory == "" {
		defaultCategory = categorize.CategoryDefault
	}
	return rules, defaultCategory, nil
}

// WriteDefaultCategoryRules writes the shipped rule table to path so users
// have a starting point to customize.
func WriteDefaultCategoryRules(path string) error {
	defaults := categorize.DefaultRules()
	file := CategoryRuleFile{
		Default: categorize.CategoryDefault,
		Rules:   make([]CategoryEntry, 0, len(defaults)),
	}
	for _, rule := range defaults {
		file.Rules = append(file.Rules, CategoryEntry{Keyword: rule.Keyword, Category: rule.Category})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal category rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write categories file: %w", err)
	}
	return nil
}
