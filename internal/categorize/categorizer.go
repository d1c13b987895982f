// Package categorize maps transaction descriptions to category labels using
// ordered keyword rules.
package categorize

import "strings"

// Categories assigned by the special-case overrides and the fallback.
const (
	// CategoryATM is assigned to switch (ATM) transactions.
	CategoryATM = "ATM/Cash Withdrawal"
	// CategoryBanking is assigned to returned cheques.
	CategoryBanking = "Banking"
	// CategoryDefault is the fallback when no keyword matches.
	CategoryDefault = "Uncategorized"
)

// Rule maps a keyword to a category. Rules are scanned in list order and the
// first keyword found as a substring of the uppercased description wins, even
// when a later keyword would be a longer or more specific match. That
// first-match tie-break is inherited behavior the rest of the system depends
// on; keep the rule order stable.
type Rule struct {
	Keyword  string
	Category string
}

// Categorizer resolves descriptions to categories. The rule table is injected
// at construction so tests and users can substitute their own.
type Categorizer struct {
	defaultCategory string
	rules           []Rule
}

// New creates a categorizer over an ordered rule list. An empty
// defaultCategory falls back to CategoryDefault.
func New(rules []Rule, defaultCategory string) *Categorizer {
	if defaultCategory == "" {
		defaultCategory = CategoryDefault
	}
	return &Categorizer{rules: rules, defaultCategory: defaultCategory}
}

// NewDefault creates a categorizer with the shipped rule table.
func NewDefault() *Categorizer {
	return New(DefaultRules(), CategoryDefault)
}

// Categorize returns the category for a description. Special cases run before
// the keyword scan: the generic table would otherwise file switch
// transactions and returned cheques under the wrong categories.
func (c *Categorizer) Categorize(description string) string {
	if description == "" {
		return c.defaultCategory
	}

	upper := strings.ToUpper(description)

	if strings.Contains(upper, "SWITCH TRANSACTION") {
		return CategoryATM
	}
	if strings.Contains(upper, "OUTWARD CHEQUE RETURNED") || strings.Contains(upper, "CHEQUE RETURNED") {
		return CategoryBanking
	}

	for _, rule := range c.rules {
		if strings.Contains(upper, rule.Keyword) {
			return rule.Category
		}
	}

	return c.defaultCategory
}

// DefaultCategory returns the fallback category.
func (c *Categorizer) DefaultCategory() string {
	return c.defaultCategory
}

// Rules returns the active rule table, for display and export.
func (c *Categorizer) Rules() []Rule {
	return c.rules
}
