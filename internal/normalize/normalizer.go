// Package normalize cleans raw statement descriptions into canonical
// merchant names via an ordered list of text-substitution rules.
package normalize

import (
	"regexp"
	"strings"
)

// UnknownMerchant is returned when nothing remains after cleanup.
const UnknownMerchant = "Unknown"

// Rule is a single substitution step. Rules are applied strictly in list
// order; each rule's output feeds the next rule's input.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Reason      string
}

// Normalizer applies an ordered rule list to raw descriptions.
type Normalizer struct {
	rules []Rule
}

// New creates a normalizer with the given rules.
func New(rules []Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// NewDefault creates a normalizer with the shipped rule set.
func NewDefault() *Normalizer {
	return New(DefaultRules())
}

// Normalize cleans a raw description into a merchant name. It is a pure
// function and idempotent: normalizing an already-normalized string is a
// no-op. Returns UnknownMerchant when the result is empty.
func (n *Normalizer) Normalize(description string) string {
	if description == "" {
		return UnknownMerchant
	}

	cleaned := description
	for _, rule := range n.rules {
		cleaned = rule.Pattern.ReplaceAllString(cleaned, rule.Replacement)
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return UnknownMerchant
	}
	return cleaned
}

// Rules returns the active rule list, for display and diagnostics.
func (n *Normalizer) Rules() []Rule {
	return n.rules
}
