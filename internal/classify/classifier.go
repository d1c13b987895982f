// Package classify decides whether a transaction is real economic activity
// or internal banking noise, and detects bounced-cheque pairs.
package classify

import (
	"log/slog"
	"strings"

	"github.com/nmansour/fabflow/internal/model"
)

// Rules holds the keyword and pattern tables driving internal-operation
// classification. Injected at construction so tests and users can substitute
// their own tables.
type Rules struct {
	// Keywords mark a transaction internal when found in the lowercased
	// description.
	Keywords []string
	// TransferPatterns mark transfers as internal unless an exclude matches.
	TransferPatterns []string
	// TransferExcludes are income-bearing transfer phrasings. Any exclude
	// match wins over the transfer patterns.
	TransferExcludes []string
	// SmallCreditMax marks credits below this amount as adjustments.
	SmallCreditMax float64
}

// Classifier is a pure predicate over a transaction and its rule tables. It
// must only run after pair detection, since a detected bounced-cheque pair
// short-circuits every other rule.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier with the given rule tables.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefaultClassifier creates a classifier with the shipped rule tables.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// IsInternal reports whether the transaction is internal banking noise
// rather than genuine income or expense.
func (c *Classifier) IsInternal(t model.Transaction) bool {
	internal, reason := c.classify(t)
	if internal {
		slog.Debug("filtered as internal",
			"reason", reason,
			"description", t.Description,
			"amount", t.Amount,
			"type", t.Type)
	}
	return internal
}

// classify applies the decision rules in order, first match wins.
func (c *Classifier) classify(t model.Transaction) (bool, string) {
	if t.PairedInternal {
		return true, "bounced cheque pair"
	}

	desc := strings.ToLower(t.Description)

	for _, keyword := range c.rules.Keywords {
		if strings.Contains(desc, keyword) {
			return true, "keyword " + keyword
		}
	}

	// Transfers are internal unless an exclude pattern identifies them as
	// income. The exclude check wins regardless of how many transfer
	// patterns also match.
	if containsAny(desc, c.rules.TransferPatterns) && !containsAny(desc, c.rules.TransferExcludes) {
		return true, "transfer rule"
	}

	if t.Type == model.Credit && t.Amount < c.rules.SmallCreditMax {
		return true, "small credit"
	}

	return false, ""
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
