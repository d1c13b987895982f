package normalize

import (
	"fmt"
	"regexp"
)

// Cities that banks print twice in a row or pair with a country code on POS
// lines. Extend this list when statements from new regions show up.
var knownCities = []string{"BANGKOK", "KUALA LUMPUR", "ABU DHABI", "DUBAI", "SINGAPORE"}

const currencyCodes = "AED|USD|THB|MYR|EUR|GBP"

// DefaultRules returns the shipped cleanup rule list. Order matters: prefix
// and suffix stripping must run before whitespace normalization, and currency
// suffixes must be removed before bare trailing numbers.
func DefaultRules() []Rule {
	rules := []Rule{
		// Transaction-type prefixes.
		{regexp.MustCompile(`(?i)^POS Settlement\s+`), "", "Remove POS prefix"},
		{regexp.MustCompile(`(?i)^Outward Cheque Returned\s*`), "Returned Cheque - ", "Clean cheque return prefix"},

		// Dates and times.
		{regexp.MustCompile(`^\d+/\d+\s+`), "", "Remove date at start"},
		{regexp.MustCompile(`\s+\d{2}:\d{2}\s*$`), "", "Remove time at end"},

		// Currency and amounts.
		{regexp.MustCompile(`(?i)\s+(` + currencyCodes + `)\s*[\d.]*\s*$`), "", "Remove currency at end"},
		{regexp.MustCompile(`\s+[\d.]+\s*$`), "", "Remove amounts at end"},
		{regexp.MustCompile(`(?i)\s+(` + currencyCodes + `)\s+`), " ", "Remove currency in middle"},
	}

	// Duplicate city names, e.g. "BANGKOK BANGKOK" -> "BANGKOK". One rule per
	// city because RE2 has no backreferences.
	for _, city := range knownCities {
		rules = append(rules, Rule{
			regexp.MustCompile(`(?i)\s+(` + regexp.QuoteMeta(city) + `)\s+` + regexp.QuoteMeta(city)),
			" $1",
			fmt.Sprintf("Remove duplicate city %s", city),
		})
	}

	rules = append(rules,
		// City + country-code suffixes.
		Rule{regexp.MustCompile(`(?i)\s+(` + cityAlternation() + `)\s+(TH|MY|AE|SG|US)`), "", "Remove city+country"},

		// Trailing numbers, then whitespace runs.
		Rule{regexp.MustCompile(`\s+\d+$`), "", "Remove trailing numbers"},
		Rule{regexp.MustCompile(`\s+`), " ", "Normalize spaces"},
	)

	return rules
}

func cityAlternation() string {
	alt := ""
	for i, city := range knownCities {
		if i > 0 {
			alt += "|"
		}
		alt += regexp.QuoteMeta(city)
	}
	return alt
}
