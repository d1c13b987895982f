package categorize

// DefaultRules returns the shipped merchant keyword table. Keywords are
// matched against uppercased descriptions, first match wins, so broader
// keywords ("MALL") sit after the specific merchants they would shadow.
func DefaultRules() []Rule {
	return []Rule{
		// Grocery stores.
		{"CARREFOUR", "Groceries"},
		{"LULU", "Groceries"},
		{"SPINNEYS", "Groceries"},
		{"CHOITHRAMS", "Groceries"},

		// Online shopping.
		{"AMAZON", "Shopping"},
		{"NOON", "Shopping"},
		{"MALL", "Shopping"},
		{"IKEA", "Home & Garden"},

		// Restaurants and cafes.
		{"MCDONALDS", "Food & Dining"},
		{"KFC", "Food & Dining"},
		{"SUBWAY", "Food & Dining"},
		{"STARBUCKS", "Food & Dining"},
		{"COSTA", "Food & Dining"},
		{"RESTAURANT", "Food & Dining"},
		{"CAFE", "Food & Dining"},

		// Fuel.
		{"PETROL", "Transportation"},
		{"ADNOC", "Transportation"},
		{"EPPCO", "Transportation"},
		{"ENOC", "Transportation"},

		// Transportation services.
		{"TAXI", "Transportation"},
		{"UBER", "Transportation"},
		{"CAREEM", "Transportation"},
		{"SALIK", "Transportation"},
		{"PARKING", "Transportation"},
		{"RTA", "Transportation"},

		// Utilities.
		{"DEWA", "Utilities"},
		{"ETISALAT", "Utilities"},
		{"DU", "Utilities"},

		// Healthcare.
		{"HOSPITAL", "Healthcare"},
		{"CLINIC", "Healthcare"},
		{"PHARMACY", "Healthcare"},
		{"MEDICAL", "Healthcare"},

		// Entertainment.
		{"CINEMA", "Entertainment"},
		{"VOX", "Entertainment"},
		{"NETFLIX", "Entertainment"},
		{"SPOTIFY", "Entertainment"},

		// Banking.
		{"ATM", "Banking"},
		{"TRANSFER", "Banking"},
		{"FEE", "Banking"},
		{"CHEQUE", "Banking"},
		{"OUTWARD CHEQUE RETURNED", "Banking"},
	}
}
