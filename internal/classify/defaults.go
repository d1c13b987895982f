package classify

// DefaultSmallCreditMax is the default ceiling for the small-credit rule:
// credits under this amount are treated as bank adjustments.
const DefaultSmallCreditMax = 5

// DefaultRules returns the shipped internal-operation tables. All entries are
// lowercase; classification lowercases the description before matching.
func DefaultRules() Rules {
	return Rules{
		Keywords: []string{
			"reverse charges",          // fee reversals
			"fee reversal",             // fee reversals
			"charge reversal",          // charge reversals
			"balance adjustment",       // bank adjustments
			"atm cash deposit",         // depositing your own cash
			"cash deposit",             // depositing your own cash
			"switch transaction",       // ATM operations
			"outward cheque returned",  // returned cheques
			"sw wdl chgs",              // switch withdrawal charges
			"vat aed",                  // VAT adjustments, not real expenses
			"pos settlement  vat",      // POS VAT settlements
			"balance brought forward",  // balance carry forwards
			"balance carried forward",  // balance carry forwards
			"cash withdrawal",          // ATM cash withdrawals
			"standing order",           // standing orders are typically internal
		},
		TransferPatterns: []string{
			"transfer",          // generic transfers (most are internal)
			"outward transfer",  // your own transfers to other accounts
			"internal transfer", // bank internal transfers
			"self transfer",     // self transfers
			"account transfer",  // account to account transfers
		},
		TransferExcludes: []string{
			"inward telex transfer",        // salary/income from companies
			"inward transfer",              // income transfers
			"salary transfer",              // salary payments
			"payment transfer",             // business payments
			"ipp transfer instant payment", // IPP transfers are handled separately
		},
		SmallCreditMax: DefaultSmallCreditMax,
	}
}
