package model

import "time"

// BalanceInfo is the balance section of the output contract: the
// reconstructed ledger plus the filtered money flows and reconciliation
// figures. Pointer fields are nil when no balance could be reconstructed;
// consumers must tolerate that.
type BalanceInfo struct {
	OpeningBalance           *float64                  `json:"openingBalance"`
	ClosingBalance           *float64                  `json:"closingBalance"`
	OpeningDate              *time.Time                `json:"openingDate"`
	ClosingDate              *time.Time                `json:"closingDate"`
	NetChange                *float64                  `json:"netChange"`
	ReconciliationAdjustment *float64                  `json:"reconciliationAdjustment"`
	ReconciledNetFlow        *float64                  `json:"reconciledNetFlow"`
	MonthlyBalances          map[string]*PeriodBalance `json:"monthlyBalances"`
	ActualMoneyInFlow        float64                   `json:"actualMoneyInFlow"`
	ActualMoneyOutFlow       float64                   `json:"actualMoneyOutFlow"`
	NetMoneyFlow             float64                   `json:"netMoneyFlow"`
}

// AnalysisResult is the full aggregate handed to presentation consumers
// (JSON export, terminal report, stored runs).
type AnalysisResult struct {
	GeneratedAt       time.Time            `json:"generatedAt"`
	Transactions      []Transaction        `json:"transactions"`
	Summary           Summary              `json:"summary"`
	BalanceInfo       BalanceInfo          `json:"balanceInfo"`
	Totals            FlowTotals           `json:"totals"`
	Filtered          FlowTotals           `json:"filtered"`
	Reconciliation    ReconciliationResult `json:"reconciliation"`
	Ledger            LedgerInfo           `json:"-"`
	TotalTransactions int                  `json:"totalTransactions"`
	SkippedRecords    int                  `json:"skippedRecords,omitempty"`
}
