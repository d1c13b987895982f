package model

import (
	"encoding/json"
	"time"
)

// BalanceSnapshot captures the account balance around a single transaction,
// recovered from the running balance embedded in the statement's source line.
type BalanceSnapshot struct {
	Date          time.Time `json:"date"`
	BalanceBefore float64   `json:"balanceBefore"`
	BalanceAfter  float64   `json:"balanceAfter"`
}

// PeriodBalance tracks opening and closing balances for one scope (the whole
// statement range, or a single calendar month). Opening fields are set exactly
// once from the first transaction with a recoverable balance; closing fields
// are overwritten by every later-or-equal dated one, so the last write wins.
type PeriodBalance struct {
	OpeningBalance *float64   `json:"openingBalance"`
	ClosingBalance *float64   `json:"closingBalance"`
	OpeningDate    *time.Time `json:"openingDate"`
	ClosingDate    *time.Time `json:"closingDate"`
}

// NetChange returns closing minus opening, or nil when either is unknown.
func (p PeriodBalance) NetChange() *float64 {
	if p.OpeningBalance == nil || p.ClosingBalance == nil {
		return nil
	}
	net := *p.ClosingBalance - *p.OpeningBalance
	return &net
}

// MarshalJSON emits the derived netChange alongside the stored fields, so
// every monthly balance in exported results carries its own delta.
func (p PeriodBalance) MarshalJSON() ([]byte, error) {
	type periodBalance PeriodBalance
	return json.Marshal(struct {
		periodBalance
		NetChange *float64 `json:"netChange"`
	}{periodBalance(p), p.NetChange()})
}

// Record folds one balance snapshot into the period. The opening balance is
// only taken from the first snapshot seen; callers must feed snapshots in
// ascending date order for the result to be meaningful.
func (p *PeriodBalance) Record(snap BalanceSnapshot) {
	if p.OpeningBalance == nil {
		before := snap.BalanceBefore
		date := snap.Date
		p.OpeningBalance = &before
		p.OpeningDate = &date
	}
	after := snap.BalanceAfter
	date := snap.Date
	p.ClosingBalance = &after
	p.ClosingDate = &date
}

// LedgerInfo is the reconstructed balance ledger: the overall opening/closing
// balances plus a per-month breakdown keyed by "YYYY-MM". All fields are nil
// when no transaction carried a recoverable balance; that is a valid,
// reportable outcome rather than an error.
type LedgerInfo struct {
	Overall         PeriodBalance             `json:"overall"`
	MonthlyBalances map[string]*PeriodBalance `json:"monthlyBalances"`
}

// NewLedgerInfo creates an empty ledger.
func NewLedgerInfo() LedgerInfo {
	return LedgerInfo{MonthlyBalances: make(map[string]*PeriodBalance)}
}

// NetChange returns the overall closing-minus-opening delta, nil if unknown.
func (l LedgerInfo) NetChange() *float64 {
	return l.Overall.NetChange()
}
