// Package ledger reconstructs opening and closing account balances from the
// running balance embedded in statement source lines.
package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nmansour/fabflow/internal/model"
)

// Statement lines end with the running balance, optionally comma-grouped,
// e.g. "... POS Settlement CARREFOUR 152.75 12,847.50".
var trailingBalanceRe = regexp.MustCompile(`([\d,]+(?:\.\d{2})?)\s*$`)

// ExtractBalance parses the trailing running balance from a raw statement
// line. Not every line carries one; a missing balance is an expected gap,
// not an error.
func ExtractBalance(line string) (float64, bool) {
	if line == "" {
		return 0, false
	}
	match := trailingBalanceRe.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// SnapshotFor recovers the balance around a single transaction. The
// pre-transaction balance is inferred by reversing the transaction's effect:
// a credit raised the balance, so before = after - amount; a debit lowered
// it, so before = after + amount.
func SnapshotFor(t model.Transaction) (model.BalanceSnapshot, bool) {
	after, ok := ExtractBalance(t.RawSourceLine)
	if !ok {
		return model.BalanceSnapshot{}, false
	}

	before := after + t.Amount
	if t.Type == model.Credit {
		before = after - t.Amount
	}

	return model.BalanceSnapshot{
		Date:          t.Date,
		BalanceBefore: before,
		BalanceAfter:  after,
	}, true
}

// Reconstruct walks transactions in slice order and derives overall and
// per-month opening/closing balances. Callers must pass transactions sorted
// ascending by date; the opening balance is first-seen-wins and the closing
// balance is last-seen-wins, so an unsorted input silently attributes
// balances to the wrong period. Same-day transactions are resolved by
// iteration order, with no secondary key.
//
// When no transaction yields a parseable balance the returned LedgerInfo has
// every balance field nil, which is a valid reportable outcome.
func Reconstruct(txns []model.Transaction) model.LedgerInfo {
	info := model.NewLedgerInfo()

	for _, t := range txns {
		snap, ok := SnapshotFor(t)
		if !ok {
			continue
		}

		info.Overall.Record(snap)

		month := t.Month()
		period, ok := info.MonthlyBalances[month]
		if !ok {
			period = &model.PeriodBalance{}
			info.MonthlyBalances[month] = period
		}
		period.Record(snap)
	}

	return info
}
