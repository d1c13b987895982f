package classify

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/nmansour/fabflow/internal/model"
)

// Defaults for bounced-cheque pairing.
const (
	// DefaultPairAmountTolerance covers bank fees deducted from the
	// returned amount.
	DefaultPairAmountTolerance = 5
	// DefaultPairTimeWindow is how far apart a deposit and its return may be.
	DefaultPairTimeWindow = 90 * 24 * time.Hour
)

// PairDetector finds cheque deposit/return pairs that together represent
// zero net economic effect.
type PairDetector struct {
	amountTolerance float64
	timeWindow      time.Duration
}

// NewPairDetector creates a detector with the given tolerances.
func NewPairDetector(amountTolerance float64, timeWindow time.Duration) *PairDetector {
	return &PairDetector{amountTolerance: amountTolerance, timeWindow: timeWindow}
}

// NewDefaultPairDetector creates a detector with the shipped tolerances.
func NewDefaultPairDetector() *PairDetector {
	return NewPairDetector(DefaultPairAmountTolerance, DefaultPairTimeWindow)
}

// Detect returns a new slice in which both halves of every matched
// deposit/return pair carry PairedInternal=true. The input is not mutated.
//
// Each deposit matches at most one return (the first in list order within
// tolerance). A return is NOT consumed when matched, so one return can in
// principle pair with several deposits; this mirrors long-standing behavior
// and is pinned by a test rather than changed here.
func (d *PairDetector) Detect(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)

	var deposits, returns []int
	for i, t := range out {
		desc := strings.ToLower(t.Description)
		if t.Type == model.Credit &&
			(strings.Contains(desc, "cheque deposit") || strings.Contains(desc, "deposit cheque")) {
			deposits = append(deposits, i)
		}
		if strings.Contains(desc, "returned cheque") ||
			strings.Contains(desc, "cheque returned") ||
			strings.Contains(desc, "outward cheque returned") {
			returns = append(returns, i)
		}
	}

	for _, di := range deposits {
		for _, ri := range returns {
			if di == ri {
				continue
			}
			deposit, ret := out[di], out[ri]
			amountDiff := math.Abs(deposit.Amount - ret.Amount)
			timeDiff := absDuration(ret.Date.Sub(deposit.Date))

			if amountDiff <= d.amountTolerance && timeDiff <= d.timeWindow {
				out[di].PairedInternal = true
				out[ri].PairedInternal = true
				slog.Debug("bounced cheque pair detected",
					"deposit", deposit.Description,
					"deposit_amount", deposit.Amount,
					"return", ret.Description,
					"return_amount", ret.Amount)
				break
			}
		}
	}

	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
