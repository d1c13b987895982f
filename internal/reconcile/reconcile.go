// Package reconcile compares the classifier's filtered net flow against the
// ledger's balance delta and measures the filtering accuracy.
package reconcile

import (
	"log/slog"
	"math"
	"sort"

	"github.com/nmansour/fabflow/internal/model"
)

// Defaults for reconciliation.
const (
	// DefaultTolerance is the acceptable gap between the filtered net flow
	// and the ledger's net change.
	DefaultTolerance = 1000
	// DefaultAutoAdjustFloor is the minimum amount for a transaction to be
	// considered by the auto-adjust heuristic.
	DefaultAutoAdjustFloor = 1000
)

// Reconciler checks filtered flows against ledger deltas.
type Reconciler struct {
	tolerance       float64
	autoAdjustFloor float64
}

// New creates a reconciler with the given tolerance and auto-adjust floor.
func New(tolerance, autoAdjustFloor float64) *Reconciler {
	return &Reconciler{tolerance: tolerance, autoAdjustFloor: autoAdjustFloor}
}

// NewDefault creates a reconciler with the shipped defaults.
func NewDefault() *Reconciler {
	return New(DefaultTolerance, DefaultAutoAdjustFloor)
}

// Reconcile compares the filtered net flow against the ledger's net change.
// A nil actualNetChange (no reconstructable ledger) yields a result with
// Available()==false; reconciliation is reported as unavailable, not failed.
func (r *Reconciler) Reconcile(actualNetChange *float64, filtered model.FlowTotals) model.ReconciliationResult {
	result := model.ReconciliationResult{
		CalculatedNetFlow: filtered.Net(),
	}

	if actualNetChange == nil {
		return result
	}

	actual := *actualNetChange
	discrepancy := result.CalculatedNetFlow - actual

	result.ActualNetChange = &actual
	result.Discrepancy = &discrepancy
	result.WithinTolerance = math.Abs(discrepancy) <= r.tolerance

	return result
}

// AutoAdjust is a best-effort heuristic, not a correctness proof: when the
// discrepancy exceeds tolerance it walks the non-internal transactions above
// the floor, largest first, and excludes just enough of them from the
// filtered totals to bring the discrepancy under tolerance. Candidates whose
// exclusion would move the discrepancy further from zero are skipped.
//
// The returned result keeps the pre-adjustment figures so a human can judge
// the adjustment's plausibility; the adjusted totals are advisory output.
func (r *Reconciler) AutoAdjust(txns []model.Transaction, isInternal func(model.Transaction) bool, base model.ReconciliationResult) (model.ReconciliationResult, model.FlowTotals) {
	result := base

	var external []model.Transaction
	var filtered model.FlowTotals
	for _, t := range txns {
		if isInternal(t) {
			continue
		}
		external = append(external, t)
		filtered.Add(t)
	}

	if base.ActualNetChange == nil || base.WithinTolerance {
		return result, filtered
	}

	candidates := make([]model.Transaction, 0, len(external))
	for _, t := range external {
		if t.Amount > r.autoAdjustFloor {
			candidates = append(candidates, t)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Amount > candidates[j].Amount
	})

	slog.Debug("auto-adjust candidates",
		"count", len(candidates),
		"target_net_change", *base.ActualNetChange,
		"discrepancy", *base.Discrepancy)

	discrepancy := *base.Discrepancy
	excluded := 0
	for _, t := range candidates {
		if math.Abs(discrepancy) <= r.tolerance {
			break
		}
		// Excluding t removes its signed contribution from the net flow.
		after := discrepancy - t.SignedAmount()
		if math.Abs(after) >= math.Abs(discrepancy) {
			continue
		}
		discrepancy = after
		excluded++
		if t.Type == model.Debit {
			filtered.Debits -= t.Amount
		} else {
			filtered.Credits -= t.Amount
		}
		slog.Debug("auto-adjust excluded large transaction",
			"description", t.Description,
			"amount", t.Amount,
			"type", t.Type,
			"remaining_discrepancy", discrepancy)
	}

	adjustedNet := filtered.Net()
	adjustedDiscrepancy := adjustedNet - *base.ActualNetChange

	result.Adjusted = true
	result.ExcludedCount = excluded
	result.AdjustedNetFlow = &adjustedNet
	result.AdjustedDiscrepancy = &adjustedDiscrepancy
	result.WithinTolerance = math.Abs(adjustedDiscrepancy) <= r.tolerance

	return result, filtered
}
