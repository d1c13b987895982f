package reconcile

import (
	"testing"
	"time"

	"github.com/nmansour/fabflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestReconciler_Reconcile(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		actual          *float64
		name            string
		filtered        model.FlowTotals
		wantDiscrepancy float64
		wantWithin      bool
		wantAvailable   bool
	}{
		{
			name:            "exact match has zero discrepancy",
			actual:          floatPtr(4500),
			filtered:        model.FlowTotals{Credits: 5000, Debits: 500},
			wantDiscrepancy: 0,
			wantWithin:      true,
			wantAvailable:   true,
		},
		{
			name:            "small gap within tolerance",
			actual:          floatPtr(4000),
			filtered:        model.FlowTotals{Credits: 5000, Debits: 500},
			wantDiscrepancy: 500,
			wantWithin:      true,
			wantAvailable:   true,
		},
		{
			name:            "large gap out of tolerance",
			actual:          floatPtr(0),
			filtered:        model.FlowTotals{Credits: 5000, Debits: 500},
			wantDiscrepancy: 4500,
			wantWithin:      false,
			wantAvailable:   true,
		},
		{
			name:          "no ledger means reconciliation unavailable",
			actual:        nil,
			filtered:      model.FlowTotals{Credits: 100, Debits: 50},
			wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Reconcile(tt.actual, tt.filtered)
			assert.Equal(t, tt.wantAvailable, result.Available())
			assert.InDelta(t, tt.filtered.Net(), result.CalculatedNetFlow, 0.001)
			if tt.wantAvailable {
				require.NotNil(t, result.Discrepancy)
				assert.InDelta(t, tt.wantDiscrepancy, *result.Discrepancy, 0.001)
				assert.Equal(t, tt.wantWithin, result.WithinTolerance)
			} else {
				assert.Nil(t, result.Discrepancy)
			}
		})
	}
}

func externalOnly(model.Transaction) bool { return false }

func txn(amount float64, typ model.TransactionType, desc string) model.Transaction {
	return model.Transaction{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Type:        typ,
		Description: desc,
	}
}

func TestReconciler_AutoAdjust(t *testing.T) {
	r := NewDefault()

	txns := []model.Transaction{
		txn(5000, model.Credit, "unexplained large credit"),
		txn(500, model.Debit, "POS Settlement CARREFOUR"),
	}

	base := r.Reconcile(floatPtr(0), model.FlowTotals{Credits: 5000, Debits: 500})
	require.False(t, base.WithinTolerance)

	result, adjusted := r.AutoAdjust(txns, externalOnly, base)

	assert.True(t, result.Adjusted)
	assert.Equal(t, 1, result.ExcludedCount)

	// Pre-adjustment figures stay visible alongside the adjusted ones.
	require.NotNil(t, result.Discrepancy)
	assert.InDelta(t, 4500, *result.Discrepancy, 0.001)
	require.NotNil(t, result.AdjustedDiscrepancy)
	assert.InDelta(t, -500, *result.AdjustedDiscrepancy, 0.001)
	assert.True(t, result.WithinTolerance)

	assert.InDelta(t, 0, adjusted.Credits, 0.001)
	assert.InDelta(t, 500, adjusted.Debits, 0.001)
}

// The heuristic excludes largest-first and stops as soon as the discrepancy
// drops under tolerance, leaving smaller candidates untouched.
func TestReconciler_AutoAdjust_StopsWhenWithinTolerance(t *testing.T) {
	r := NewDefault()

	txns := []model.Transaction{
		txn(5000, model.Credit, "big credit"),
		txn(1200, model.Credit, "smaller credit"),
	}

	base := r.Reconcile(floatPtr(500), model.FlowTotals{Credits: 6200})
	require.False(t, base.WithinTolerance)

	result, adjusted := r.AutoAdjust(txns, externalOnly, base)

	assert.Equal(t, 1, result.ExcludedCount, "second candidate should not be needed")
	assert.InDelta(t, 1200, adjusted.Credits, 0.001)
	require.NotNil(t, result.AdjustedDiscrepancy)
	assert.InDelta(t, 700, *result.AdjustedDiscrepancy, 0.001)
	assert.True(t, result.WithinTolerance)
}

// Candidates whose exclusion would widen the gap are skipped, even when
// they are the largest amounts on the list.
func TestReconciler_AutoAdjust_SkipsUnhelpfulCandidates(t *testing.T) {
	r := NewDefault()

	txns := []model.Transaction{
		txn(6000, model.Debit, "large genuine expense"),
		txn(3000, model.Credit, "unexplained credit"),
	}

	// Ledger says the balance fell by 5000; the filtered flow only explains
	// a 3000 drop, so the discrepancy is +2000.
	base := r.Reconcile(floatPtr(-5000), model.FlowTotals{Credits: 3000, Debits: 6000})
	require.False(t, base.WithinTolerance)

	result, adjusted := r.AutoAdjust(txns, externalOnly, base)

	// The 6000 debit is scanned first but skipped: excluding it would push
	// the discrepancy to +8000. Excluding the credit closes the gap.
	assert.Equal(t, 1, result.ExcludedCount)
	assert.InDelta(t, 6000, adjusted.Debits, 0.001)
	assert.InDelta(t, 0, adjusted.Credits, 0.001)
	require.NotNil(t, result.AdjustedDiscrepancy)
	assert.InDelta(t, -1000, *result.AdjustedDiscrepancy, 0.001)
	assert.True(t, result.WithinTolerance)
}

// Auto-adjust never filters transactions the classifier already marked
// internal, and honours the floor.
func TestReconciler_AutoAdjust_RespectsFloorAndClassifier(t *testing.T) {
	r := NewDefault()

	internalDesc := "Outward Transfer to savings"
	isInternal := func(t model.Transaction) bool { return t.Description == internalDesc }

	txns := []model.Transaction{
		txn(9000, model.Credit, internalDesc),
		txn(800, model.Credit, "below the floor"),
		txn(3000, model.Credit, "candidate"),
	}

	base := r.Reconcile(floatPtr(0), model.FlowTotals{Credits: 3800})
	result, adjusted := r.AutoAdjust(txns, isInternal, base)

	assert.Equal(t, 1, result.ExcludedCount)
	assert.InDelta(t, 800, adjusted.Credits, 0.001, "only the above-floor external candidate is excluded")
	require.NotNil(t, result.AdjustedDiscrepancy)
	assert.InDelta(t, 800, *result.AdjustedDiscrepancy, 0.001)
}
