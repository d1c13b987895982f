package model

// ReconciliationResult compares the classifier's filtered net flow against the
// ledger's authoritative balance delta. ActualNetChange and Discrepancy are
// nil when the ledger could not be reconstructed; in that case reconciliation
// is reported as unavailable rather than failed.
type ReconciliationResult struct {
	ActualNetChange     *float64 `json:"actualNetChange"`
	Discrepancy         *float64 `json:"discrepancy"`
	AdjustedNetFlow     *float64 `json:"adjustedNetFlow,omitempty"`
	AdjustedDiscrepancy *float64 `json:"adjustedDiscrepancy,omitempty"`
	CalculatedNetFlow   float64  `json:"calculatedNetFlow"`
	WithinTolerance     bool     `json:"withinTolerance"`
	Adjusted            bool     `json:"adjusted"`
	ExcludedCount       int      `json:"excludedCount,omitempty"`
}

// Available reports whether a ledger delta existed to reconcile against.
func (r ReconciliationResult) Available() bool {
	return r.ActualNetChange != nil
}
