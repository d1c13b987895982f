package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/nmansour/fabflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func sampleResult() model.AnalysisResult {
	summary := model.NewSummary()
	summary.ByMonth["2024-01"] = &model.BucketStat{Credit: 15000, Debit: 3652.75, Count: 4}
	summary.ByCategory["Groceries"] = &model.BucketStat{Debit: 152.75, Count: 1}
	summary.ByCategory["Banking"] = &model.BucketStat{Credit: 15500, Debit: 3500, Count: 4}

	discrepancy := 2997.0
	actual := 11850.25
	return model.AnalysisResult{
		GeneratedAt:       time.Now(),
		TotalTransactions: 6,
		Summary:           summary,
		Totals:            model.FlowTotals{Credits: 15503, Debits: 3652.75},
		Filtered:          model.FlowTotals{Credits: 15000, Debits: 152.75},
		BalanceInfo: model.BalanceInfo{
			OpeningBalance: floatPtr(0),
			ClosingBalance: floatPtr(11850.25),
			NetChange:      floatPtr(11850.25),
		},
		Reconciliation: model.ReconciliationResult{
			ActualNetChange:   &actual,
			Discrepancy:       &discrepancy,
			CalculatedNetFlow: 14847.25,
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer("AED").Render(&buf, sampleResult())
	out := buf.String()

	assert.Contains(t, out, "ACCOUNT BALANCE")
	assert.Contains(t, out, "Opening: 0.00 AED")
	assert.Contains(t, out, "Closing: 11850.25 AED")
	assert.Contains(t, out, "MONTHLY SUMMARY")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "SPENDING BY CATEGORY")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Net (Filtered):    14847.25 AED")
	assert.Contains(t, out, "FILTERING SUMMARY")
	assert.Contains(t, out, "RECONCILIATION ANALYSIS")
	assert.Contains(t, out, "Discrepancy:           2997.00 AED")
	assert.Contains(t, out, "misclassified", "out-of-tolerance discrepancy is a warning, not an error")
}

func TestRenderer_RenderNoBalances(t *testing.T) {
	result := sampleResult()
	result.BalanceInfo = model.BalanceInfo{}
	result.Reconciliation = model.ReconciliationResult{CalculatedNetFlow: 100}

	var buf bytes.Buffer
	NewRenderer("").Render(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "No running balances could be recovered")
	assert.NotContains(t, out, "RECONCILIATION ANALYSIS", "reconciliation section omitted when unavailable")
}

func TestRenderer_RenderAdjusted(t *testing.T) {
	result := sampleResult()
	result.Reconciliation.Adjusted = true
	result.Reconciliation.ExcludedCount = 2
	result.Reconciliation.AdjustedNetFlow = floatPtr(11900)
	result.Reconciliation.AdjustedDiscrepancy = floatPtr(49.75)
	result.Reconciliation.WithinTolerance = true

	var buf bytes.Buffer
	NewRenderer("AED").Render(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "Adjusted Net Flow")
	assert.Contains(t, out, "2 large transactions excluded")
	assert.Contains(t, out, "Adjusted Discrepancy:  49.75 AED")
	assert.Contains(t, out, "within tolerance")
}
