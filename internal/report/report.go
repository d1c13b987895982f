// Package report renders an analysis result as a human-readable terminal
// summary.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/nmansour/fabflow/internal/cli"
	"github.com/nmansour/fabflow/internal/model"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "AED"

// Renderer writes analysis summaries.
type Renderer struct {
	currency string
}

// NewRenderer creates a renderer for the given currency code.
func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Renderer{currency: currency}
}

// Render writes the full summary: balances, monthly and category breakdowns,
// totals and the reconciliation analysis.
func (r *Renderer) Render(w io.Writer, result model.AnalysisResult) {
	r.renderBalance(w, result)
	r.renderMonthly(w, result)
	r.renderCategories(w, result)
	r.renderTotals(w, result)
	r.renderReconciliation(w, result)
}

func (r *Renderer) money(v float64) string {
	return fmt.Sprintf("%.2f %s", v, r.currency)
}

func (r *Renderer) signedMoney(v float64) string {
	if v >= 0 {
		return "+" + r.money(v)
	}
	return r.money(v)
}

func (r *Renderer) renderBalance(w io.Writer, result model.AnalysisResult) {
	fmt.Fprintln(w, cli.FormatTitle("ACCOUNT BALANCE"))

	balance := result.BalanceInfo
	if balance.OpeningBalance == nil {
		fmt.Fprintln(w, cli.SubtleStyle.Render("No running balances could be recovered from these statements."))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "Opening: %s\n", r.money(*balance.OpeningBalance))
	fmt.Fprintf(w, "Closing: %s\n", r.money(*balance.ClosingBalance))
	if balance.NetChange != nil {
		fmt.Fprintf(w, "Change:  %s\n", r.signedMoney(*balance.NetChange))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderMonthly(w io.Writer, result model.AnalysisResult) {
	fmt.Fprintln(w, cli.FormatTitle("MONTHLY SUMMARY"))

	months := make([]string, 0, len(result.Summary.ByMonth))
	for month := range result.Summary.ByMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	for _, month := range months {
		stat := result.Summary.ByMonth[month]
		fmt.Fprintf(w, "%s\n", cli.BoldStyle.Render(month))
		fmt.Fprintf(w, "  Income:   %s\n", r.money(stat.Credit))
		fmt.Fprintf(w, "  Expenses: %s\n", r.money(stat.Debit))
		fmt.Fprintf(w, "  Net:      %s\n", r.signedMoney(stat.Credit-stat.Debit))
		fmt.Fprintf(w, "  Count:    %d transactions\n", stat.Count)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderCategories(w io.Writer, result model.AnalysisResult) {
	fmt.Fprintln(w, cli.FormatTitle("SPENDING BY CATEGORY"))

	type entry struct {
		name string
		stat *model.BucketStat
	}
	var entries []entry
	for name, stat := range result.Summary.ByCategory {
		if stat.Debit > 0 {
			entries = append(entries, entry{name, stat})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stat.Debit != entries[j].stat.Debit {
			return entries[i].stat.Debit > entries[j].stat.Debit
		}
		return entries[i].name < entries[j].name
	})

	for _, e := range entries {
		fmt.Fprintf(w, "%s\n", cli.BoldStyle.Render(e.name))
		fmt.Fprintf(w, "  Spent: %s (%d transactions)\n", r.money(e.stat.Debit), e.stat.Count)
		if e.stat.Credit > 0 {
			fmt.Fprintf(w, "  Refunds: %s\n", r.money(e.stat.Credit))
		}
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderTotals(w io.Writer, result model.AnalysisResult) {
	fmt.Fprintln(w, cli.FormatTitle("OVERALL SUMMARY"))
	fmt.Fprintf(w, "Total Income:    %s\n", r.money(result.Totals.Credits))
	fmt.Fprintf(w, "Total Expenses:  %s\n", r.money(result.Totals.Debits))
	fmt.Fprintf(w, "Net (All):       %s\n", r.money(result.Totals.Net()))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Filtered Income:   %s\n", r.money(result.Filtered.Credits))
	fmt.Fprintf(w, "Filtered Expenses: %s\n", r.money(result.Filtered.Debits))
	fmt.Fprintf(w, "Net (Filtered):    %s\n", r.money(result.Filtered.Net()))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Transactions: %d\n", result.TotalTransactions)
	if result.SkippedRecords > 0 {
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Skipped %d malformed upstream records", result.SkippedRecords)))
	}

	filteredOutCredits := result.Totals.Credits - result.Filtered.Credits
	filteredOutDebits := result.Totals.Debits - result.Filtered.Debits
	if filteredOutCredits > 0 || filteredOutDebits > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.FormatTitle("FILTERING SUMMARY"))
		fmt.Fprintf(w, "Filtered Out Credits: %s\n", r.money(filteredOutCredits))
		fmt.Fprintf(w, "Filtered Out Debits:  %s\n", r.money(filteredOutDebits))
		fmt.Fprintf(w, "Net Filtered Out:     %s\n", r.money(filteredOutCredits-filteredOutDebits))
		fmt.Fprintln(w, cli.SubtleStyle.Render("Run with --log-level debug to see individual filtered transactions."))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderReconciliation(w io.Writer, result model.AnalysisResult) {
	recon := result.Reconciliation
	if !recon.Available() {
		return
	}

	fmt.Fprintln(w, cli.FormatTitle("RECONCILIATION ANALYSIS"))
	fmt.Fprintf(w, "Actual Balance Change: %s\n", r.money(*recon.ActualNetChange))
	fmt.Fprintf(w, "Calculated Net Flow:   %s\n", r.money(recon.CalculatedNetFlow))
	fmt.Fprintf(w, "Discrepancy:           %s\n", r.money(*recon.Discrepancy))

	if recon.Adjusted {
		// Advisory output only: show both figures so a human can judge the
		// adjustment's plausibility.
		fmt.Fprintf(w, "Adjusted Net Flow:     %s (%d large transactions excluded)\n",
			r.money(*recon.AdjustedNetFlow), recon.ExcludedCount)
		fmt.Fprintf(w, "Adjusted Discrepancy:  %s\n", r.money(*recon.AdjustedDiscrepancy))
	}

	if recon.WithinTolerance {
		fmt.Fprintln(w, cli.FormatSuccess("Reconciliation looks good (within tolerance)"))
	} else {
		fmt.Fprintln(w, cli.FormatWarning("Large discrepancy: transactions are likely misclassified as income/expenses when they should be internal"))
	}
}
