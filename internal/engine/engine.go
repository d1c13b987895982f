// Package engine orchestrates the analysis pipeline: normalization,
// categorization, pair detection, internal-operation classification, balance
// ledger reconstruction and reconciliation.
package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/nmansour/fabflow/internal/categorize"
	"github.com/nmansour/fabflow/internal/classify"
	"github.com/nmansour/fabflow/internal/ledger"
	"github.com/nmansour/fabflow/internal/model"
	"github.com/nmansour/fabflow/internal/normalize"
	"github.com/nmansour/fabflow/internal/reconcile"
)

// Config carries the tunable thresholds. The zero value is not usable;
// call DefaultConfig and override what you need.
type Config struct {
	SmallCreditMax          float64
	PairAmountTolerance     float64
	PairTimeWindow          time.Duration
	ReconciliationTolerance float64
	AutoAdjustFloor         float64
	AutoAdjust              bool
}

// DefaultConfig returns the shipped thresholds with auto-adjust enabled.
func DefaultConfig() Config {
	return Config{
		SmallCreditMax:          classify.DefaultSmallCreditMax,
		PairAmountTolerance:     classify.DefaultPairAmountTolerance,
		PairTimeWindow:          classify.DefaultPairTimeWindow,
		ReconciliationTolerance: reconcile.DefaultTolerance,
		AutoAdjustFloor:         reconcile.DefaultAutoAdjustFloor,
		AutoAdjust:              true,
	}
}

// Engine runs the analysis pipeline. It is a single-threaded batch processor:
// each stage consumes the previous stage's complete output, so there is no
// shared mutable state to guard.
type Engine struct {
	normalizer  *normalize.Normalizer
	categorizer *categorize.Categorizer
	classifier  *classify.Classifier
	pairs       *classify.PairDetector
	reconciler  *reconcile.Reconciler
	autoAdjust  bool
}

// New creates an engine from explicit collaborators, letting tests inject
// fixture rule tables.
func New(n *normalize.Normalizer, c *categorize.Categorizer, cl *classify.Classifier, p *classify.PairDetector, r *reconcile.Reconciler, autoAdjust bool) *Engine {
	return &Engine{
		normalizer:  n,
		categorizer: c,
		classifier:  cl,
		pairs:       p,
		reconciler:  r,
		autoAdjust:  autoAdjust,
	}
}

// NewWithConfig creates an engine with the shipped rule tables and the given
// thresholds.
func NewWithConfig(cfg Config) *Engine {
	rules := classify.DefaultRules()
	rules.SmallCreditMax = cfg.SmallCreditMax

	return New(
		normalize.NewDefault(),
		categorize.NewDefault(),
		classify.NewClassifier(rules),
		classify.NewPairDetector(cfg.PairAmountTolerance, cfg.PairTimeWindow),
		reconcile.New(cfg.ReconciliationTolerance, cfg.AutoAdjustFloor),
		cfg.AutoAdjust,
	)
}

// Analyze runs the full pipeline over a batch of transactions and returns
// the aggregate handed to presentation consumers. Malformed records are
// skipped with a warning; the batch always produces a best-effort result.
func (e *Engine) Analyze(txns []model.Transaction) model.AnalysisResult {
	valid := make([]model.Transaction, 0, len(txns))
	skipped := 0
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			skipped++
			slog.Warn("skipping malformed transaction",
				"error", err,
				"source_file", t.SourceFile,
				"description", t.Description)
			continue
		}
		t.Merchant = e.normalizer.Normalize(t.Description)
		t.Category = e.categorizer.Categorize(t.Description)
		valid = append(valid, t)
	}

	// The ledger walk requires ascending date order; sorting here keeps the
	// individual components free of that concern. Stable sort preserves
	// statement order for same-day transactions, which is the ledger's
	// tie-break.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Date.Before(valid[j].Date)
	})

	// Pair detection must fully complete before classification: the paired
	// flag short-circuits the classifier.
	valid = e.pairs.Detect(valid)

	summary := model.NewSummary()
	var totals, filtered model.FlowTotals
	for _, t := range valid {
		summary.Add(t)
		totals.Add(t)
		if !e.classifier.IsInternal(t) {
			filtered.Add(t)
		}
	}

	ledgerInfo := ledger.Reconstruct(valid)

	recon := e.reconciler.Reconcile(ledgerInfo.NetChange(), filtered)
	if e.autoAdjust && recon.Available() && !recon.WithinTolerance {
		slog.Info("reconciliation discrepancy exceeds tolerance, auto-adjusting",
			"discrepancy", *recon.Discrepancy)
		recon, filtered = e.reconciler.AutoAdjust(valid, e.classifier.IsInternal, recon)
	}
	if recon.Available() && !recon.WithinTolerance {
		slog.Warn("reconciliation discrepancy outside tolerance; some transactions are likely misclassified",
			"calculated_net_flow", recon.CalculatedNetFlow,
			"actual_net_change", *recon.ActualNetChange)
	}

	return model.AnalysisResult{
		GeneratedAt:       time.Now().UTC(),
		Transactions:      valid,
		TotalTransactions: len(valid),
		SkippedRecords:    skipped,
		Summary:           summary,
		Totals:            totals,
		Filtered:          filtered,
		Ledger:            ledgerInfo,
		Reconciliation:    recon,
		BalanceInfo:       buildBalanceInfo(ledgerInfo, filtered),
	}
}

// buildBalanceInfo flattens the ledger and filtered flows into the output
// contract's balance section.
func buildBalanceInfo(info model.LedgerInfo, filtered model.FlowTotals) model.BalanceInfo {
	netChange := info.NetChange()
	netFlow := filtered.Net()

	balance := model.BalanceInfo{
		OpeningBalance:     info.Overall.OpeningBalance,
		ClosingBalance:     info.Overall.ClosingBalance,
		OpeningDate:        info.Overall.OpeningDate,
		ClosingDate:        info.Overall.ClosingDate,
		NetChange:          netChange,
		ReconciledNetFlow:  netChange,
		MonthlyBalances:    info.MonthlyBalances,
		ActualMoneyInFlow:  filtered.Credits,
		ActualMoneyOutFlow: filtered.Debits,
		NetMoneyFlow:       netFlow,
	}

	if netChange != nil {
		adjustment := *netChange - netFlow
		balance.ReconciliationAdjustment = &adjustment
	}

	return balance
}
