// Package ingest loads raw transaction records from upstream sources: the
// external statement parser's JSON exports and OFX/QFX bank exports.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nmansour/fabflow/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Record is one raw income or expense entry as produced by the external
// statement-parsing collaborator. Amounts may arrive negative on the expense
// stream; the sign is dropped because direction is carried by the stream.
type Record struct {
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	OriginalText []string  `json:"originalText"`
	Amount       float64   `json:"amount"`
}

// Statement is one parsed statement: a pair of pre-classified record streams.
type Statement struct {
	Name     string   `json:"name"`
	Incomes  []Record `json:"incomes"`
	Expenses []Record `json:"expenses"`
}

// Transactions converts the statement's streams into model transactions.
// Direction comes from the stream, not from any field on the record.
func (s Statement) Transactions(sourceFile string) []model.Transaction {
	txns := make([]model.Transaction, 0, len(s.Incomes)+len(s.Expenses))
	for _, rec := range s.Incomes {
		txns = append(txns, rec.toTransaction(model.Credit, s.Name, sourceFile))
	}
	for _, rec := range s.Expenses {
		txns = append(txns, rec.toTransaction(model.Debit, s.Name, sourceFile))
	}
	return txns
}

func (r Record) toTransaction(typ model.TransactionType, account, sourceFile string) model.Transaction {
	raw := ""
	if len(r.OriginalText) > 0 {
		raw = r.OriginalText[0]
	}
	return model.Transaction{
		Date:          r.Date,
		Amount:        math.Abs(r.Amount),
		Description:   r.Description,
		Type:          typ,
		Account:       account,
		SourceFile:    sourceFile,
		RawSourceLine: raw,
	}
}

// LoadStatementFile reads one statement JSON export.
func LoadStatementFile(path string) (Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read statement file: %w", err)
	}

	var stmt Statement
	if err := json.Unmarshal(data, &stmt); err != nil {
		return Statement{}, fmt.Errorf("failed to decode statement %s: %w", filepath.Base(path), err)
	}
	return stmt, nil
}

// LoadStatementFiles reads a batch of statement exports and flattens them
// into a single transaction list. A file that fails to load is reported in
// the returned error list but does not stop the batch. Progress is shown on
// stderr when showProgress is set.
func LoadStatementFiles(paths []string, showProgress bool) ([]model.Transaction, []error) {
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(paths)), "loading statements")
	}

	var txns []model.Transaction
	var errs []error
	for _, path := range paths {
		stmt, err := LoadStatementFile(path)
		if err != nil {
			errs = append(errs, err)
		} else {
			txns = append(txns, stmt.Transactions(filepath.Base(path))...)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return txns, errs
}
