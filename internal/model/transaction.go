// Package model defines the core domain types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	// Credit represents money flowing into the account.
	Credit TransactionType = "Credit"
	// Debit represents money flowing out of the account.
	Debit TransactionType = "Debit"
)

// Transaction represents a single statement transaction. Amount is always a
// non-negative magnitude; the economic sign is carried by Type.
type Transaction struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Merchant       string          `json:"merchant"`
	Category       string          `json:"category"`
	Type           TransactionType `json:"type"`
	Account        string          `json:"account"`
	SourceFile     string          `json:"statementFile"`
	RawSourceLine  string          `json:"originalText"`
	Amount         float64         `json:"amount"`
	PairedInternal bool            `json:"-"`
}

// SignedAmount returns the economic effect of the transaction: positive for
// credits, negative for debits.
func (t Transaction) SignedAmount() float64 {
	if t.Type == Credit {
		return t.Amount
	}
	return -t.Amount
}

// Month returns the calendar month of the transaction as "YYYY-MM".
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// Hash creates a stable identifier for duplicate detection and storage.
func (t Transaction) Hash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Type,
		t.Description,
		t.Account)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}

// Validate checks the fields every transaction must carry. A record failing
// validation is skipped by the pipeline; it never aborts the batch.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if t.Description == "" {
		return fmt.Errorf("transaction has no description")
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction amount is negative: %.2f", t.Amount)
	}
	if t.Type != Credit && t.Type != Debit {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	return nil
}
