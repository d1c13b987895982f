package storage

import (
	"context"
	"fmt"

	"github.com/nmansour/fabflow/internal/model"
)

// TransactionFilter narrows GetTransactions results. Zero values mean no
// filtering on that field.
type TransactionFilter struct {
	Month    string // "YYYY-MM"
	Category string
}

// SaveTransactions upserts processed transactions keyed by content hash, so
// re-analyzing the same statements is idempotent.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO transactions (
			hash, date, description, merchant, category,
			type, account, source_file, raw_source_line, amount, paired_internal
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.Hash(),
			txn.Date,
			txn.Description,
			txn.Merchant,
			txn.Category,
			string(txn.Type),
			txn.Account,
			txn.SourceFile,
			txn.RawSourceLine,
			txn.Amount,
			txn.PairedInternal,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %q: %w", txn.Description, err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns stored transactions in ascending date order,
// optionally filtered by month and category.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT date, description, merchant, category, type,
		       account, source_file, raw_source_line, amount, paired_internal
		FROM transactions
		WHERE 1=1
	`
	var args []any

	if filter.Month != "" {
		query += ` AND strftime('%Y-%m', date) = ?`
		args = append(args, filter.Month)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}

	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var typ string
		if err := rows.Scan(
			&txn.Date,
			&txn.Description,
			&txn.Merchant,
			&txn.Category,
			&typ,
			&txn.Account,
			&txn.SourceFile,
			&txn.RawSourceLine,
			&txn.Amount,
			&txn.PairedInternal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(typ)
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
