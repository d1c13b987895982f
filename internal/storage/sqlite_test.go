package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nmansour/fabflow/internal/common"
	"github.com/nmansour/fabflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{
			Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Amount:      152.75,
			Type:        model.Debit,
			Description: "POS Settlement CARREFOUR",
			Merchant:    "CARREFOUR",
			Category:    "Groceries",
			Account:     "FAB Current Account",
			SourceFile:  "jan.json",
		},
		{
			Date:           time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			Amount:         500,
			Type:           model.Debit,
			Description:    "Outward Cheque Returned 004512",
			Merchant:       "Returned Cheque -",
			Category:       "Banking",
			PairedInternal: true,
		},
	}
}

func TestSQLiteStorage_SaveAndGetTransactions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTransactions(ctx, sampleTransactions()))

	got, err := s.GetTransactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "POS Settlement CARREFOUR", got[0].Description)
	assert.Equal(t, model.Debit, got[0].Type)
	assert.InDelta(t, 152.75, got[0].Amount, 0.001)
	assert.True(t, got[1].PairedInternal)
}

func TestSQLiteStorage_SaveIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTransactions(ctx, sampleTransactions()))
	require.NoError(t, s.SaveTransactions(ctx, sampleTransactions()))

	count, err := s.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "re-saving the same batch must not duplicate rows")
}

func TestSQLiteStorage_GetTransactionsFilters(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.SaveTransactions(ctx, sampleTransactions()))

	jan, err := s.GetTransactions(ctx, TransactionFilter{Month: "2024-01"})
	require.NoError(t, err)
	require.Len(t, jan, 1)
	assert.Equal(t, "Groceries", jan[0].Category)

	banking, err := s.GetTransactions(ctx, TransactionFilter{Category: "Banking"})
	require.NoError(t, err)
	require.Len(t, banking, 1)

	none, err := s.GetTransactions(ctx, TransactionFilter{Month: "2024-01", Category: "Banking"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStorage_Runs(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetLatestRun(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	result := model.AnalysisResult{
		GeneratedAt:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalTransactions: 2,
		Transactions:      sampleTransactions(),
		Summary:           model.NewSummary(),
		Filtered:          model.FlowTotals{Credits: 100, Debits: 50},
	}

	id, err := s.SaveRun(ctx, result)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetLatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalTransactions)
	assert.InDelta(t, 100, got.Filtered.Credits, 0.001)
}
