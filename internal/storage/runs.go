package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nmansour/fabflow/internal/common"
	"github.com/nmansour/fabflow/internal/model"
)

// SaveRun records a completed analysis run, keeping the full result for
// auditing and for serving the latest summary without re-analyzing.
func (s *SQLiteStorage) SaveRun(ctx context.Context, result model.AnalysisResult) (int64, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (generated_at, transaction_count, skipped_records, result_json)
		VALUES (?, ?, ?, ?)
	`, result.GeneratedAt, result.TotalTransactions, result.SkippedRecords, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// GetLatestRun returns the most recent analysis result, or ErrNotFound when
// no run has been stored yet.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context) (*model.AnalysisResult, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT result_json FROM analysis_runs ORDER BY id DESC LIMIT 1
	`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored run: %w", err)
	}
	return &result, nil
}
