// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// ErrNotFound is returned when a stored record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoStatements is returned when no input files match.
	ErrNoStatements = errors.New("no statement files found")

	// ErrNoTransactions is returned when the loaded statements yield nothing
	// to analyze.
	ErrNoTransactions = errors.New("no transactions to analyze")

	// ErrInvalidConfig wraps settings validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)
