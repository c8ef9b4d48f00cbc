package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinels let callers use errors.Is() while keeping
// the messages human-readable.
var (
	// ErrNoInput is returned when no input file is specified.
	ErrNoInput = errors.New("no input specified: provide at least one CSV file")

	// ErrInvalidLimit is returned when the submission limit is below 1.
	// A limit of zero would flag every author.
	ErrInvalidLimit = errors.New("invalid submission limit: must be at least 1")

	// ErrInvalidThreshold is returned when the similarity threshold is
	// outside [0,100].
	ErrInvalidThreshold = errors.New("invalid similarity threshold: must be in [0,100]")

	// ErrInvalidCeiling is returned when the email mismatch ceiling is
	// outside [0,100].
	ErrInvalidCeiling = errors.New("invalid email mismatch ceiling: must be in [0,100]")

	// ErrCeilingAboveThreshold is returned when the email mismatch
	// ceiling reaches the similarity threshold. The ceiling exists to
	// keep differing-email pairs out of clusters; at or above the
	// threshold it would do the opposite.
	ErrCeilingAboveThreshold = errors.New("email mismatch ceiling must be below the similarity threshold")

	// ErrInvalidConcurrency is returned when concurrency is below 1.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be at least 1")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
