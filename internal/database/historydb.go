package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/authcheck/authcheck/internal/model"
)

// DBFileName is the name of the SQLite database file inside the data directory.
const DBFileName = "authcheck.db"

// HistoryDB provides SQLite-based storage for analysis runs.
// It manages connection pooling and provides methods for saving and
// retrieving runs.
//
// Design decision: We store one database file for all sources rather
// than a file per input CSV. This keeps cross-source queries (list all
// analyzed sources, compare runs) in a single place and simplifies
// backup/restore.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY errors under concurrent batch runs.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path to the SQLite database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analysis runs store complete reports as JSON plus queryable metadata
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		submission_limit INTEGER NOT NULL,
		similarity_threshold INTEGER NOT NULL,
		submission_count INTEGER NOT NULL,
		identity_count INTEGER NOT NULL,
		violation_count INTEGER NOT NULL,
		report_json TEXT NOT NULL,
		violation_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON analysis_runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON analysis_runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun saves a complete analysis report as a new run.
// Returns the database ID of the stored run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.AnalysisReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	// Violation summary maps identities to submission counts so history
	// listings and diffs never need to load the full report.
	summary := make(map[string]int, len(report.Violations))
	for _, v := range report.Violations {
		summary[ViolationKey(v)] = v.SubmissionCount
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // simple map; Marshal won't fail

	identityCount := 0
	for _, a := range report.Authors {
		if a.IsCanonical() {
			identityCount++
		}
	}

	query := `
	INSERT INTO analysis_runs (source, submission_limit, similarity_threshold, submission_count, identity_count, violation_count, report_json, violation_summary)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.Source,
		report.SubmissionLimit,
		report.SimilarityThreshold,
		len(report.Submissions),
		identityCount,
		report.ViolationCount(),
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis run: %w", err)
	}

	return result.LastInsertId()
}

// GetRunByID retrieves a run's full report by its database ID.
// Returns nil without error when no run has the given ID.
func (hdb *HistoryDB) GetRunByID(ctx context.Context, id int64) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	return decodeReport(reportJSON)
}

// GetLatestRun retrieves the most recent run for a source.
// Returns nil without error when the source has no stored runs.
func (hdb *HistoryDB) GetLatestRun(ctx context.Context, source string) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, source).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	return decodeReport(reportJSON)
}

// GetLatestTwoRuns retrieves the two most recent runs for a source,
// newest first. Fewer than two runs is not an error; the caller decides
// whether a comparison is possible.
func (hdb *HistoryDB) GetLatestTwoRuns(ctx context.Context, source string) ([]*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 2
	`

	rows, err := hdb.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var reports []*model.AnalysisReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}

		report, err := decodeReport(reportJSON)
		if err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// ListSources returns all sources that have at least one stored run.
func (hdb *HistoryDB) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM analysis_runs
	ORDER BY source
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading full reports.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Source is the analyzed input the run came from.
	Source string

	// Timestamp is when the run was saved.
	Timestamp time.Time

	// SubmissionLimit is the limit the run was analyzed with.
	SubmissionLimit int

	// SimilarityThreshold is the threshold the run was analyzed with.
	SimilarityThreshold int

	// SubmissionCount is the number of submissions in the run.
	SubmissionCount int

	// IdentityCount is the number of distinct author identities.
	IdentityCount int

	// ViolationCount is the number of limit violations found.
	ViolationCount int

	// ViolationSummary maps identity keys to submission counts.
	ViolationSummary map[string]int
}

// GetRunHistory retrieves run metadata for a source, newest first.
// This is more efficient than loading full reports when only metadata
// is needed.
func (hdb *HistoryDB) GetRunHistory(ctx context.Context, source string) ([]RunMetadata, error) {
	query := `
	SELECT id, source, timestamp, submission_limit, similarity_threshold, submission_count, identity_count, violation_count, violation_summary
	FROM analysis_runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(
			&meta.ID,
			&meta.Source,
			&timestamp,
			&meta.SubmissionLimit,
			&meta.SimilarityThreshold,
			&meta.SubmissionCount,
			&meta.IdentityCount,
			&meta.ViolationCount,
			&summaryJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.ViolationSummary); err != nil {
				meta.ViolationSummary = make(map[string]int)
			}
		} else {
			meta.ViolationSummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// decodeReport parses a stored report JSON document and rebuilds the
// report's internal lookup indexes.
func decodeReport(reportJSON string) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	report.RebuildIndexes()
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
