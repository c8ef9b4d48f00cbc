package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. Limits and thresholds follow the
// reference policy for a single-venue submission pool.
const (
	// DefaultSubmissionLimit is the maximum number of submissions one
	// author may have before being reported as a violation. Most
	// venues cap authors at two concurrent submissions.
	DefaultSubmissionLimit = 2

	// DefaultSimilarityThreshold is the pairwise score in [0,100] at
	// or above which two author variants are clustered as duplicate
	// candidates. 85 keeps obvious reformattings together while
	// leaving genuinely different people apart.
	DefaultSimilarityThreshold = 85

	// DefaultEmailMismatchCeiling caps the combined score when both
	// variants carry differing emails. It sits well below the
	// threshold because two verified, different addresses argue
	// against a shared identity no matter how similar the names are.
	DefaultEmailMismatchCeiling = 60

	// DefaultConcurrency is the number of input files analyzed in
	// parallel. Each file is an independent dataset, so parallelism
	// never touches shared state.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "authcheck"
)

// Default input column headers, matching the sample dataset and the
// common export format of submission systems.
const (
	DefaultIDColumn     = "Paper ID"
	DefaultTitleColumn  = "Title"
	DefaultAuthorColumn = "Authors"
	DefaultDateColumn   = "Submission Date"
	DefaultStatusColumn = "Status"
)

// Config holds all options for an analysis run. It is populated from
// CLI flags plus the optional config file and passed through the
// application by dependency injection rather than global state.
type Config struct {
	// SubmissionLimit is the per-author submission cap. An identity
	// with strictly more submissions is a violation.
	SubmissionLimit int

	// SimilarityThreshold is the clustering threshold in [0,100].
	SimilarityThreshold int

	// EmailMismatchCeiling caps scores between variants with differing
	// emails. Must stay below SimilarityThreshold so an email mismatch
	// can never cluster on its own.
	EmailMismatchCeiling int

	// LeadOnly counts only the lead author of each submission toward
	// the limit. Off by default; co-authorship counts.
	LeadOnly bool

	// AutoMerge applies the same-email merge policy after clustering.
	// Groups without a shared email are never merged automatically.
	AutoMerge bool

	// Inputs is the list of CSV files to analyze. At least one is
	// required.
	Inputs []string

	// Column headers of the input files.
	IDColumn     string
	TitleColumn  string
	AuthorColumn string
	DateColumn   string
	StatusColumn string

	// Concurrency is the number of input files processed in parallel.
	Concurrency int

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport selects JSON output instead of the human-readable
	// report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output instead of the
	// human-readable report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// ConfigFilePath is an explicit path to the .authcheck file. When
	// empty, the current directory and then the home directory are
	// searched.
	ConfigFilePath string

	// File holds values loaded from the config file, most importantly
	// the affiliation alias table. Nil when no file was found.
	File *File

	// DBDir is the directory of the SQLite history database. Analysis
	// runs are saved there for later comparison.
	DBDir string

	// SaveToDB persists each analysis run to the history database.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		SubmissionLimit:      DefaultSubmissionLimit,
		SimilarityThreshold:  DefaultSimilarityThreshold,
		EmailMismatchCeiling: DefaultEmailMismatchCeiling,
		Concurrency:          DefaultConcurrency,
		IDColumn:             DefaultIDColumn,
		TitleColumn:          DefaultTitleColumn,
		AuthorColumn:         DefaultAuthorColumn,
		DateColumn:           DefaultDateColumn,
		StatusColumn:         DefaultStatusColumn,
		DBDir:                XDGDataDir(),
		SaveToDB:             true,
	}
}

// XDGDataDir returns the XDG data directory for authcheck, following
// the XDG Base Directory Specification.
// On Linux: ~/.local/share/authcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for authcheck.
// On Linux: ~/.config/authcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Aliases returns the affiliation alias overrides from the config
// file, or nil when no file was loaded.
func (c *Config) Aliases() map[string]string {
	if c.File == nil {
		return nil
	}
	return c.File.Aliases
}

// Validate checks the configuration and returns a specific error
// describing the first problem found. It is called once after flag
// parsing, before any loading begins, so invalid setups fail fast.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if c.SubmissionLimit < 1 {
		return ErrInvalidLimit
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return ErrInvalidThreshold
	}
	if c.EmailMismatchCeiling < 0 || c.EmailMismatchCeiling > 100 {
		return ErrInvalidCeiling
	}
	if c.EmailMismatchCeiling >= c.SimilarityThreshold {
		return ErrCeilingAboveThreshold
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
