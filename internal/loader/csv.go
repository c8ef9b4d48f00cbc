package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/authcheck/authcheck/internal/config"
	"github.com/authcheck/authcheck/internal/model"
)

// Load failures.
var (
	// ErrEmptyFile is returned when the file has no header row.
	ErrEmptyFile = errors.New("input file is empty")

	// ErrMissingColumn is returned when a required column header is
	// absent. Paper ID, title, and author columns are required; date
	// and status are optional.
	ErrMissingColumn = errors.New("required column not found")

	// ErrMissingPaperID is returned when a data row has an empty paper
	// identifier. IDs must be present and unique within one load.
	ErrMissingPaperID = errors.New("row has empty paper id")
)

// Options maps the input file's column headers. Header matching is
// case-insensitive and ignores surrounding whitespace.
type Options struct {
	IDColumn     string
	TitleColumn  string
	AuthorColumn string
	DateColumn   string
	StatusColumn string
}

// DefaultOptions returns column mappings matching the sample dataset.
func DefaultOptions() Options {
	return Options{
		IDColumn:     config.DefaultIDColumn,
		TitleColumn:  config.DefaultTitleColumn,
		AuthorColumn: config.DefaultAuthorColumn,
		DateColumn:   config.DefaultDateColumn,
		StatusColumn: config.DefaultStatusColumn,
	}
}

// dateFormats are tried in order when parsing submission dates.
// An unparseable date is not fatal; the submission keeps a zero
// timestamp, because limits are counted per identity, not per date.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Load reads a CSV file into a fresh AnalysisReport with its
// submissions populated. The report's Source is the file path. Any
// structural problem (unreadable file, missing required column,
// duplicate or empty paper ID) fails the whole load and returns an
// error without partial state.
func Load(path string, opts Options) (*model.AnalysisReport, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	report, err := Read(f, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return report, nil
}

// Read parses CSV rows from r into a fresh AnalysisReport labeled with
// the given source name. Split from Load so tests and other inputs can
// feed readers directly.
func Read(r io.Reader, source string, opts Options) (*model.AnalysisReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated; missing cells read as empty

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := resolveColumns(header, opts)
	if err != nil {
		return nil, err
	}

	report := model.NewAnalysisReport(source)
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++

		sub, err := buildSubmission(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := report.AddSubmission(sub); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}
	return report, nil
}

// columns holds resolved column indexes. -1 means the column is absent.
type columns struct {
	id, title, author, date, status int
}

// resolveColumns maps configured header names to indexes.
func resolveColumns(header []string, opts Options) (columns, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i
			}
		}
		return -1
	}

	cols := columns{
		id:     find(opts.IDColumn),
		title:  find(opts.TitleColumn),
		author: find(opts.AuthorColumn),
		date:   find(opts.DateColumn),
		status: find(opts.StatusColumn),
	}

	for _, required := range []struct {
		name string
		idx  int
	}{
		{opts.IDColumn, cols.id},
		{opts.TitleColumn, cols.title},
		{opts.AuthorColumn, cols.author},
	} {
		if required.idx < 0 {
			return columns{}, fmt.Errorf("%w: %q", ErrMissingColumn, required.name)
		}
	}
	return cols, nil
}

// buildSubmission converts one CSV record into a Submission.
func buildSubmission(record []string, cols columns) (*model.Submission, error) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	paperID := cell(cols.id)
	if paperID == "" {
		return nil, ErrMissingPaperID
	}

	sub := &model.Submission{
		PaperID:    paperID,
		Title:      cell(cols.title),
		RawAuthors: cell(cols.author),
		Status:     model.ParseStatus(cell(cols.status)),
	}

	if raw := cell(cols.date); raw != "" {
		for _, format := range dateFormats {
			if t, err := time.Parse(format, raw); err == nil {
				sub.SubmittedAt = t
				break
			}
		}
	}
	return sub, nil
}
