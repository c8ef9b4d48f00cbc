package report

import (
	"io"

	"github.com/authcheck/authcheck/internal/model"
)

// Writer defines the interface for analysis report output.
// Implementations render results in various formats to files, stdout,
// or anything else accepting bytes.
type Writer interface {
	// Write outputs the full analysis report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AnalysisReport) (int, error)

	// WriteSummary outputs only the condensed summary.
	WriteSummary(summary *model.Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, useful for
// outputting to both terminal and file. It is a separate type rather
// than io.MultiWriter because this Writer interface carries reports,
// not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers. Returns the
// total bytes written; stops on the first error.
func (m *MultiWriter) Write(report *model.AnalysisReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
