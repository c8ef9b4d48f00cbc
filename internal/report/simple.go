package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/authcheck/authcheck/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal
// display. Plain ASCII formatting keeps the output pipeable and
// terminal-agnostic.
type SimpleWriter struct {
	baseWriter

	// verbose enables the parse warning and merge log sections.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with parse warnings and the
// merge log.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full analysis report in human-readable format.
func (w *SimpleWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, model.NewSummary(report))
	w.writeGroups(&sb, report)
	w.writeViolations(&sb, report.Violations, report.SubmissionLimit)
	if w.verbose {
		w.writeWarnings(&sb, report)
		w.writeMerges(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the condensed summary.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	w.writeSummary(&sb, summary)
	w.writeViolations(&sb, summary.Violations, summary.SubmissionLimit)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with dataset information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        AUTHCHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:        %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Analyzed:      %s\n", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Limit:         %d submissions per author\n", report.SubmissionLimit))
	sb.WriteString(fmt.Sprintf("Threshold:     %d\n", report.SimilarityThreshold))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:        Complete\n")
	}
	sb.WriteString("\n")
}

// writeSummary writes the dataset summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Submissions:      %d\n", summary.SubmissionCount))
	sb.WriteString(fmt.Sprintf("  Author variants:  %d\n", summary.VariantCount))
	sb.WriteString(fmt.Sprintf("  Identities:       %d\n", summary.IdentityCount))
	sb.WriteString(fmt.Sprintf("  Duplicate groups: %d (%d auto-mergeable)\n",
		summary.GroupCount, summary.AutoMergeableGroups))
	sb.WriteString(fmt.Sprintf("  Merges applied:   %d\n", summary.MergeCount))
	sb.WriteString(fmt.Sprintf("  Parse warnings:   %d\n", summary.WarningCount))
	sb.WriteString(fmt.Sprintf("  Violations:       %d\n", summary.ViolationCount))
	sb.WriteString("\n")

	if len(summary.StatusCounts) > 0 {
		statuses := make([]string, 0, len(summary.StatusCounts))
		for status := range summary.StatusCounts {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		sb.WriteString("  By status: ")
		parts := make([]string, 0, len(statuses))
		for _, status := range statuses {
			parts = append(parts, fmt.Sprintf("%s %d", status, summary.StatusCounts[status]))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n\n")
	}
}

// writeGroups writes the duplicate-candidate groups section.
func (w *SimpleWriter) writeGroups(sb *strings.Builder, report *model.AnalysisReport) {
	if len(report.Groups) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("POTENTIAL DUPLICATES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, group := range report.Groups {
		policy := "needs review"
		if group.AutoMergeable() {
			policy = "same email, auto-mergeable"
		}
		sb.WriteString(fmt.Sprintf("Group %d (%s):\n", group.ID, policy))
		for _, member := range group.Members {
			author := report.Author(member.AuthorID)
			email := author.Email
			if email == "" {
				email = "no email"
			}
			sb.WriteString(fmt.Sprintf("  - %-30s <%s>  score %3d  [%s]\n",
				author.DisplayName(), email, member.Score, member.Signal))
		}
		sb.WriteString("\n")
	}
}

// writeViolations writes the violations section.
func (w *SimpleWriter) writeViolations(sb *strings.Builder, violations []model.AuthorStats, limit int) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VIOLATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(violations) == 0 {
		sb.WriteString(fmt.Sprintf("  No author exceeds the limit of %d submissions.\n\n", limit))
		return
	}

	for _, v := range violations {
		sb.WriteString(fmt.Sprintf("  %s: %d submissions (limit %d)\n", v.Name, v.SubmissionCount, limit))
		for _, ref := range v.Submissions {
			sb.WriteString(fmt.Sprintf("     [%s] %s\n", ref.PaperID, ref.Title))
		}
		sb.WriteString("\n")
	}
}

// writeWarnings writes the parse warnings section.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.AnalysisReport) {
	if len(report.Warnings) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PARSE WARNINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, warning := range report.Warnings {
		sb.WriteString(fmt.Sprintf("  [%s] %q: %s\n", warning.PaperID, warning.RawEntry, warning.Reason))
	}
	sb.WriteString("\n")
}

// writeMerges writes the merge log section.
func (w *SimpleWriter) writeMerges(sb *strings.Builder, report *model.AnalysisReport) {
	if len(report.Merges) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MERGE LOG\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, rec := range report.Merges {
		mode := "confirmed"
		if rec.Automatic {
			mode = "automatic"
		}
		canonical := report.Author(rec.CanonicalID)
		sb.WriteString(fmt.Sprintf("  group %d -> %s (%s, %d variants folded)\n",
			rec.GroupID, canonical.DisplayName(), mode, len(rec.MergedIDs)))
	}
	sb.WriteString("\n")
}
