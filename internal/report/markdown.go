package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/authcheck/authcheck/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown for
// sharing with a program committee. The nao1215/markdown library gives
// type-safe tables, alerts, and mermaid charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full analysis report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := model.NewSummary(report)

	w.writeHeader(md, report)
	w.writeSummary(md, summary)
	w.writeAlert(md, summary)
	w.writeViolations(md, summary)
	w.writeGroups(md, report)
	w.writeWarnings(md, report)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the condensed summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("AuthCheck Summary")
	md.PlainText("")
	w.writeSummary(md, summary)
	w.writeAlert(md, summary)
	w.writeViolations(md, summary)
	return len(md.String()), md.Build()
}

// writeHeader writes the report header with dataset information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("AuthCheck Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Analyzed", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
			{"Submission limit", strconv.Itoa(report.SubmissionLimit)},
			{"Similarity threshold", strconv.Itoa(report.SimilarityThreshold)},
		},
	})
	md.PlainText("")
}

// writeSummary writes the dataset summary table and status pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Submissions", strconv.Itoa(summary.SubmissionCount)},
			{"Author variants", strconv.Itoa(summary.VariantCount)},
			{"Identities after merges", strconv.Itoa(summary.IdentityCount)},
			{"Duplicate groups", strconv.Itoa(summary.GroupCount)},
			{"Auto-mergeable groups", strconv.Itoa(summary.AutoMergeableGroups)},
			{"Merges applied", strconv.Itoa(summary.MergeCount)},
			{"Parse warnings", strconv.Itoa(summary.WarningCount)},
			{"**Violations**", "**" + strconv.Itoa(summary.ViolationCount) + "**"},
		},
	})
	md.PlainText("")

	if len(summary.StatusCounts) > 0 {
		w.writeStatusChart(md, summary)
	}
}

// writeStatusChart writes a mermaid pie chart of submission statuses.
func (w *MarkdownWriter) writeStatusChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Submissions by Status"),
		piechart.WithShowData(true),
	)

	statuses := make([]string, 0, len(summary.StatusCounts))
	for status := range summary.StatusCounts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		chart.LabelAndIntValue(status, uint64(summary.StatusCounts[status]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the violation state.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.ViolationCount > 0:
		md.Cautionf(
			"%d author(s) exceed the limit of %d submissions after deduplication.",
			summary.ViolationCount, summary.SubmissionLimit,
		)
	case summary.GroupCount > summary.AutoMergeableGroups:
		md.Important("Some duplicate groups need manual review before counts are final.")
	default:
		md.Tip("No author exceeds the submission limit.")
	}
	md.PlainText("")
}

// writeViolations writes the violations table with per-paper detail.
func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Violations")
	md.PlainText("")

	if len(summary.Violations) == 0 {
		md.PlainText("No violations.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Violations))
	for i, v := range summary.Violations {
		email := v.Email
		if email == "" {
			email = "-"
		}
		rows[i] = []string{
			v.Name,
			email,
			strconv.Itoa(v.SubmissionCount),
			strconv.Itoa(v.VariantCount),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Author", "Email", "Submissions", "Variants"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, v := range summary.Violations {
		md.PlainTextf("**%s** (%d submissions):", v.Name, v.SubmissionCount)
		md.PlainText("")
		papers := make([]string, 0, len(v.Submissions))
		for _, ref := range v.Submissions {
			papers = append(papers, "["+ref.PaperID+"] "+ref.Title)
		}
		md.BulletList(papers...)
		md.PlainText("")
	}
}

// writeGroups writes the duplicate group tables.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Potential Duplicates")
	md.PlainText("")

	if len(report.Groups) == 0 {
		md.PlainText("No duplicate candidates found.")
		md.PlainText("")
		return
	}

	for _, group := range report.Groups {
		policy := "needs review"
		if group.AutoMergeable() {
			policy = "same email"
		}
		md.PlainTextf("### Group %d (%s)", group.ID, policy)
		md.PlainText("")

		rows := make([][]string, len(group.Members))
		for i, member := range group.Members {
			author := report.Author(member.AuthorID)
			email := author.Email
			if email == "" {
				email = "-"
			}
			affiliation := author.Affiliation
			if affiliation == "" {
				affiliation = "-"
			}
			rows[i] = []string{
				author.DisplayName(),
				email,
				affiliation,
				strconv.Itoa(member.Score),
				member.Signal,
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Name", "Email", "Affiliation", "Score", "Signal"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeWarnings writes the parse warnings table.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.AnalysisReport) {
	if len(report.Warnings) == 0 {
		return
	}

	md.H2("Parse Warnings")
	md.PlainText("")

	rows := make([][]string, len(report.Warnings))
	for i, warning := range report.Warnings {
		rows[i] = []string{warning.PaperID, "`" + warning.RawEntry + "`", warning.Reason}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Paper", "Entry", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}
