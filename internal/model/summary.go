package model

// Summary is the condensed, human-oriented view of one analysis run.
// Report writers render it directly; it carries no formatting opinions.
//
// Design decision: We derive a separate summary struct rather than have
// writers walk the full report because it gives every output format the
// same curated numbers, and it serializes cleanly for tools that want
// structured but small output.
type Summary struct {
	// Source identifies the dataset.
	Source string `json:"source"`

	// SubmissionCount is the number of loaded submissions.
	SubmissionCount int `json:"submission_count"`

	// VariantCount is the number of distinct raw author variants.
	VariantCount int `json:"variant_count"`

	// IdentityCount is the number of identities after merges.
	IdentityCount int `json:"identity_count"`

	// GroupCount is the number of duplicate-candidate groups from the
	// latest clustering run.
	GroupCount int `json:"group_count"`

	// AutoMergeableGroups is how many of those groups share one email.
	AutoMergeableGroups int `json:"auto_mergeable_groups"`

	// MergeCount is the number of merges applied so far.
	MergeCount int `json:"merge_count"`

	// ViolationCount is the number of identities over the limit.
	ViolationCount int `json:"violation_count"`

	// WarningCount is the number of non-fatal parse warnings.
	WarningCount int `json:"warning_count"`

	// SubmissionLimit and SimilarityThreshold echo the configuration
	// the run was evaluated against.
	SubmissionLimit     int `json:"submission_limit"`
	SimilarityThreshold int `json:"similarity_threshold"`

	// StatusCounts tallies submissions by review status name.
	StatusCounts map[string]int `json:"status_counts,omitempty"`

	// Violations carries the offending identities for display.
	Violations []AuthorStats `json:"violations,omitempty"`
}

// NewSummary derives a Summary from the current state of a report.
func NewSummary(report *AnalysisReport) *Summary {
	summary := &Summary{
		Source:              report.Source,
		SubmissionCount:     len(report.Submissions),
		VariantCount:        len(report.Authors),
		IdentityCount:       len(report.ActiveAuthors()),
		GroupCount:          len(report.Groups),
		MergeCount:          len(report.Merges),
		ViolationCount:      len(report.Violations),
		WarningCount:        len(report.Warnings),
		SubmissionLimit:     report.SubmissionLimit,
		SimilarityThreshold: report.SimilarityThreshold,
		StatusCounts:        make(map[string]int),
		Violations:          report.Violations,
	}

	for _, g := range report.Groups {
		if g.AutoMergeable() {
			summary.AutoMergeableGroups++
		}
	}
	for _, s := range report.Submissions {
		summary.StatusCounts[s.Status.String()]++
	}
	return summary
}
