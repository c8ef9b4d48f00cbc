package model

import "time"

// Submission is one paper submission row from the input collaborator.
// It is immutable once loaded except for AuthorIDs, which the parse
// step fills in with references into AnalysisReport.Authors.
type Submission struct {
	// PaperID is the unique paper identifier within one load.
	PaperID string `json:"paper_id"`

	// Title is the paper title.
	Title string `json:"title"`

	// RawAuthors is the free-text author field exactly as loaded.
	// It is the source of truth the parser works from and is kept for
	// review and report output.
	RawAuthors string `json:"raw_authors"`

	// SubmittedAt is the submission timestamp. Zero when the input row
	// carried no parseable date.
	SubmittedAt time.Time `json:"submitted_at,omitempty"`

	// Status is the review state of the submission.
	Status Status `json:"status"`

	// AuthorIDs references the parsed author variants of this
	// submission, in entry order. The first entry is the lead author.
	// Filled by the parse step; empty until then.
	AuthorIDs []int `json:"author_ids,omitempty"`
}

// LeadAuthorID returns the ID of the lead (first) author variant,
// or -1 when no author entry survived parsing.
func (s *Submission) LeadAuthorID() int {
	if len(s.AuthorIDs) == 0 {
		return -1
	}
	return s.AuthorIDs[0]
}
