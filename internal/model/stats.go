package model

// SubmissionRef is a lightweight reference to a submission, carrying
// enough detail for a reviewer to locate the paper.
type SubmissionRef struct {
	PaperID string `json:"paper_id"`
	Title   string `json:"title"`
}

// AuthorStats is the derived per-identity view: how many distinct
// submissions are currently attributed to one canonical author. Stats
// are recomputed on every analysis run, never stored as truth, so they
// always reflect the merge decisions applied so far.
type AuthorStats struct {
	// AuthorID is the canonical variant this entry aggregates.
	AuthorID int `json:"author_id"`

	// Name is the canonical variant's display name.
	Name string `json:"name"`

	// Email is the canonical variant's email, if any.
	Email string `json:"email,omitempty"`

	// Affiliation is the canonical variant's affiliation, if any.
	Affiliation string `json:"affiliation,omitempty"`

	// SubmissionCount is the number of distinct submissions attributed
	// to this identity. Always equals len(Submissions).
	SubmissionCount int `json:"submission_count"`

	// Submissions lists the attributed papers in load order.
	Submissions []SubmissionRef `json:"submissions"`

	// VariantCount is the number of raw variants collapsed into this
	// identity, including the canonical one. 1 means never merged.
	VariantCount int `json:"variant_count"`
}
