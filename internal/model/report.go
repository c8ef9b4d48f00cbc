package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicatePaperID is returned when a submission is added with a
// paper identifier that already exists in the report. Paper IDs must be
// unique within one load.
var ErrDuplicatePaperID = errors.New("duplicate paper id")

// ParseWarning records one author entry that could not be fully parsed.
// Warnings are non-fatal: the submission still loads, and the warning
// is surfaced so a human can review the raw text.
type ParseWarning struct {
	// PaperID is the submission the malformed entry belongs to.
	PaperID string `json:"paper_id"`

	// RawEntry is the author entry text that caused the warning.
	RawEntry string `json:"raw_entry"`

	// Reason explains what was wrong, e.g. "no usable name".
	Reason string `json:"reason"`
}

// MergeRecord documents one applied merge for auditability.
type MergeRecord struct {
	// GroupID is the duplicate group the merge was applied to.
	GroupID int `json:"group_id"`

	// CanonicalID is the variant chosen to represent the identity.
	CanonicalID int `json:"canonical_id"`

	// MergedIDs lists the non-canonical variants folded in.
	MergedIDs []int `json:"merged_ids"`

	// Automatic is true when the merge was applied by the same-email
	// policy rather than explicit confirmation.
	Automatic bool `json:"automatic,omitempty"`

	// MergedAt is when the merge was applied.
	MergedAt time.Time `json:"merged_at"`
}

// AnalysisReport is the session object for one dataset: the loaded
// submissions, every parsed author variant, and all derived structures
// (duplicate groups, stats, violations). All derived fields can be
// regenerated deterministically from Submissions plus the current
// variant merge mapping, so re-running analysis after a merge is always
// safe.
//
// Design decision: We use a single report struct passed through the
// pipeline rather than global package state. This keeps re-analysis
// explicit, lets tests hold multiple independent datasets, and mirrors
// how merge decisions must be followed by a fresh stats pass.
type AnalysisReport struct {
	// Source identifies the dataset, typically the input file path.
	Source string `json:"source"`

	// DateAnalyzed is when this analysis run started.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// SubmissionLimit is the configured per-author submission limit the
	// run was evaluated against.
	SubmissionLimit int `json:"submission_limit"`

	// SimilarityThreshold is the clustering threshold in [0,100] the
	// run was evaluated against.
	SimilarityThreshold int `json:"similarity_threshold"`

	// Submissions holds the loaded rows in load order. Read-only after
	// loading except for their AuthorIDs back-references.
	Submissions []*Submission `json:"submissions"`

	// Authors holds every distinct raw author variant, indexed by ID in
	// order of first appearance.
	Authors []*Author `json:"authors"`

	// Groups holds the duplicate-candidate groups from the most recent
	// clustering run. Recomputed from scratch each time.
	Groups []*DuplicateGroup `json:"duplicate_groups,omitempty"`

	// Stats holds per-identity statistics from the most recent stats
	// pass, ordered by descending count then name.
	Stats []AuthorStats `json:"author_stats,omitempty"`

	// Violations is the subset of Stats exceeding SubmissionLimit,
	// in the same order.
	Violations []AuthorStats `json:"violations,omitempty"`

	// Warnings lists the non-fatal parse warnings from loading.
	Warnings []ParseWarning `json:"parse_warnings,omitempty"`

	// Merges documents every merge applied to this dataset.
	Merges []MergeRecord `json:"merges,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error holds the failure that stopped this dataset's analysis,
	// if any. Only set when the load or a pipeline step failed.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error_message,omitempty"`

	// variantIndex maps a raw variant key to its Author ID.
	variantIndex map[string]int

	// paperIndex maps a paper ID to its index in Submissions.
	paperIndex map[string]int
}

// NewAnalysisReport creates an empty report for the given source.
func NewAnalysisReport(source string) *AnalysisReport {
	return &AnalysisReport{
		Source:       source,
		DateAnalyzed: time.Now(),
		variantIndex: make(map[string]int),
		paperIndex:   make(map[string]int),
	}
}

// AddSubmission appends a loaded submission to the report.
// Returns ErrDuplicatePaperID when the paper identifier is already
// present; the report is left unchanged in that case.
func (r *AnalysisReport) AddSubmission(sub *Submission) error {
	r.ensureIndexes()
	if _, exists := r.paperIndex[sub.PaperID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePaperID, sub.PaperID)
	}
	r.paperIndex[sub.PaperID] = len(r.Submissions)
	r.Submissions = append(r.Submissions, sub)
	return nil
}

// Submission returns the submission with the given paper ID, or nil.
func (r *AnalysisReport) Submission(paperID string) *Submission {
	r.ensureIndexes()
	idx, ok := r.paperIndex[paperID]
	if !ok {
		return nil
	}
	return r.Submissions[idx]
}

// InternAuthor registers a parsed author variant for the given paper
// and returns the stored record. Identical raw variants (same name,
// email, and affiliation) share one Author record across submissions;
// the paper is appended to its PaperIDs at most once, so a variant
// repeated as co-author on the same paper never double counts.
func (r *AnalysisReport) InternAuthor(variant Author, paperID string) *Author {
	r.ensureIndexes()
	key := variantKey(variant.Name, variant.Email, variant.Affiliation)
	if id, ok := r.variantIndex[key]; ok {
		existing := r.Authors[id]
		if !existing.HasPaper(paperID) {
			existing.PaperIDs = append(existing.PaperIDs, paperID)
		}
		return existing
	}

	stored := variant
	stored.ID = len(r.Authors)
	stored.MergedInto = CanonicalNone
	stored.PaperIDs = []string{paperID}
	r.variantIndex[key] = stored.ID
	r.Authors = append(r.Authors, &stored)
	return &stored
}

// Author returns the variant with the given ID, or nil when the ID is
// out of range.
func (r *AnalysisReport) Author(id int) *Author {
	if id < 0 || id >= len(r.Authors) {
		return nil
	}
	return r.Authors[id]
}

// Resolve follows the merge chain from the given variant ID to its
// current canonical identity. A variant that was never merged resolves
// to itself.
func (r *AnalysisReport) Resolve(id int) int {
	for {
		a := r.Author(id)
		if a == nil || a.MergedInto == CanonicalNone {
			return id
		}
		id = a.MergedInto
	}
}

// ActiveAuthors returns the variants that currently represent an
// identity (not merged into another), in first-appearance order.
func (r *AnalysisReport) ActiveAuthors() []*Author {
	active := make([]*Author, 0, len(r.Authors))
	for _, a := range r.Authors {
		if a.IsCanonical() {
			active = append(active, a)
		}
	}
	return active
}

// AddWarning records a non-fatal parse warning.
func (r *AnalysisReport) AddWarning(paperID, rawEntry, reason string) {
	r.Warnings = append(r.Warnings, ParseWarning{
		PaperID:  paperID,
		RawEntry: rawEntry,
		Reason:   reason,
	})
}

// RecordMerge documents an applied merge.
func (r *AnalysisReport) RecordMerge(rec MergeRecord) {
	r.Merges = append(r.Merges, rec)
}

// ViolationCount returns the number of identities currently exceeding
// the submission limit.
func (r *AnalysisReport) ViolationCount() int {
	return len(r.Violations)
}

// RebuildIndexes forces a rebuild of the internal lookup maps. Callers
// that deserialize a report from JSON must invoke this before adding
// submissions or interning variants.
func (r *AnalysisReport) RebuildIndexes() {
	r.variantIndex = nil
	r.paperIndex = nil
	r.ensureIndexes()
}

// ensureIndexes rebuilds the lookup maps when the report was created by
// deserialization rather than NewAnalysisReport.
func (r *AnalysisReport) ensureIndexes() {
	if r.variantIndex != nil && r.paperIndex != nil {
		return
	}
	r.variantIndex = make(map[string]int, len(r.Authors))
	r.paperIndex = make(map[string]int, len(r.Submissions))
	for _, a := range r.Authors {
		r.variantIndex[variantKey(a.Name, a.Email, a.Affiliation)] = a.ID
	}
	for i, s := range r.Submissions {
		r.paperIndex[s.PaperID] = i
	}
}

// variantKey builds the interning key for one exact raw variant.
// The separator cannot appear in parsed fields because the parser
// strips newlines from entries.
func variantKey(name, email, affiliation string) string {
	return name + "\n" + email + "\n" + affiliation
}
