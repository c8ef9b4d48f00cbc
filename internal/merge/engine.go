package merge

import (
	"fmt"
	"time"

	"github.com/authcheck/authcheck/internal/model"
)

// UseSeed selects the group's earliest-appearing variant as the
// canonical author, which is the default policy.
const UseSeed = -1

// Apply merges a duplicate group into the chosen canonical author.
// canonicalID must be a member of the group, or UseSeed to take the
// earliest-appearing variant. Every other member is marked as merged
// and its submissions are reassigned to the canonical author.
//
// Apply is idempotent: re-merging a group whose members already resolve
// to the canonical author is a no-op and records nothing. A member that
// resolves to some other identity makes the whole merge fail with
// ErrMergeConflict before any state changes.
func Apply(report *model.AnalysisReport, group *model.DuplicateGroup, canonicalID int, automatic bool) error {
	if group == nil || len(group.Members) < 2 {
		return ErrGroupTooSmall
	}
	if canonicalID == UseSeed {
		canonicalID = group.Seed()
	}

	canonical := report.Author(canonicalID)
	if canonical == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownAuthor, canonicalID)
	}
	if !memberOf(group, canonicalID) {
		return fmt.Errorf("%w: id %d", ErrNotGroupMember, canonicalID)
	}

	// Validate every member before mutating anything, so a conflict
	// cannot leave the mapping half-rewritten.
	if !canonical.IsCanonical() {
		return fmt.Errorf("%w: canonical id %d resolves to %d",
			ErrMergeConflict, canonicalID, report.Resolve(canonicalID))
	}
	for _, m := range group.Members {
		if m.AuthorID == canonicalID {
			continue
		}
		resolved := report.Resolve(m.AuthorID)
		if resolved != m.AuthorID && resolved != canonicalID {
			return fmt.Errorf("%w: member %d resolves to %d, not %d",
				ErrMergeConflict, m.AuthorID, resolved, canonicalID)
		}
	}

	merged := make([]int, 0, len(group.Members)-1)
	for _, m := range group.Members {
		if m.AuthorID == canonicalID {
			continue
		}
		variant := report.Author(m.AuthorID)
		if !variant.IsCanonical() {
			// Already folded in by a previous run of the same merge.
			continue
		}
		variant.MergedInto = canonicalID
		for _, paperID := range variant.PaperIDs {
			if !canonical.HasPaper(paperID) {
				canonical.PaperIDs = append(canonical.PaperIDs, paperID)
			}
		}
		merged = append(merged, m.AuthorID)
	}

	if len(merged) == 0 {
		return nil
	}

	report.RecordMerge(model.MergeRecord{
		GroupID:     group.ID,
		CanonicalID: canonicalID,
		MergedIDs:   merged,
		Automatic:   automatic,
		MergedAt:    time.Now(),
	})
	return nil
}

// AutoApply merges every group that qualifies for automatic merging,
// i.e. groups whose members all share one identical canonical email.
// Groups held together only by name or affiliation similarity are
// advisory and are skipped; they need explicit confirmation.
// Returns the number of groups merged.
func AutoApply(report *model.AnalysisReport, groups []*model.DuplicateGroup) (int, error) {
	applied := 0
	for _, group := range groups {
		if !group.AutoMergeable() {
			continue
		}
		if err := Apply(report, group, UseSeed, true); err != nil {
			return applied, fmt.Errorf("auto-merge group %d: %w", group.ID, err)
		}
		applied++
	}
	return applied, nil
}

// memberOf reports whether id is one of the group's members.
func memberOf(group *model.DuplicateGroup, id int) bool {
	for _, m := range group.Members {
		if m.AuthorID == id {
			return true
		}
	}
	return false
}
