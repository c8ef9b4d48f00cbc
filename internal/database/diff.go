package database

import (
	"sort"
	"strings"

	"github.com/authcheck/authcheck/internal/model"
)

// ViolationKey returns a stable identity key for a violation entry.
// The canonical email is preferred because it survives name-variant
// churn between runs; entries without an email fall back to the
// lowercased name.
func ViolationKey(v model.AuthorStats) string {
	if v.Email != "" {
		return v.Email
	}
	return strings.ToLower(v.Name)
}

// ViolationChange describes how one identity's violation state moved
// between two runs.
type ViolationChange struct {
	// Key is the identity key the change applies to.
	Key string `json:"key"`

	// Name is the display name from the newer run when present,
	// otherwise from the older run.
	Name string `json:"name"`

	// OldCount is the submission count in the older run, zero when the
	// identity was not in violation there.
	OldCount int `json:"old_count"`

	// NewCount is the submission count in the newer run, zero when the
	// violation is resolved.
	NewCount int `json:"new_count"`
}

// RunDiff is the result of comparing two analysis runs of the same source.
type RunDiff struct {
	// Older is the earlier of the two compared runs. Not serialized;
	// JSON consumers get the change lists only.
	Older *model.AnalysisReport `json:"-"`

	// Newer is the later of the two compared runs.
	Newer *model.AnalysisReport `json:"-"`

	// New lists identities in violation in the newer run only.
	New []ViolationChange `json:"new,omitempty"`

	// Resolved lists identities in violation in the older run only.
	Resolved []ViolationChange `json:"resolved,omitempty"`

	// Changed lists identities in violation in both runs whose
	// submission counts differ.
	Changed []ViolationChange `json:"changed,omitempty"`

	// Unchanged lists identities in violation in both runs with the
	// same submission count.
	Unchanged []ViolationChange `json:"unchanged,omitempty"`
}

// CompareRuns diffs the violations of two runs. Identities are matched
// by ViolationKey, so a renamed author with a stable email is tracked
// across runs while a changed email counts as a new identity.
func CompareRuns(older, newer *model.AnalysisReport) *RunDiff {
	diff := &RunDiff{Older: older, Newer: newer}

	oldByKey := make(map[string]model.AuthorStats, len(older.Violations))
	for _, v := range older.Violations {
		oldByKey[ViolationKey(v)] = v
	}
	newByKey := make(map[string]model.AuthorStats, len(newer.Violations))
	for _, v := range newer.Violations {
		newByKey[ViolationKey(v)] = v
	}

	for key, nv := range newByKey {
		change := ViolationChange{Key: key, Name: nv.Name, NewCount: nv.SubmissionCount}
		if ov, ok := oldByKey[key]; ok {
			change.OldCount = ov.SubmissionCount
			if ov.SubmissionCount == nv.SubmissionCount {
				diff.Unchanged = append(diff.Unchanged, change)
			} else {
				diff.Changed = append(diff.Changed, change)
			}
			continue
		}
		diff.New = append(diff.New, change)
	}

	for key, ov := range oldByKey {
		if _, ok := newByKey[key]; ok {
			continue
		}
		diff.Resolved = append(diff.Resolved, ViolationChange{
			Key:      key,
			Name:     ov.Name,
			OldCount: ov.SubmissionCount,
		})
	}

	sortChanges(diff.New)
	sortChanges(diff.Resolved)
	sortChanges(diff.Changed)
	sortChanges(diff.Unchanged)

	return diff
}

// HasChanges reports whether any violation appeared, resolved, or
// changed count between the runs.
func (d *RunDiff) HasChanges() bool {
	return len(d.New) > 0 || len(d.Resolved) > 0 || len(d.Changed) > 0
}

func sortChanges(changes []ViolationChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key < changes[j].Key
	})
}
