package stats

import (
	"sort"
	"strings"

	"github.com/authcheck/authcheck/internal/model"
)

// Options controls how submissions are attributed to identities.
type Options struct {
	// LeadOnly counts only the lead (first) author of each submission.
	// The default attributes a submission to every co-author. The
	// distinction is explicit policy, never inferred from the data.
	LeadOnly bool
}

// Compute derives AuthorStats for every canonical identity that owns at
// least one submission, under the current merge mapping. A submission
// counts at most once per identity even when one of the identity's raw
// variants appears several times as co-author on the same paper.
// Entries are ordered by descending submission count, then name, then
// ID, so repeated runs over the same state produce identical output.
func Compute(report *model.AnalysisReport, opts Options) []model.AuthorStats {
	type accumulator struct {
		refs     []model.SubmissionRef
		variants int
	}
	acc := make(map[int]*accumulator)

	variantCounts := make(map[int]int)
	for _, a := range report.Authors {
		variantCounts[report.Resolve(a.ID)]++
	}

	for _, sub := range report.Submissions {
		ids := sub.AuthorIDs
		if opts.LeadOnly {
			if len(ids) == 0 {
				continue
			}
			ids = ids[:1]
		}

		seen := make(map[int]bool, len(ids))
		for _, variantID := range ids {
			canonicalID := report.Resolve(variantID)
			if seen[canonicalID] {
				continue
			}
			seen[canonicalID] = true

			entry := acc[canonicalID]
			if entry == nil {
				entry = &accumulator{variants: variantCounts[canonicalID]}
				acc[canonicalID] = entry
			}
			entry.refs = append(entry.refs, model.SubmissionRef{
				PaperID: sub.PaperID,
				Title:   sub.Title,
			})
		}
	}

	result := make([]model.AuthorStats, 0, len(acc))
	for canonicalID, entry := range acc {
		author := report.Author(canonicalID)
		result = append(result, model.AuthorStats{
			AuthorID:        canonicalID,
			Name:            author.DisplayName(),
			Email:           author.Email,
			Affiliation:     author.Affiliation,
			SubmissionCount: len(entry.refs),
			Submissions:     entry.refs,
			VariantCount:    entry.variants,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SubmissionCount != result[j].SubmissionCount {
			return result[i].SubmissionCount > result[j].SubmissionCount
		}
		ni, nj := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if ni != nj {
			return ni < nj
		}
		return result[i].AuthorID < result[j].AuthorID
	})
	return result
}

// Violations returns the subset of stats whose submission count exceeds
// the limit, preserving the input order. An identity at exactly the
// limit is compliant.
func Violations(entries []model.AuthorStats, limit int) []model.AuthorStats {
	violations := make([]model.AuthorStats, 0)
	for _, entry := range entries {
		if entry.SubmissionCount > limit {
			violations = append(violations, entry)
		}
	}
	return violations
}
