package pipeline

import (
	"context"
	"fmt"

	"github.com/authcheck/authcheck/internal/cluster"
	"github.com/authcheck/authcheck/internal/config"
	"github.com/authcheck/authcheck/internal/merge"
	"github.com/authcheck/authcheck/internal/model"
	"github.com/authcheck/authcheck/internal/normalize"
	"github.com/authcheck/authcheck/internal/parser"
	"github.com/authcheck/authcheck/internal/similarity"
	"github.com/authcheck/authcheck/internal/stats"
)

// NewAnalysis assembles the standard analysis pipeline for the given
// configuration: parse, cluster, optional same-email auto-merge, then
// stats and violations. Re-executing the returned pipeline against the
// same report is safe and reflects any merges applied in between.
func NewAnalysis(cfg *config.Config, opts ...Option) *Pipeline {
	normalizer := normalize.New(cfg.Aliases())
	scorer := similarity.NewScorer(cfg.EmailMismatchCeiling)
	builder := cluster.NewBuilder(scorer, cfg.SimilarityThreshold)

	p := New(opts...)
	p.AddSteps(&ParseStep{Normalizer: normalizer})
	p.AddSteps(&ClusterStep{Builder: builder, Threshold: cfg.SimilarityThreshold})
	if cfg.AutoMerge {
		p.AddSteps(&AutoMergeStep{Builder: builder})
	}
	p.AddSteps(&StatsStep{
		Limit:    cfg.SubmissionLimit,
		LeadOnly: cfg.LeadOnly,
	})
	return p
}

// ParseStep turns every submission's raw author field into interned
// author variants with canonical comparison forms. Malformed entries
// become parse warnings on the report; they never fail the step.
type ParseStep struct {
	// Normalizer computes the canonical fields stored on each variant.
	Normalizer *normalize.Normalizer
}

// Name returns the step's name.
func (s *ParseStep) Name() string { return "parse" }

// Do parses all submissions. Idempotent: author fields are only parsed
// for submissions that have no author references yet, so re-running the
// pipeline after a merge does not duplicate variants.
func (s *ParseStep) Do(_ context.Context, report *model.AnalysisReport) error {
	for _, sub := range report.Submissions {
		if len(sub.AuthorIDs) > 0 {
			continue
		}
		for _, entry := range parser.ParseAuthorField(sub.RawAuthors) {
			if entry.Outcome == parser.OutcomeUnusable {
				report.AddWarning(sub.PaperID, entry.Raw, entry.Warning)
				continue
			}
			if entry.Outcome == parser.OutcomeSalvaged {
				report.AddWarning(sub.PaperID, entry.Raw, entry.Warning)
			}

			variant := model.Author{
				Name:                 entry.Name,
				Email:                entry.Email,
				Affiliation:          entry.Affiliation,
				CanonicalName:        s.Normalizer.Name(entry.Name),
				CanonicalEmail:       s.Normalizer.Email(entry.Email),
				CanonicalAffiliation: s.Normalizer.Affiliation(entry.Affiliation),
				Salvaged:             entry.Outcome == parser.OutcomeSalvaged,
			}
			stored := report.InternAuthor(variant, sub.PaperID)
			sub.AuthorIDs = append(sub.AuthorIDs, stored.ID)
		}
	}
	return nil
}

// ClusterStep recomputes the duplicate-candidate groups from scratch.
type ClusterStep struct {
	Builder *cluster.Builder

	// Threshold is recorded on the report so its output documents the
	// policy it was produced under.
	Threshold int
}

// Name returns the step's name.
func (s *ClusterStep) Name() string { return "cluster" }

// Do replaces report.Groups with a fresh clustering of the active
// variants.
func (s *ClusterStep) Do(_ context.Context, report *model.AnalysisReport) error {
	report.SimilarityThreshold = s.Threshold
	report.Groups = s.Builder.Build(report)
	return nil
}

// AutoMergeStep applies the same-email merge policy to the current
// groups and re-clusters so the reported groups reflect the post-merge
// state. Groups without a shared email survive as advisory candidates.
type AutoMergeStep struct {
	Builder *cluster.Builder
}

// Name returns the step's name.
func (s *AutoMergeStep) Name() string { return "auto-merge" }

// Do merges qualifying groups and rebuilds the remaining ones.
func (s *AutoMergeStep) Do(_ context.Context, report *model.AnalysisReport) error {
	applied, err := merge.AutoApply(report, report.Groups)
	if err != nil {
		return fmt.Errorf("auto-merge failed: %w", err)
	}
	if applied > 0 {
		report.Groups = s.Builder.Build(report)
	}
	return nil
}

// StatsStep recomputes per-identity statistics and the violation
// subset against the configured limit.
type StatsStep struct {
	// Limit is the per-author submission cap.
	Limit int

	// LeadOnly counts only lead authors when true.
	LeadOnly bool
}

// Name returns the step's name.
func (s *StatsStep) Name() string { return "stats" }

// Do replaces report.Stats and report.Violations and stamps the report
// with the evaluated limit.
func (s *StatsStep) Do(_ context.Context, report *model.AnalysisReport) error {
	report.SubmissionLimit = s.Limit
	report.Stats = stats.Compute(report, stats.Options{LeadOnly: s.LeadOnly})
	report.Violations = stats.Violations(report.Stats, s.Limit)
	return nil
}
