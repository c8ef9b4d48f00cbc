package database

import (
	"testing"

	"github.com/authcheck/authcheck/internal/model"
)

// reportWithViolations builds a report whose violations are given as
// AuthorStats values directly.
func reportWithViolations(violations ...model.AuthorStats) *model.AnalysisReport {
	report := model.NewAnalysisReport("conf.csv")
	report.Violations = violations
	return report
}

func TestViolationKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats model.AuthorStats
		want  string
	}{
		{
			name:  "email preferred",
			stats: model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg"},
			want:  "alice@nus.edu.sg",
		},
		{
			name:  "lowercased name fallback",
			stats: model.AuthorStats{Name: "Alice Zhang"},
			want:  "alice zhang",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ViolationKey(tt.stats); got != tt.want {
				t.Errorf("ViolationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompareRuns(t *testing.T) {
	t.Parallel()

	t.Run("classifies new resolved changed and unchanged", func(t *testing.T) {
		t.Parallel()

		older := reportWithViolations(
			model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3},
			model.AuthorStats{Name: "Bob Li", Email: "bob@google.com", SubmissionCount: 4},
			model.AuthorStats{Name: "Carol Chen", Email: "carol@stanford.edu", SubmissionCount: 3},
		)
		newer := reportWithViolations(
			model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3},
			model.AuthorStats{Name: "Bob Li", Email: "bob@google.com", SubmissionCount: 5},
			model.AuthorStats{Name: "Frank Mueller", Email: "frank@ethz.ch", SubmissionCount: 4},
		)

		diff := CompareRuns(older, newer)

		if len(diff.New) != 1 || diff.New[0].Key != "frank@ethz.ch" {
			t.Errorf("expected Frank as new violation, got %+v", diff.New)
		}
		if diff.New[0].OldCount != 0 || diff.New[0].NewCount != 4 {
			t.Errorf("expected new counts 0 -> 4, got %d -> %d", diff.New[0].OldCount, diff.New[0].NewCount)
		}

		if len(diff.Resolved) != 1 || diff.Resolved[0].Key != "carol@stanford.edu" {
			t.Errorf("expected Carol resolved, got %+v", diff.Resolved)
		}
		if diff.Resolved[0].OldCount != 3 || diff.Resolved[0].NewCount != 0 {
			t.Errorf("expected resolved counts 3 -> 0, got %d -> %d",
				diff.Resolved[0].OldCount, diff.Resolved[0].NewCount)
		}

		if len(diff.Changed) != 1 || diff.Changed[0].Key != "bob@google.com" {
			t.Errorf("expected Bob changed, got %+v", diff.Changed)
		}
		if diff.Changed[0].OldCount != 4 || diff.Changed[0].NewCount != 5 {
			t.Errorf("expected changed counts 4 -> 5, got %d -> %d",
				diff.Changed[0].OldCount, diff.Changed[0].NewCount)
		}

		if len(diff.Unchanged) != 1 || diff.Unchanged[0].Key != "alice@nus.edu.sg" {
			t.Errorf("expected Alice unchanged, got %+v", diff.Unchanged)
		}

		if !diff.HasChanges() {
			t.Error("expected HasChanges to be true")
		}
	})

	t.Run("rename with stable email tracks as the same identity", func(t *testing.T) {
		t.Parallel()

		older := reportWithViolations(
			model.AuthorStats{Name: "A. Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3},
		)
		newer := reportWithViolations(
			model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3},
		)

		diff := CompareRuns(older, newer)
		if len(diff.New) != 0 || len(diff.Resolved) != 0 {
			t.Errorf("expected a rename to not register as new or resolved, got new=%+v resolved=%+v",
				diff.New, diff.Resolved)
		}
		if len(diff.Unchanged) != 1 || diff.Unchanged[0].Name != "Alice Zhang" {
			t.Errorf("expected the newer display name, got %+v", diff.Unchanged)
		}
	})

	t.Run("changed email counts as a new identity", func(t *testing.T) {
		t.Parallel()

		older := reportWithViolations(
			model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3},
		)
		newer := reportWithViolations(
			model.AuthorStats{Name: "Alice Zhang", Email: "azhang@comp.nus.edu.sg", SubmissionCount: 3},
		)

		diff := CompareRuns(older, newer)
		if len(diff.New) != 1 || len(diff.Resolved) != 1 {
			t.Errorf("expected one new and one resolved, got new=%+v resolved=%+v", diff.New, diff.Resolved)
		}
	})

	t.Run("identical runs report no changes", func(t *testing.T) {
		t.Parallel()

		v := model.AuthorStats{Name: "Alice Zhang", Email: "alice@nus.edu.sg", SubmissionCount: 3}
		diff := CompareRuns(reportWithViolations(v), reportWithViolations(v))

		if diff.HasChanges() {
			t.Error("expected no changes for identical runs")
		}
		if len(diff.Unchanged) != 1 {
			t.Errorf("expected 1 unchanged entry, got %d", len(diff.Unchanged))
		}
	})

	t.Run("empty runs produce an empty diff", func(t *testing.T) {
		t.Parallel()

		diff := CompareRuns(reportWithViolations(), reportWithViolations())
		if diff.HasChanges() {
			t.Error("expected no changes for empty runs")
		}
	})

	t.Run("change lists are sorted by key", func(t *testing.T) {
		t.Parallel()

		older := reportWithViolations()
		newer := reportWithViolations(
			model.AuthorStats{Name: "Zoe", Email: "z@x.edu", SubmissionCount: 3},
			model.AuthorStats{Name: "Amy", Email: "a@x.edu", SubmissionCount: 3},
			model.AuthorStats{Name: "Mia", Email: "m@x.edu", SubmissionCount: 3},
		)

		diff := CompareRuns(older, newer)
		if len(diff.New) != 3 {
			t.Fatalf("expected 3 new violations, got %d", len(diff.New))
		}
		for i := 1; i < len(diff.New); i++ {
			if diff.New[i-1].Key > diff.New[i].Key {
				t.Errorf("expected sorted keys, got %q before %q", diff.New[i-1].Key, diff.New[i].Key)
			}
		}
	})
}
