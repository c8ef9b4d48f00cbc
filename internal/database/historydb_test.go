package database

import (
	"context"
	"strconv"
	"testing"

	"github.com/authcheck/authcheck/internal/model"
)

// openTestDB creates a HistoryDB in a temporary directory.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return hdb
}

// createTestReport builds a report for source with the given violation
// counts keyed by "name|email".
func createTestReport(t *testing.T, source string, violations map[string]int) *model.AnalysisReport {
	t.Helper()

	report := model.NewAnalysisReport(source)
	report.SubmissionLimit = 2
	report.SimilarityThreshold = 85

	paper := 0
	for key, count := range violations {
		name, email := key, ""
		for i := 0; i < len(key); i++ {
			if key[i] == '|' {
				name, email = key[:i], key[i+1:]
				break
			}
		}

		stats := model.AuthorStats{
			AuthorID:        len(report.Authors),
			Name:            name,
			Email:           email,
			SubmissionCount: count,
			VariantCount:    1,
		}
		for i := 0; i < count; i++ {
			paper++
			paperID := "P" + strconv.Itoa(paper)
			sub := &model.Submission{
				PaperID: paperID,
				Title:   "Paper " + strconv.Itoa(paper),
				Status:  model.StatusUnderReview,
			}
			if err := report.AddSubmission(sub); err != nil {
				t.Fatalf("failed to add submission: %v", err)
			}
			report.InternAuthor(model.Author{Name: name, Email: email}, paperID)
			stats.Submissions = append(stats.Submissions, model.SubmissionRef{
				PaperID: paperID, Title: sub.Title,
			})
		}
		report.Stats = append(report.Stats, stats)
		report.Violations = append(report.Violations, stats)
	}
	return report
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		if hdb.Path() == "" {
			t.Error("expected non-empty database path")
		}
	})

	t.Run("fails when database missing and creation disabled", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		hdb, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		report := createTestReport(t, "a.csv", map[string]int{"Alice|alice@x.edu": 3})
		if _, err := hdb.SaveRun(context.Background(), report); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		if err := hdb.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		reopened, err := Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.GetLatestRun(context.Background(), "a.csv")
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got == nil || got.Source != "a.csv" {
			t.Error("expected run to survive a reopen")
		}
	})
}

func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	t.Run("round trips a full report", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()
		report := createTestReport(t, "conf.csv", map[string]int{"Alice Zhang|alice@nus.edu.sg": 3})

		id, err := hdb.SaveRun(ctx, report)
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero run ID")
		}

		got, err := hdb.GetRunByID(ctx, id)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got == nil {
			t.Fatal("expected a stored run")
		}
		if got.Source != "conf.csv" {
			t.Errorf("expected source %q, got %q", "conf.csv", got.Source)
		}
		if len(got.Submissions) != 3 {
			t.Errorf("expected 3 submissions, got %d", len(got.Submissions))
		}
		if len(got.Violations) != 1 || got.Violations[0].Name != "Alice Zhang" {
			t.Errorf("expected Alice Zhang violation, got %+v", got.Violations)
		}

		// Indexes must be rebuilt so the loaded report is usable.
		if got.Submission("P1") == nil {
			t.Error("expected paper lookup to work on a loaded report")
		}
	})

	t.Run("returns nil for unknown run ID", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		got, err := hdb.GetRunByID(context.Background(), 999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected nil for unknown run ID")
		}
	})
}

func TestGetLatestRun(t *testing.T) {
	t.Parallel()

	t.Run("returns the newest run for a source", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		first := createTestReport(t, "conf.csv", map[string]int{"Alice|a@x.edu": 3})
		if _, err := hdb.SaveRun(ctx, first); err != nil {
			t.Fatalf("failed to save first run: %v", err)
		}
		second := createTestReport(t, "conf.csv", map[string]int{"Alice|a@x.edu": 4})
		if _, err := hdb.SaveRun(ctx, second); err != nil {
			t.Fatalf("failed to save second run: %v", err)
		}

		got, err := hdb.GetLatestRun(ctx, "conf.csv")
		if err != nil {
			t.Fatalf("failed to get latest run: %v", err)
		}
		if got == nil {
			t.Fatal("expected a run")
		}
		if got.Violations[0].SubmissionCount != 4 {
			t.Errorf("expected the newer run (count 4), got %d", got.Violations[0].SubmissionCount)
		}
	})

	t.Run("returns nil for unknown source", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		got, err := hdb.GetLatestRun(context.Background(), "nope.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected nil for unknown source")
		}
	})
}

func TestGetLatestTwoRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		for i, count := range []int{3, 4, 5} {
			report := createTestReport(t, "conf.csv", map[string]int{"Alice|a@x.edu": count})
			if _, err := hdb.SaveRun(ctx, report); err != nil {
				t.Fatalf("failed to save run %d: %v", i, err)
			}
		}

		runs, err := hdb.GetLatestTwoRuns(ctx, "conf.csv")
		if err != nil {
			t.Fatalf("failed to get runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].Violations[0].SubmissionCount != 5 {
			t.Errorf("expected newest run first (count 5), got %d", runs[0].Violations[0].SubmissionCount)
		}
		if runs[1].Violations[0].SubmissionCount != 4 {
			t.Errorf("expected second-newest run (count 4), got %d", runs[1].Violations[0].SubmissionCount)
		}
	})

	t.Run("returns one run when only one stored", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()
		report := createTestReport(t, "single.csv", map[string]int{"Alice|a@x.edu": 3})
		if _, err := hdb.SaveRun(ctx, report); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}

		runs, err := hdb.GetLatestTwoRuns(ctx, "single.csv")
		if err != nil {
			t.Fatalf("failed to get runs: %v", err)
		}
		if len(runs) != 1 {
			t.Errorf("expected 1 run, got %d", len(runs))
		}
	})
}

func TestListSources(t *testing.T) {
	t.Parallel()

	t.Run("lists distinct sources sorted", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		for _, source := range []string{"b.csv", "a.csv", "b.csv"} {
			report := createTestReport(t, source, map[string]int{"Alice|a@x.edu": 3})
			if _, err := hdb.SaveRun(ctx, report); err != nil {
				t.Fatalf("failed to save run: %v", err)
			}
		}

		sources, err := hdb.ListSources(ctx)
		if err != nil {
			t.Fatalf("failed to list sources: %v", err)
		}
		if len(sources) != 2 || sources[0] != "a.csv" || sources[1] != "b.csv" {
			t.Errorf("expected [a.csv b.csv], got %v", sources)
		}
	})

	t.Run("empty database lists nothing", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		sources, err := hdb.ListSources(context.Background())
		if err != nil {
			t.Fatalf("failed to list sources: %v", err)
		}
		if len(sources) != 0 {
			t.Errorf("expected no sources, got %v", sources)
		}
	})
}

func TestGetRunHistory(t *testing.T) {
	t.Parallel()

	t.Run("returns metadata newest first", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		first := createTestReport(t, "conf.csv", map[string]int{"Alice|a@x.edu": 3})
		if _, err := hdb.SaveRun(ctx, first); err != nil {
			t.Fatalf("failed to save first run: %v", err)
		}
		second := createTestReport(t, "conf.csv", map[string]int{
			"Alice|a@x.edu": 4,
			"Frank|f@y.edu": 5,
		})
		if _, err := hdb.SaveRun(ctx, second); err != nil {
			t.Fatalf("failed to save second run: %v", err)
		}

		history, err := hdb.GetRunHistory(ctx, "conf.csv")
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(history))
		}

		newest := history[0]
		if newest.ViolationCount != 2 {
			t.Errorf("expected 2 violations in newest entry, got %d", newest.ViolationCount)
		}
		if newest.SubmissionCount != 9 {
			t.Errorf("expected 9 submissions in newest entry, got %d", newest.SubmissionCount)
		}
		if newest.SubmissionLimit != 2 || newest.SimilarityThreshold != 85 {
			t.Errorf("expected stored settings, got limit %d threshold %d",
				newest.SubmissionLimit, newest.SimilarityThreshold)
		}
		if newest.ViolationSummary["a@x.edu"] != 4 {
			t.Errorf("expected Alice summary count 4, got %d", newest.ViolationSummary["a@x.edu"])
		}
		if newest.Timestamp.IsZero() {
			t.Error("expected a parsed timestamp")
		}
		if history[1].ViolationCount != 1 {
			t.Errorf("expected 1 violation in older entry, got %d", history[1].ViolationCount)
		}
	})

	t.Run("unknown source returns empty history", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		history, err := hdb.GetRunHistory(context.Background(), "nope.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("expected empty history, got %d entries", len(history))
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{"sqlite default", "2026-08-29 10:30:00", false},
		{"iso8601 with Z", "2026-08-29T10:30:00Z", false},
		{"iso8601 without timezone", "2026-08-29T10:30:00", false},
		{"rfc3339 with offset", "2026-08-29T10:30:00+09:00", false},
		{"with milliseconds", "2026-08-29 10:30:00.123", false},
		{"garbage", "not-a-timestamp", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}
