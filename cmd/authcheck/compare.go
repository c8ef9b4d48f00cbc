package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/authcheck/authcheck/internal/config"
	"github.com/authcheck/authcheck/internal/database"
	"github.com/authcheck/authcheck/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares analysis runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [source]",
		Short: "Compare analysis runs with historical data",
		Long: `Compare displays differences between the two most recent analysis runs
of a source file.

This command retrieves stored runs from the history database and shows:
- New violations that appeared since the previous run
- Resolved violations that are no longer present
- Violations whose submission counts changed

The comparison requires at least two stored runs for the source. Use
'authcheck analyze' to analyze a file and save a run.

Examples:
  # Compare the latest two runs of a source
  authcheck compare submissions.csv

  # List all stored runs for a source
  authcheck compare --list submissions.csv

  # Compare the latest run with a specific older run by ID
  authcheck compare --with-run-id 5 submissions.csv

  # Output the comparison in JSON format
  authcheck compare --json submissions.csv

  # List all sources in the database
  authcheck compare --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored runs for the specified source")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List all sources in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	// Database location, matching analyze --db-dir
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listSources, err := cmd.Flags().GetBool("list-sources")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a usage error
	// never leaves a lock behind.
	var source string
	if !listSources {
		if len(args) == 0 {
			return errors.New("source is required (use --list-sources to see stored sources)")
		}
		source = args[0]
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listSources {
		return listStoredSources(ctx, db)
	}

	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		return listRunHistory(ctx, db, source)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, source, withRunID, jsonOutput)
}

// listStoredSources lists all sources that have stored runs.
func listStoredSources(ctx context.Context, db *database.HistoryDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Println("No stored runs found in the database.")
		fmt.Println("\nUse 'authcheck analyze <file>' to analyze a submission export.")
		return nil
	}

	fmt.Printf("Stored sources (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Printf("  - %s\n", source)
	}
	fmt.Println("\nUse 'authcheck compare --list <source>' to see run history for a source.")

	return nil
}

// listRunHistory lists all stored runs for a source.
func listRunHistory(ctx context.Context, db *database.HistoryDB, source string) error {
	runs, err := db.GetRunHistory(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", source)
		fmt.Println("\nUse 'authcheck analyze' to analyze this file.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", source, len(runs))

	rows := make([][]string, 0, len(runs))
	for _, meta := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(meta.ID, 10),
			meta.Timestamp.Format("2006-01-02 15:04"),
			strconv.Itoa(meta.SubmissionCount),
			strconv.Itoa(meta.IdentityCount),
			strconv.Itoa(meta.ViolationCount),
			fmt.Sprintf("limit %d / threshold %d", meta.SubmissionLimit, meta.SimilarityThreshold),
		})
	}

	fmt.Println(renderTable(
		[]string{"ID", "Date", "Submissions", "Identities", "Violations", "Settings"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))

	return nil
}

// runComparison diffs the latest run against the previous one, or
// against a specific run when withRunID is set.
func runComparison(ctx context.Context, db *database.HistoryDB, source string, withRunID int64, jsonOutput bool) error {
	var older, newer *model.AnalysisReport

	if withRunID > 0 {
		var err error
		older, err = db.GetRunByID(ctx, withRunID)
		if err != nil {
			return err
		}
		if older == nil {
			return fmt.Errorf("no run with ID %d", withRunID)
		}

		newer, err = db.GetLatestRun(ctx, source)
		if err != nil {
			return err
		}
		if newer == nil {
			return fmt.Errorf("no stored runs for %s", source)
		}
	} else {
		runs, err := db.GetLatestTwoRuns(ctx, source)
		if err != nil {
			return err
		}
		if len(runs) < 2 {
			return fmt.Errorf("comparison requires at least two stored runs for %s (found %d)", source, len(runs))
		}
		newer, older = runs[0], runs[1]
	}

	diff := database.CompareRuns(older, newer)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(diff)
	}

	printDiff(diff, source)
	return nil
}

// printDiff prints a human-readable run comparison.
func printDiff(diff *database.RunDiff, source string) {
	fmt.Printf("Comparison for %s\n", source)
	fmt.Printf("  older: %s (%d violations)\n", diff.Older.DateAnalyzed.Format("2006-01-02 15:04"), len(diff.Older.Violations))
	fmt.Printf("  newer: %s (%d violations)\n\n", diff.Newer.DateAnalyzed.Format("2006-01-02 15:04"), len(diff.Newer.Violations))

	if !diff.HasChanges() {
		fmt.Println("No violation changes between the runs.")
		return
	}

	printChangeSection("New violations", diff.New)
	printChangeSection("Resolved violations", diff.Resolved)
	printChangeSection("Changed violations", diff.Changed)
}

// printChangeSection prints one group of violation changes as a table.
func printChangeSection(title string, changes []database.ViolationChange) {
	if len(changes) == 0 {
		return
	}

	fmt.Printf("%s (%d):\n", title, len(changes))

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Name,
			c.Key,
			formatCount(c.OldCount),
			formatCount(c.NewCount),
		})
	}

	fmt.Println(renderTable(
		[]string{"Author", "Identity", "Before", "After"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))
	fmt.Println()
}

// formatCount renders a submission count, with "-" for absent.
func formatCount(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
