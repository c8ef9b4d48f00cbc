package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/authcheck/authcheck/internal/config"
	"github.com/authcheck/authcheck/internal/database"
	"github.com/authcheck/authcheck/internal/log"
	"github.com/authcheck/authcheck/internal/model"
	"github.com/authcheck/authcheck/internal/pipeline"
	"github.com/authcheck/authcheck/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Analyze submission files for duplicate authors and limit violations",
		Long: `Analyze loads one or more submission CSV exports and reports:
- Duplicate author candidates (same person under different name formats)
- Automatically merged identities (identical email addresses)
- Authors exceeding the per-author submission limit

Examples:
  # Analyze a single export with default settings
  authcheck analyze submissions.csv

  # Apply same-email merges before counting
  authcheck analyze --auto-merge submissions.csv

  # Custom limit and clustering threshold
  authcheck analyze --limit 3 --threshold 90 submissions.csv

  # Count only lead authors toward the limit
  authcheck analyze --lead-only submissions.csv

  # Analyze several exports concurrently
  authcheck analyze spring.csv summer.csv fall.csv

  # Output JSON report to a file
  authcheck analyze --json -o report.json submissions.csv

  # Use a shared policy file
  authcheck analyze -c venue-policy.yaml submissions.csv

Configuration file (.authcheck) example:
  submission_limit: 2
  similarity_threshold: 85
  aliases:
    nus: national university of singapore
    mpi-sws: max planck institute for software systems`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Policy flags
	cmd.Flags().IntP("limit", "l", config.DefaultSubmissionLimit,
		"Maximum submissions per author before a violation is reported")
	cmd.Flags().IntP("threshold", "t", config.DefaultSimilarityThreshold,
		"Similarity score in [0,100] at which author variants are grouped")
	cmd.Flags().Int("email-ceiling", config.DefaultEmailMismatchCeiling,
		"Score cap applied when two variants carry different email addresses")
	cmd.Flags().Bool("lead-only", false,
		"Count only the lead (first) author of each submission")
	cmd.Flags().BoolP("auto-merge", "a", false,
		"Automatically merge duplicate groups that share one email address")

	// Input shape flags
	cmd.Flags().String("id-column", config.DefaultIDColumn, "Header of the paper ID column")
	cmd.Flags().String("title-column", config.DefaultTitleColumn, "Header of the title column")
	cmd.Flags().String("author-column", config.DefaultAuthorColumn, "Header of the authors column")
	cmd.Flags().String("date-column", config.DefaultDateColumn, "Header of the submission date column")
	cmd.Flags().String("status-column", config.DefaultStatusColumn, "Header of the status column")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of input files analyzed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .authcheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not save this run to the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with email masking
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalysis(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.SubmissionLimit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}

	cfg.SimilarityThreshold, err = cmd.Flags().GetInt("threshold")
	if err != nil {
		return nil, err
	}

	cfg.EmailMismatchCeiling, err = cmd.Flags().GetInt("email-ceiling")
	if err != nil {
		return nil, err
	}

	cfg.LeadOnly, err = cmd.Flags().GetBool("lead-only")
	if err != nil {
		return nil, err
	}

	cfg.AutoMerge, err = cmd.Flags().GetBool("auto-merge")
	if err != nil {
		return nil, err
	}

	cfg.IDColumn, err = cmd.Flags().GetString("id-column")
	if err != nil {
		return nil, err
	}
	cfg.TitleColumn, err = cmd.Flags().GetString("title-column")
	if err != nil {
		return nil, err
	}
	cfg.AuthorColumn, err = cmd.Flags().GetString("author-column")
	if err != nil {
		return nil, err
	}
	cfg.DateColumn, err = cmd.Flags().GetString("date-column")
	if err != nil {
		return nil, err
	}
	cfg.StatusColumn, err = cmd.Flags().GetString("status-column")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the policy file. An explicitly specified path must exist;
	// a missing default file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}

		// File values apply only where the flag was not given; CLI
		// flags always win.
		if cfg.File.SubmissionLimit > 0 && !cmd.Flags().Changed("limit") {
			cfg.SubmissionLimit = cfg.File.SubmissionLimit
		}
		if cfg.File.SimilarityThreshold > 0 && !cmd.Flags().Changed("threshold") {
			cfg.SimilarityThreshold = cfg.File.SimilarityThreshold
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the input files
	cfg.Inputs = args

	return cfg, nil
}

// runAnalysis executes the analysis across all configured inputs.
func runAnalysis(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputs", cfg.Inputs,
		"limit", cfg.SubmissionLimit,
		"threshold", cfg.SimilarityThreshold,
		"autoMerge", cfg.AutoMerge,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the history database if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	start := time.Now()

	bp := pipeline.NewBatchProcessor(cfg,
		func() *pipeline.Pipeline {
			return pipeline.NewAnalysis(cfg, pipeline.WithLogger(logger))
		},
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.Process(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range reports {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", r.Source, r.Error)
			continue
		}

		if err := outputReport(cfg, r); err != nil {
			logger.Error("report failed", "source", r.Source, "error", err)
		}

		if err := saveRun(ctx, db, r, logger); err != nil {
			logger.Error("failed to save run", "source", r.Source, "error", err)
		}
	}

	logger.Info("analysis finished", "elapsed", time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) failed to analyze", failed, len(reports))
	}
	return nil
}

// outputReport writes the analysis report in the requested format.
func outputReport(cfg *config.Config, r *model.AnalysisReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain author contact details; keep them
		// owner-readable only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(r)
	return err
}

// saveRun persists an analysis run to the history database.
// A nil database means saving is disabled.
func saveRun(ctx context.Context, db *database.HistoryDB, r *model.AnalysisReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}
	if r.Error != nil {
		return errors.New("refusing to save a failed run")
	}

	id, err := db.SaveRun(ctx, r)
	if err != nil {
		return err
	}
	logger.Info("run saved", "source", r.Source, "runID", id)
	return nil
}
