package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/authcheck/authcheck/internal/config"
	"github.com/authcheck/authcheck/internal/loader"
	"github.com/authcheck/authcheck/internal/model"
)

// BatchProcessor analyzes multiple input files concurrently. Each file
// is loaded into its own AnalysisReport and run through a fresh
// pipeline, so datasets never share mutable state and the core stays
// single-threaded per dataset.
type BatchProcessor struct {
	cfg *config.Config

	// pipelineFactory creates a new pipeline per dataset so pipeline
	// state cannot leak between files.
	pipelineFactory func() *Pipeline

	concurrency int
	logger      *slog.Logger

	results []*model.AnalysisReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(bp *BatchProcessor) {
		bp.logger = logger
	}
}

// WithConcurrency sets the maximum number of files analyzed at once.
func WithConcurrency(n int) BatchOption {
	return func(bp *BatchProcessor) {
		if n > 0 {
			bp.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor for the given config.
func NewBatchProcessor(cfg *config.Config, pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		cfg:             cfg,
		pipelineFactory: pipelineFactory,
		concurrency:     cfg.Concurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Process loads and analyzes every configured input file. A file that
// fails to load or analyze yields a report carrying the error; other
// files are unaffected, because a load failure is fatal only to its own
// dataset. Results come back in input order.
func (bp *BatchProcessor) Process(ctx context.Context) ([]*model.AnalysisReport, error) {
	inputs := bp.cfg.Inputs
	bp.logger.Info("starting analysis",
		"inputs", len(inputs),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	bp.results = make([]*model.AnalysisReport, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := bp.analyzeOne(ctx, path)
			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("analysis complete",
		"inputs", len(inputs),
		"elapsed", time.Since(start),
	)
	return bp.results, err
}

// analyzeOne loads and analyzes a single file. Failures are recorded
// on the returned report instead of propagating, so one bad file never
// aborts the batch.
func (bp *BatchProcessor) analyzeOne(ctx context.Context, path string) *model.AnalysisReport {
	report, err := loader.Load(path, loader.Options{
		IDColumn:     bp.cfg.IDColumn,
		TitleColumn:  bp.cfg.TitleColumn,
		AuthorColumn: bp.cfg.AuthorColumn,
		DateColumn:   bp.cfg.DateColumn,
		StatusColumn: bp.cfg.StatusColumn,
	})
	if err != nil {
		bp.logger.Warn("load failed", "input", path, "error", err)
		report = model.NewAnalysisReport(path)
		report.Error = err
		report.ErrorMessage = err.Error()
		return report
	}

	if err := bp.pipelineFactory().Execute(ctx, report); err != nil {
		bp.logger.Warn("analysis failed", "input", path, "error", err)
	}
	return report
}
