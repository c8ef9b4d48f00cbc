package pipeline

import (
	"context"
	"log/slog"

	"github.com/authcheck/authcheck/internal/model"
)

// Step is one stage of an analysis run. Steps execute in sequence,
// each receiving the report accumulated by its predecessors.
//
// Design decision: We use an interface rather than function types
// because steps carry configuration state (normalizer, scorer,
// thresholds) and a Name() method keeps logging uniform.
type Step interface {
	// Do executes the step against the report. Returning an error
	// stops the pipeline; recoverable conditions (parse warnings)
	// belong in the report instead.
	Do(ctx context.Context, report *model.AnalysisReport) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline executes an ordered list of steps against one report.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline. Steps are added with AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence. Cancellation is checked between
// steps; the in-memory dataset is small enough that individual steps
// never block. The first step error stops the run and is recorded on
// the report before being returned.
func (p *Pipeline) Execute(ctx context.Context, report *model.AnalysisReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("analysis cancelled",
				"step", step.Name(),
				"source", report.Source,
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", report.Source,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", report.Source,
				"error", err,
			)
			report.Error = err
			report.ErrorMessage = err.Error()
			return err
		}

		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}
	return nil
}
