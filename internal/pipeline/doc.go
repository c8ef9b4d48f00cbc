// Package pipeline orchestrates the analysis steps for one dataset:
// parsing author fields, clustering duplicate candidates, optionally
// applying the same-email auto-merge policy, and recomputing stats and
// violations. Steps mutate a shared AnalysisReport in sequence; the
// whole pipeline is safe to re-run after merge decisions because every
// derived structure is rebuilt from scratch.
package pipeline
