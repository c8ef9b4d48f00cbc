// Package stats recomputes per-identity submission statistics and the
// violation subset from the current submission-to-identity mapping.
// Everything here is derived state: run it again after any merge and
// the numbers reflect the new mapping.
package stats
