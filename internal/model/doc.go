// Package model defines the core data structures for author identity
// resolution: submissions, parsed author variants, duplicate-candidate
// groups, per-identity statistics, and the analysis report that ties
// them together.
package model
