// Package normalize produces canonical forms of author fields for
// comparison. Canonical forms are never used for display: the original
// text stays on the author record, and normalization only feeds the
// similarity scorer. All functions are pure, deterministic, and
// idempotent.
package normalize
