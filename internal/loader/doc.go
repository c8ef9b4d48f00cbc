// Package loader reads tabular submission records from CSV files. It
// is the input boundary collaborator: it produces Submission rows for
// the core and performs no identity resolution itself. A file that
// cannot produce rows at all fails the load; previously loaded datasets
// are never affected.
package loader
