// Package report renders analysis results for the output boundary.
// Writers consume the core's read-only views (duplicate groups, author
// stats, violations) and own all formatting; the core itself has no
// output opinions.
package report
