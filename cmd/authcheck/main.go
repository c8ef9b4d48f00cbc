// Package main provides the entry point for the authcheck CLI.
//
// Authcheck analyzes conference submission exports for duplicate author
// identities and per-author submission limit violations.
//
// Usage:
//
//	authcheck analyze submissions.csv
//	authcheck analyze --auto-merge --limit 2 submissions.csv
//
// See --help for all available options.
package main

// main is the entry point for authcheck.
func main() {
	Execute()
}
