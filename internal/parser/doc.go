// Package parser turns raw free-text author fields into structured
// author entries. A field is a semicolon-separated list of entries,
// each optionally carrying an email in angle brackets and an
// affiliation in parentheses:
//
//	Alice Zhang <alice.zhang@nus.edu.sg> (NUS); Bob Li <bob.li@google.com> (Google Research)
//
// Parsing is deliberately lossy-tolerant: a malformed entry is tagged
// rather than aborting the field, so one bad entry never prevents a
// submission from loading.
package parser
