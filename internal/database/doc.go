// Package database provides SQLite-based storage for analysis runs.
//
// Every analysis can be persisted as a run: the full analysis report as
// JSON plus a small set of queryable columns (source, timestamps, limit
// and threshold settings, violation counts). Stored runs power the
// compare command, which diffs the two most recent runs for a source to
// show which violations are new, resolved, or changed.
//
// The package uses modernc.org/sqlite, a pure-Go SQLite driver, so no
// CGo toolchain is required to build or run.
//
// # Usage
//
//	db, err := database.Open(dbDir, database.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	id, err := db.SaveRun(ctx, report)
//
// Runs are append-only. Re-analyzing the same source adds a new run
// rather than replacing the previous one, preserving history.
package database
