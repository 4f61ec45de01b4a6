// Package database provides SQLite-based storage for logmetrics.
//
// The HistoryDB records every generated report together with the runs
// directory it was built from, where it was written, and a SHA3-256
// fingerprint of the exact JSON bytes. This lets users list earlier reports
// and tell whether a regenerated report changed.
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// database is a single file and the binary cross-compiles without a C
// toolchain.
package database
