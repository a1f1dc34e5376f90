// Package sqlite provides a SQLite-based durable summary store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The summaries table mirrors SummaryRecord; mode, citations and guardrails are
// stored as JSON text.
//
// # Data Location
//
// By default, the database is stored at ~/.qadigest/data/summaries.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
