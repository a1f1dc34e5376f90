// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PostProcessor: Splits a normalised document into chunks
//   - SearchEngine: Lexical indexing and retrieval
//   - SummaryStore: Summary record persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - NormaliserRegistry: File-format ingestion. Only needed when reading files.
//   - ConfigStore: Application configuration. Defaults apply without it.
//   - MetricsRecorder: Pipeline measurements. NopMetrics is used without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
