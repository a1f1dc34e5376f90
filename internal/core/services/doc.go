// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The summary pipeline stages live here as pure functions:
// ingest, query building, orchestration, guardrails and confidence.
// SummaryService chains them with the driven chunker, search engine
// and summary store.
package services
