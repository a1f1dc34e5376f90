// Package domain defines the core business entities for qadigest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A normalised QA document
//   - Chunk: A token-bounded slice of a document
//   - Mode: The role, lens and detail a summary is written for
//   - SummaryRecord: The persisted, cited summary
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
