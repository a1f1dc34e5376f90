// Package mcp provides an MCP (Model Context Protocol) server adapter for qadigest.
// It lets AI assistants summarise QA documents and read stored summaries.
package mcp

import "errors"

// ErrMissingSummaryService is returned when the summary service is not provided.
var ErrMissingSummaryService = errors.New("mcp: summary service is required")
