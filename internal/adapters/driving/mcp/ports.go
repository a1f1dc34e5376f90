package mcp

import (
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Summary produces and loads summaries.
	Summary driving.SummaryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Summary == nil {
		return ErrMissingSummaryService
	}
	return nil
}
