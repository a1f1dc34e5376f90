// Package driving holds the inbound ports. The CLI, the HTTP API and the MCP
// server call into the summary pipeline only through these interfaces.
//
// internal/core/services provides the implementations.
package driving
