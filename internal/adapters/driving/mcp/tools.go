package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// SummarizeInput is the input schema for the summarize_document tool.
type SummarizeInput struct {
	Content      string   `json:"content" jsonschema:"the document text to summarise"`
	Title        string   `json:"title,omitempty" jsonschema:"document title"`
	DocID        string   `json:"doc_id,omitempty" jsonschema:"stable document id; derived from the content when empty"`
	Version      string   `json:"version,omitempty" jsonschema:"document version"`
	DocType      string   `json:"doc_type,omitempty" jsonschema:"document type, e.g. SOP or Validation Plan"`
	Role         string   `json:"role,omitempty" jsonschema:"audience: Auditor, QA Lead, Engineer or New Hire"`
	Lens         string   `json:"lens,omitempty" jsonschema:"angle: Regulatory, Risk & CAPA, Training, Timeline/Change log or Testing & Evidence"`
	Detail       string   `json:"detail,omitempty" jsonschema:"Brief, Standard or Deep Dive"`
	Query        string   `json:"query,omitempty" jsonschema:"free-text focus for retrieval"`
	Tags         []string `json:"tags,omitempty" jsonschema:"extra retrieval terms"`
	Sections     []string `json:"sections,omitempty" jsonschema:"section names to favour"`
	ChunkSize    int      `json:"chunk_size,omitempty" jsonschema:"chunk size in tokens (800-2000)"`
	ChunkOverlap int      `json:"chunk_overlap,omitempty" jsonschema:"chunk overlap in tokens (100-400)"`
}

// SummarizeOutput is the output schema for the summarize_document tool.
type SummarizeOutput struct {
	Summary        SummaryOutput `json:"summary"`
	LatencyMs      int64         `json:"latency_ms"`
	ChunkCount     int           `json:"chunk_count"`
	RetrievedCount int           `json:"retrieved_count"`
}

// GetSummaryInput is the input schema for the get_summary tool.
type GetSummaryInput struct {
	SummaryID string `json:"summary_id" jsonschema:"id returned by summarize_document"`
}

// SummaryOutput is a stored summary in tool output form.
type SummaryOutput struct {
	SummaryID       string           `json:"summary_id"`
	DocID           string           `json:"doc_id"`
	Title           string           `json:"title"`
	Role            string           `json:"role"`
	Lens            string           `json:"lens"`
	Detail          string           `json:"detail"`
	Summary         string           `json:"summary"`
	Confidence      float64          `json:"confidence"`
	CitationDensity float64          `json:"citation_density"`
	Violations      []string         `json:"violations,omitempty"`
	Citations       []CitationOutput `json:"citations"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

// CitationOutput is a single citation in tool output form.
type CitationOutput struct {
	Number  int     `json:"number"`
	ChunkID string  `json:"chunk_id"`
	Section string  `json:"section"`
	Page    int     `json:"page"`
	Preview string  `json:"preview"`
	Score   float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_document",
		Description: "Summarise a pharma QA document for a role, lens and detail level, with citations",
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_summary",
		Description: "Load a previously generated summary by id",
	}, s.handleGetSummary)
}

// handleSummarize handles the summarize_document tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	req := domain.SummaryRequest{
		Document: domain.DocumentInput{
			Content: input.Content,
			Title:   input.Title,
			DocID:   input.DocID,
			Version: input.Version,
			DocType: input.DocType,
		},
		Mode: domain.ModeInput{
			Role:   input.Role,
			Lens:   input.Lens,
			Detail: input.Detail,
		},
		Query: input.Query,
		Filters: domain.Filters{
			Tags:     input.Tags,
			Sections: input.Sections,
		},
		ChunkConfig: domain.ChunkConfig{
			ChunkSize:    input.ChunkSize,
			ChunkOverlap: input.ChunkOverlap,
		},
	}

	result, err := s.ports.Summary.Summarize(ctx, req)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	return nil, SummarizeOutput{
		Summary:        toSummaryOutput(&result.Summary),
		LatencyMs:      result.Metrics.LatencyMs,
		ChunkCount:     result.Metrics.ChunkCount,
		RetrievedCount: result.Metrics.RetrievedCount,
	}, nil
}

// handleGetSummary handles the get_summary tool invocation.
func (s *Server) handleGetSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	id := strings.TrimSpace(input.SummaryID)
	if id == "" {
		return nil, SummaryOutput{}, errors.New("summary_id is required")
	}

	record, err := s.ports.Summary.Get(ctx, id)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	return nil, toSummaryOutput(record), nil
}

func toSummaryOutput(rec *domain.SummaryRecord) SummaryOutput {
	out := SummaryOutput{
		SummaryID:       rec.SummaryID,
		DocID:           rec.DocID,
		Title:           rec.Title,
		Role:            rec.Mode.Role.String(),
		Lens:            rec.Mode.Lens.String(),
		Detail:          rec.Mode.Detail.String(),
		Summary:         rec.Summary,
		Confidence:      rec.Confidence,
		CitationDensity: rec.Guardrails.CitationDensity,
		Citations:       make([]CitationOutput, len(rec.Citations)),
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       rec.UpdatedAt.Format(time.RFC3339),
	}
	for _, v := range rec.Guardrails.Violations {
		out.Violations = append(out.Violations, v.Code)
	}
	for i, c := range rec.Citations {
		out.Citations[i] = CitationOutput{
			Number:  c.Number,
			ChunkID: c.ChunkID,
			Section: c.Section,
			Page:    c.Page,
			Preview: c.Preview,
			Score:   c.Score,
		}
	}
	return out
}
