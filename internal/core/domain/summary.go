package domain

import "time"

// ModelID identifies the summariser that produced a record.
const ModelID = "qadigest-extractive-v1"

// Guardrail violation codes.
const (
	ViolationEmptySummary       = "EMPTY_SUMMARY"
	ViolationLowCitationDensity = "LOW_CITATION_DENSITY"
	ViolationPIIDetected        = "PII_DETECTED"
)

// Citation points a rendered bullet back at its source chunk.
type Citation struct {
	// Number is 1-based and assigned in first-seen chunk order.
	Number  int     `json:"citationNumber"`
	ChunkID string  `json:"chunk_id"`
	Section string  `json:"section"`
	Page    int     `json:"page"`
	Preview string  `json:"preview"`
	Score   float64 `json:"score"`
}

// Violation is a single guardrail failure.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GuardrailReport is the outcome of guardrail evaluation.
// Violations are reported, never raised.
type GuardrailReport struct {
	Violations      []Violation `json:"violations"`
	CitationDensity float64     `json:"citationDensity"`
}

// HasViolation returns true if the report contains the given code.
func (g GuardrailReport) HasViolation(code string) bool {
	for _, v := range g.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// SummaryRecord is the persisted result of one summary request.
// SummaryID and DocID never change once created.
type SummaryRecord struct {
	SummaryID  string          `json:"summary_id"`
	DocID      string          `json:"doc_id"`
	Title      string          `json:"title"`
	Mode       Mode            `json:"mode"`
	Model      string          `json:"model"`
	PromptHash string          `json:"prompt_hash"`
	Citations  []Citation      `json:"citations"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	RequestID  string          `json:"request_id"`
	Summary    string          `json:"summary"`
	Guardrails GuardrailReport `json:"guardrails"`
}

// Pipeline stage names used in diagnostics.
const (
	StageIngest      = "ingest"
	StagePreprocess  = "preprocess"
	StageIndex       = "index"
	StageRetrieve    = "retrieve"
	StageOrchestrate = "orchestrate"
	StageGuardrails  = "guardrails"
	StagePersist     = "persist"
)

// Diagnostic is a stage-tagged trace event. It is informational only.
type Diagnostic struct {
	Stage    string         `json:"stage"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SummaryMetrics are the headline numbers for one run.
type SummaryMetrics struct {
	LatencyMs       int64   `json:"latencyMs"`
	ChunkCount      int     `json:"chunkCount"`
	RetrievedCount  int     `json:"retrievedCount"`
	CitationDensity float64 `json:"citationDensity"`
	Confidence      float64 `json:"confidence"`
}

// SummaryRequest is the pipeline input.
type SummaryRequest struct {
	Document    DocumentInput `json:"document"`
	Mode        ModeInput     `json:"mode"`
	Query       string        `json:"query,omitempty"`
	Filters     Filters       `json:"filters"`
	ChunkConfig ChunkConfig   `json:"chunkConfig"`

	// SummaryID is optional; a new id is generated when empty.
	SummaryID string `json:"summary_id,omitempty"`

	// RequestID correlates the record with the caller's request.
	RequestID string `json:"request_id,omitempty"`
}

// SummaryResult is the pipeline output.
type SummaryResult struct {
	Summary     SummaryRecord  `json:"summary"`
	Diagnostics []Diagnostic   `json:"diagnostics"`
	Metrics     SummaryMetrics `json:"metrics"`
}
