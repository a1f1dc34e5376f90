package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
	"github.com/custodia-labs/qadigest/internal/normalisers"
)

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	result  *domain.SummaryResult
	record  *domain.SummaryRecord
	err     error
	calls   int
	lastReq domain.SummaryRequest
	lastID  string
}

func (m *mockSummaryService) Summarize(_ context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

func (m *mockSummaryService) Get(_ context.Context, summaryID string) (*domain.SummaryRecord, error) {
	m.lastID = summaryID
	return m.record, m.err
}

// setupTestServices installs svc and the default normalisers, resets flag
// state and captures command output.
func setupTestServices(t *testing.T, svc driving.SummaryService) *bytes.Buffer {
	t.Helper()

	prevSummary, prevRegistry := summaryService, normaliserRegistry
	summaryService = svc
	normaliserRegistry = normalisers.NewDefaultRegistry()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		summaryService, normaliserRegistry = prevSummary, prevRegistry
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})
	return buf
}

func resetFlags() {
	summarizeRole, summarizeLens, summarizeDetail = "", "", ""
	summarizeQuery, summarizeTitle = "", ""
	summarizeTags, summarizeSections = nil, nil
	summarizeChunkSize, summarizeChunkOverlap = 0, 0
	summarizeJSON, summarizeShowDiagnostics = false, false
	getJSON = false
	watchRole, watchLens, watchDetail = "", "", ""
	watchJSON = false
	serveAddr, mcpAddr = "", ""
}

func sampleRecord() domain.SummaryRecord {
	return domain.SummaryRecord{
		SummaryID: "sum-1",
		DocID:     "doc-1",
		Title:     "Validation Plan",
		Mode: domain.Mode{
			Role:   domain.RoleAuditor,
			Lens:   domain.LensRegulatory,
			Detail: domain.DetailStandard,
		},
		Summary:    "### Key Insights\n- This plan validates equipment. [1]",
		Confidence: 0.65,
		Citations: []domain.Citation{
			{Number: 1, ChunkID: "doc-1:0", Section: "Testing", Page: 1, Preview: "This plan validates equipment.", Score: 1.5},
		},
		Guardrails: domain.GuardrailReport{
			CitationDensity: 1,
			Violations: []domain.Violation{
				{Code: domain.ViolationLowCitationDensity, Message: "Citation density 0.50 below 0.70"},
			},
		},
	}
}
