package mcp

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	result  *domain.SummaryResult
	record  *domain.SummaryRecord
	err     error
	lastReq domain.SummaryRequest
	lastID  string
}

func (m *mockSummaryService) Summarize(_ context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockSummaryService) Get(_ context.Context, summaryID string) (*domain.SummaryRecord, error) {
	m.lastID = summaryID
	return m.record, m.err
}
