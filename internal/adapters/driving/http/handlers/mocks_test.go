package handlers

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// mockSummaryService implements driving.SummaryService for testing.
type mockSummaryService struct {
	result  *domain.SummaryResult
	record  *domain.SummaryRecord
	err     error
	lastReq domain.SummaryRequest
	lastID  string
}

func (m *mockSummaryService) Summarize(_ context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockSummaryService) Get(_ context.Context, id string) (*domain.SummaryRecord, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}
