// Package memory provides in-process implementations of driven ports.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// Ensure SummaryStore implements the interface.
var _ driven.SummaryStore = (*SummaryStore)(nil)

// SummaryStore is an in-memory implementation of driven.SummaryStore.
// It is the process-lifetime cache tier of the summary store.
type SummaryStore struct {
	mu        sync.RWMutex
	summaries map[string]domain.SummaryRecord
}

// NewSummaryStore creates a new in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{
		summaries: make(map[string]domain.SummaryRecord),
	}
}

// Save stores or updates a summary. An existing record keeps its DocID and
// CreatedAt, and record is updated to carry them.
func (s *SummaryStore) Save(_ context.Context, record *domain.SummaryRecord) error {
	if record == nil || record.SummaryID == "" {
		return &domain.ValidationError{Field: "summary_id", Message: "summary_id is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.summaries[record.SummaryID]; ok {
		record.DocID = existing.DocID
		if !existing.CreatedAt.IsZero() {
			record.CreatedAt = existing.CreatedAt
		}
	}
	s.summaries[record.SummaryID] = clone(*record)
	return nil
}

// Replace stores a record as given, without preserving any earlier values.
// The tiered store uses it to mirror the durable copy.
func (s *SummaryStore) Replace(_ context.Context, record *domain.SummaryRecord) error {
	if record == nil || record.SummaryID == "" {
		return &domain.ValidationError{Field: "summary_id", Message: "summary_id is required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[record.SummaryID] = clone(*record)
	return nil
}

// Get retrieves a summary by ID.
func (s *SummaryStore) Get(_ context.Context, summaryID string) (*domain.SummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.summaries[summaryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(rec)
	return &out, nil
}

// Len returns the number of cached summaries.
func (s *SummaryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.summaries)
}

// Close is a no-op for the memory store.
func (s *SummaryStore) Close() error {
	return nil
}

// clone copies the slices so callers cannot mutate stored state.
func clone(rec domain.SummaryRecord) domain.SummaryRecord {
	if rec.Citations != nil {
		rec.Citations = append([]domain.Citation(nil), rec.Citations...)
	}
	if rec.Guardrails.Violations != nil {
		rec.Guardrails.Violations = append([]domain.Violation(nil), rec.Guardrails.Violations...)
	}
	return rec
}
