package driven

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// SummaryStore persists summary records.
// Save is an upsert keyed by SummaryID that never changes CreatedAt.
type SummaryStore interface {
	// Save inserts or updates a record.
	Save(ctx context.Context, record *domain.SummaryRecord) error

	// Get retrieves a record by id.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error)

	// Close releases resources.
	Close() error
}
