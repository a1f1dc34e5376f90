package driving

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// SummaryService produces and retrieves cited document summaries.
type SummaryService interface {
	// Summarize runs the full pipeline and persists the resulting record.
	// Returns a domain.ValidationError if the document has no content.
	Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error)

	// Get retrieves a persisted summary.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error)
}
