package driven

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// Normaliser turns raw file bytes into a document input.
// Each normaliser handles specific MIME types (e.g., Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text and title from a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of format normalisation.
// Text cleaning and doc_id derivation happen later in the ingest stage.
type NormaliseResult struct {
	Document domain.DocumentInput
}
