package driven

import (
	"context"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// NormaliserRegistry turns uploaded files into summary-ready text.
// Dispatch is by MIME type, or by file extension when the type is empty.
type NormaliserRegistry interface {
	// Normalise picks a normaliser for raw.MIMEType and runs it.
	// domain.ErrUnsupportedType is returned when nothing accepts the type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser. Higher priority is tried first.
	Register(normaliser Normaliser)

	// SupportedMIMETypes lists the accepted MIME types, sorted.
	SupportedMIMETypes() []string
}
