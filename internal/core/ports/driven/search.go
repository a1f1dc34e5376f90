package driven

import "github.com/custodia-labs/qadigest/internal/core/domain"

// SearchEngine builds a per-request lexical index and ranks chunks against a query.
// Both operations are pure and in-memory.
type SearchEngine interface {
	// Index fills each chunk's term frequencies and returns the corpus index.
	// The chunks slice is updated in place.
	Index(chunks []domain.Chunk) *domain.SearchIndex

	// Retrieve scores every indexed chunk and returns the top maxChunks.
	Retrieve(index *domain.SearchIndex, query domain.Query, maxChunks int) []domain.RetrievedChunk
}
