package domain

import "strings"

// SearchIndex is the lexical index built once per pipeline run.
// It is never persisted.
type SearchIndex struct {
	// Chunks carry their TermFrequency tables after indexing.
	Chunks []Chunk

	// Vocabulary maps a normalised token to its corpus-wide count.
	Vocabulary map[string]int

	TotalTokens int
}

// Filters narrows a summary by caller-supplied tags and section names.
type Filters struct {
	Tags     []string `json:"tags,omitempty"`
	Sections []string `json:"sections,omitempty"`
}

// Query is the resolved retrieval query.
type Query struct {
	// Terms is a deduplicated lowercase set in first-seen order.
	Terms []string
	Role  Role
	Lens  Lens
}

// RetrievedChunk is a chunk with its lexical relevance score.
type RetrievedChunk struct {
	Chunk
	Score float64
}

// NormaliseTerm lowercases a token and strips every character outside [a-z0-9].
// Indexing, querying and retrieval all share it.
func NormaliseTerm(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
