// Package lexical provides the per-request term-frequency index and retriever.
package lexical

import (
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// Scoring constants.
const (
	coverageCap     = 0.5
	coverageDivisor = 1500.0
)

// Engine builds a lexical index and ranks chunks by sublinear term frequency.
// It is stateless and safe for concurrent use.
type Engine struct{}

// Verify interface compliance.
var _ driven.SearchEngine = (*Engine)(nil)

// New creates a new lexical engine.
func New() *Engine {
	return &Engine{}
}

// Index fills each chunk's term frequencies and builds the corpus vocabulary.
// No stemming or stopword removal is applied.
func (e *Engine) Index(chunks []domain.Chunk) *domain.SearchIndex {
	idx := &domain.SearchIndex{
		Chunks:     chunks,
		Vocabulary: make(map[string]int),
	}

	for i := range chunks {
		tf := make(map[string]int)
		for _, raw := range strings.Fields(chunks[i].Text) {
			term := domain.NormaliseTerm(raw)
			if term == "" {
				continue
			}
			tf[term]++
			idx.Vocabulary[term]++
			idx.TotalTokens++
		}
		chunks[i].TermFrequency = tf
	}

	return idx
}

// Retrieve scores every chunk against the query and returns the best maxChunks.
// Ties keep their original chunk order.
func (e *Engine) Retrieve(index *domain.SearchIndex, query domain.Query, maxChunks int) []domain.RetrievedChunk {
	if index == nil || len(index.Chunks) == 0 {
		return nil
	}

	terms := distinctTerms(query.Terms)
	results := make([]domain.RetrievedChunk, 0, len(index.Chunks))
	for _, c := range index.Chunks {
		results = append(results, domain.RetrievedChunk{
			Chunk: c,
			Score: score(c, terms, index.TotalTokens),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := max(maxChunks, 1)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// score computes a chunk's relevance. Without query terms it falls back to
// the chunk's share of the corpus.
func score(c domain.Chunk, terms []string, totalTokens int) float64 {
	if len(terms) == 0 {
		return float64(c.TokenCount) / float64(max(1, totalTokens))
	}

	var s float64
	for _, term := range terms {
		if f := c.TermFrequency[term]; f > 0 {
			s += math.Log1p(float64(f))
		}
	}
	return s + math.Min(coverageCap, float64(c.TokenCount)/coverageDivisor)
}

// distinctTerms normalises query terms and drops duplicates and empties.
func distinctTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := domain.NormaliseTerm(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
