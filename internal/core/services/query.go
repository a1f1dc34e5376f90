package services

import (
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// BuildQuery merges the free-text query with the role and lens keyword
// profiles and the caller's filters into a deduplicated lowercase term set.
// Terms keep first-seen order so retrieval stays deterministic.
func BuildQuery(mode domain.Mode, text string, filters domain.Filters) domain.Query {
	terms := newTermSet()

	for _, token := range strings.Fields(text) {
		terms.add(domain.NormaliseTerm(token))
	}
	for _, kw := range mode.Role.Profile().Keywords {
		terms.add(kw)
	}
	for _, kw := range mode.Lens.Keywords() {
		terms.add(kw)
	}
	for _, f := range filters.Tags {
		terms.add(f)
	}
	for _, f := range filters.Sections {
		terms.add(f)
	}

	return domain.Query{
		Terms: terms.list,
		Role:  mode.Role,
		Lens:  mode.Lens,
	}
}

type termSet struct {
	seen map[string]struct{}
	list []string
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[string]struct{})}
}

func (s *termSet) add(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return
	}
	if _, ok := s.seen[term]; ok {
		return
	}
	s.seen[term] = struct{}{}
	s.list = append(s.list, term)
}
