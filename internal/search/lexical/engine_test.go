package lexical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func chunk(id, text string, tokens int) domain.Chunk {
	return domain.Chunk{ID: id, Text: text, TokenCount: tokens}
}

func TestEngine_Index(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("d:0", "GMP gmp, (CAPA) -- review.", 5),
		chunk("d:1", "CAPA closed", 2),
	}

	idx := New().Index(chunks)

	assert.Equal(t, map[string]int{"gmp": 2, "capa": 1, "review": 1}, chunks[0].TermFrequency)
	assert.Equal(t, map[string]int{"capa": 1, "closed": 1}, chunks[1].TermFrequency)
	assert.Equal(t, 2, idx.Vocabulary["capa"])
	assert.Equal(t, 2, idx.Vocabulary["gmp"])
	assert.Equal(t, 6, idx.TotalTokens)
	assert.Same(t, &chunks[0], &idx.Chunks[0])
}

func TestEngine_Retrieve_ScoreOrdering(t *testing.T) {
	e := New()
	chunks := []domain.Chunk{
		chunk("d:0", "gmp once", 100),
		chunk("d:1", "gmp gmp gmp capa capa capa", 100),
	}
	idx := e.Index(chunks)

	got := e.Retrieve(idx, domain.Query{Terms: []string{"gmp", "capa"}}, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "d:1", got[0].ID)
	assert.InDelta(t, 2*math.Log(4)+100.0/1500, got[0].Score, 1e-9)
	assert.InDelta(t, math.Log(2)+100.0/1500, got[1].Score, 1e-9)
}

func TestEngine_Retrieve_DuplicateTermsCountOnce(t *testing.T) {
	e := New()
	idx := e.Index([]domain.Chunk{chunk("d:0", "gmp", 1)})

	one := e.Retrieve(idx, domain.Query{Terms: []string{"gmp"}}, 1)
	dup := e.Retrieve(idx, domain.Query{Terms: []string{"gmp", "GMP", "gmp."}}, 1)

	assert.Equal(t, one[0].Score, dup[0].Score)
}

func TestEngine_Retrieve_NoTermsUsesDensity(t *testing.T) {
	e := New()
	idx := e.Index([]domain.Chunk{
		chunk("d:0", "a b", 2),
		chunk("d:1", "a b c d e f", 6),
	})

	got := e.Retrieve(idx, domain.Query{}, 5)

	require.Len(t, got, 2)
	assert.Equal(t, "d:1", got[0].ID)
	assert.InDelta(t, 6.0/8.0, got[0].Score, 1e-9)
}

func TestEngine_Retrieve_StableTiesAndTruncation(t *testing.T) {
	e := New()
	idx := e.Index([]domain.Chunk{
		chunk("d:0", "x", 10),
		chunk("d:1", "x", 10),
		chunk("d:2", "x", 10),
	})

	got := e.Retrieve(idx, domain.Query{Terms: []string{"x"}}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "d:0", got[0].ID)
	assert.Equal(t, "d:1", got[1].ID)

	got = e.Retrieve(idx, domain.Query{Terms: []string{"x"}}, 0)
	assert.Len(t, got, 1)
}

func TestEngine_Retrieve_CoverageBonusCapped(t *testing.T) {
	e := New()
	idx := e.Index([]domain.Chunk{chunk("d:0", "nothing relevant", 3000)})

	got := e.Retrieve(idx, domain.Query{Terms: []string{"gmp"}}, 1)
	assert.InDelta(t, 0.5, got[0].Score, 1e-9)
}

func TestEngine_Retrieve_Empty(t *testing.T) {
	e := New()
	assert.Nil(t, e.Retrieve(nil, domain.Query{}, 3))
	assert.Nil(t, e.Retrieve(e.Index(nil), domain.Query{}, 3))
}
