package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", domain.DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(1500))
		if p.chunkSize != 1500 {
			t.Errorf("expected chunkSize 1500, got %d", p.chunkSize)
		}
	})

	t.Run("sizes are clamped", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(1000))
		if p.chunkSize != domain.MinChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.MinChunkSize, p.chunkSize)
		}
		if p.overlap != domain.MaxChunkOverlap {
			t.Errorf("expected overlap %d, got %d", domain.MaxChunkOverlap, p.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithConfig(domain.ChunkConfig{}))
		if p.Config() != (domain.ChunkConfig{ChunkSize: 1200, ChunkOverlap: 180}) {
			t.Errorf("expected default config, got %+v", p.Config())
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()
	doc := &domain.Document{DocID: "test-doc", Content: "  "}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_SectionsAndHeadings(t *testing.T) {
	p := New()
	doc := &domain.Document{
		DocID:   "vp",
		Content: "Section 1. Overview.\n\nThis plan validates equipment.\n\nSection 2. Testing. IQ and OQ complete.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	c := chunks[0]
	if c.ID != "vp:0" {
		t.Errorf("expected id vp:0, got %s", c.ID)
	}
	if c.Text != "This plan validates equipment." {
		t.Errorf("unexpected text %q", c.Text)
	}
	if c.Section != "Testing" {
		t.Errorf("expected section Testing, got %s", c.Section)
	}
	if c.Page != 1 || c.StartToken != 0 || c.EndToken != 4 || c.TokenCount != 4 {
		t.Errorf("unexpected position %+v", c)
	}
}

func TestProcessor_Process_DefaultSection(t *testing.T) {
	p := New()
	doc := &domain.Document{DocID: "d", Content: "Plain paragraph without headings."}

	chunks, _ := p.Process(context.Background(), doc, nil)
	if len(chunks) != 1 || chunks[0].Section != DefaultSection {
		t.Fatalf("expected one General chunk, got %+v", chunks)
	}
}

func paragraph(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestProcessor_Process_FlushOnSize(t *testing.T) {
	p := New(WithChunkSize(800), WithOverlap(100))
	doc := &domain.Document{
		DocID: "big",
		Content: strings.Join([]string{
			paragraph("alpha", 500),
			paragraph("beta", 500),
			paragraph("gamma", 200),
		}, "\n\n"),
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	if chunks[0].TokenCount != 500 {
		t.Errorf("expected first chunk of 500 tokens, got %d", chunks[0].TokenCount)
	}
	if chunks[1].TokenCount != 700 {
		t.Errorf("expected second chunk of 700 tokens, got %d", chunks[1].TokenCount)
	}

	// cursor advances by 500-100
	if chunks[1].StartToken != 400 {
		t.Errorf("expected start token 400, got %d", chunks[1].StartToken)
	}
	if chunks[1].Page != 2 {
		t.Errorf("expected page 2, got %d", chunks[1].Page)
	}
	if chunks[1].ID != "big:1" {
		t.Errorf("expected id big:1, got %s", chunks[1].ID)
	}
}

func TestProcessor_Process_LongParagraphNotSplit(t *testing.T) {
	p := New(WithChunkSize(800))
	doc := &domain.Document{DocID: "long", Content: paragraph("word", 2500)}

	chunks, _ := p.Process(context.Background(), doc, nil)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].TokenCount != 2500 {
		t.Errorf("expected 2500 tokens, got %d", chunks[0].TokenCount)
	}
}

func TestProcessor_Process_FlushOnHeadingWhenHalfFull(t *testing.T) {
	p := New(WithChunkSize(800))
	doc := &domain.Document{
		DocID: "h",
		Content: strings.Join([]string{
			"# Scope",
			paragraph("scope", 450),
			"# Training",
			paragraph("train", 10),
		}, "\n\n"),
	}

	chunks, _ := p.Process(context.Background(), doc, nil)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Section != "Scope" || chunks[1].Section != "Training" {
		t.Errorf("unexpected sections %q, %q", chunks[0].Section, chunks[1].Section)
	}
}

func TestProcessor_Process_HeadingBelowHalfKeepsBuffer(t *testing.T) {
	p := New(WithChunkSize(800))
	doc := &domain.Document{
		DocID: "h",
		Content: strings.Join([]string{
			"1. Purpose",
			paragraph("purpose", 100),
			"2. Scope",
			paragraph("scope", 100),
		}, "\n\n"),
	}

	chunks, _ := p.Process(context.Background(), doc, nil)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].TokenCount != 200 {
		t.Errorf("expected 200 tokens, got %d", chunks[0].TokenCount)
	}
}

func TestHeadingLabel(t *testing.T) {
	tests := []struct {
		in      string
		label   string
		heading bool
	}{
		{"Section 1. Overview.", "Overview", true},
		{"section 3: Deviations & CAPA", "Deviations & CAPA", true},
		{"## Risk Assessment", "Risk Assessment", true},
		{"4.2 Acceptance Criteria: summary", "Acceptance Criteria", true},
		{"5) Approvals", "Approvals", true},
		{"Section 7", "Section 7", true},
		{"This plan validates equipment.", "", false},
		{"2024 was a good year.", "", false},
	}

	for _, tt := range tests {
		label, ok := headingLabel(tt.in)
		if ok != tt.heading {
			t.Errorf("%q: expected heading=%v, got %v", tt.in, tt.heading, ok)
			continue
		}
		if label != tt.label {
			t.Errorf("%q: expected label %q, got %q", tt.in, tt.label, label)
		}
	}
}
