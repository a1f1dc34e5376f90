// Package chunker provides a paragraph-aware, token-bounded chunking processor.
package chunker

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// DefaultSection labels chunks that appear before any heading.
const DefaultSection = "General"

// TokensPerPage is the token count used to estimate page numbers.
const TokensPerPage = 400

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

	// headingPrefix matches "# Title", "1. Title", "2.3 Title", "4) Title" and "Section 5 Title".
	headingPrefix = regexp.MustCompile(`(?i)^(?:#{1,6}[ \t]*|\d+(?:\.\d+)*[.)][ \t]+|\d+(?:\.\d+)+[ \t]+|section[ \t]+\d+(?:\.\d+)*[.:)]?(?:[ \t]+|$))`)
)

// Processor splits document content into overlapping chunks that follow
// paragraph boundaries. It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap > 0 {
			p.overlap = overlap
		}
	}
}

// WithConfig applies a request's chunk configuration.
func WithConfig(cfg domain.ChunkConfig) Option {
	return func(p *Processor) {
		WithChunkSize(cfg.ChunkSize)(p)
		WithOverlap(cfg.ChunkOverlap)(p)
	}
}

// New creates a new chunker processor with the given options.
// Sizes are clamped to the allowed chunking bounds.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	cfg := domain.ChunkConfig{ChunkSize: p.chunkSize, ChunkOverlap: p.overlap}.Normalised()
	p.chunkSize = cfg.ChunkSize
	p.overlap = cfg.ChunkOverlap

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Config returns the effective chunk configuration.
func (p *Processor) Config() domain.ChunkConfig {
	return domain.ChunkConfig{ChunkSize: p.chunkSize, ChunkOverlap: p.overlap}
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	s := &splitter{
		docID:   doc.DocID,
		section: DefaultSection,
		overlap: p.overlap,
	}

	for _, para := range paragraphBreak.Split(doc.Content, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if label, ok := headingLabel(para); ok {
			if 2*s.bufferTokens() > p.chunkSize {
				s.flush()
			}
			s.section = label
			continue
		}

		tokens := strings.Fields(para)
		if s.bufferTokens() > 0 && s.bufferTokens()+len(tokens) > p.chunkSize {
			s.flush()
		}
		s.paragraphs = append(s.paragraphs, para)
		s.tokens = append(s.tokens, tokens...)
	}
	s.flush()

	return s.chunks, nil
}

// splitter holds the running state of one Process call.
type splitter struct {
	docID   string
	section string
	overlap int
	cursor  int

	paragraphs []string
	tokens     []string
	chunks     []domain.Chunk
}

func (s *splitter) bufferTokens() int {
	return len(s.tokens)
}

func (s *splitter) flush() {
	if len(s.paragraphs) == 0 {
		return
	}

	count := len(s.tokens)
	page := int(math.Round(float64(s.cursor)/TokensPerPage)) + 1
	if page < 1 {
		page = 1
	}

	s.chunks = append(s.chunks, domain.Chunk{
		ID:         fmt.Sprintf("%s:%d", s.docID, len(s.chunks)),
		DocID:      s.docID,
		Section:    s.section,
		Page:       page,
		Text:       strings.Join(s.paragraphs, " "),
		Tokens:     s.tokens,
		TokenCount: count,
		StartToken: s.cursor,
		EndToken:   s.cursor + count,
	})

	s.cursor += max(count-s.overlap, 0)
	s.paragraphs = nil
	s.tokens = nil
}

// headingLabel reports whether a paragraph is a heading and returns its section label.
// The label is the text after the heading marker, cut at the first '.' or ':'.
func headingLabel(para string) (string, bool) {
	loc := headingPrefix.FindStringIndex(para)
	if loc == nil {
		return "", false
	}

	label := para[loc[1]:]
	if i := strings.IndexAny(label, ".:"); i >= 0 {
		label = label[:i]
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = strings.TrimSpace(strings.TrimRight(para, ".:"))
	}
	return label, true
}
