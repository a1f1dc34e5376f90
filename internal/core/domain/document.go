package domain

// Document defaults applied during normalisation.
const (
	DefaultTitle          = "Untitled Document"
	DefaultVersion        = "1.0"
	DefaultDocType        = "Document"
	DefaultOwner          = "unknown"
	DefaultSystemOfRecord = "unspecified"
)

// DocumentInput is a document as supplied by a caller, before normalisation.
// Both the canonical and the alias fields are accepted; canonical fields win.
type DocumentInput struct {
	Content string `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`

	DocID string `json:"doc_id,omitempty"`
	ID    string `json:"id,omitempty"`

	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`

	DocType string `json:"doc_type,omitempty"`
	Type    string `json:"type,omitempty"`

	EffectiveDate      string `json:"effective_date,omitempty"`
	EffectiveDateCamel string `json:"effectiveDate,omitempty"`

	Owner string `json:"owner,omitempty"`

	SystemOfRecord      string `json:"system_of_record,omitempty"`
	SystemOfRecordCamel string `json:"systemOfRecord,omitempty"`
}

// Document is the canonical, normalised document that the pipeline chunks.
// It is immutable once chunked.
type Document struct {
	DocID          string `json:"doc_id"`
	Title          string `json:"title"`
	Version        string `json:"version"`
	DocType        string `json:"doc_type"`
	EffectiveDate  string `json:"effective_date"`
	Owner          string `json:"owner"`
	SystemOfRecord string `json:"system_of_record"`

	// Content is the cleaned text. Paragraph breaks are kept as blank lines.
	Content string `json:"content"`
}

// Chunk is a token-bounded slice of a document.
// Chunks are created by the chunker and read by the indexer and retriever.
type Chunk struct {
	// ID is "<doc_id>:<ordinal>".
	ID string `json:"id"`

	DocID string `json:"doc_id"`

	// Section is the last heading seen before the chunk was flushed.
	Section string `json:"section"`

	// Page is estimated from the cumulative token cursor.
	Page int `json:"page"`

	Text       string   `json:"text"`
	Tokens     []string `json:"-"`
	TokenCount int      `json:"token_count"`
	StartToken int      `json:"start_token"`
	EndToken   int      `json:"end_token"`

	// TermFrequency maps normalised tokens to their count in this chunk.
	// It is filled in by the indexer.
	TermFrequency map[string]int `json:"-"`
}

// Chunking bounds.
const (
	DefaultChunkSize    = 1200
	MinChunkSize        = 800
	MaxChunkSize        = 2000
	DefaultChunkOverlap = 180
	MinChunkOverlap     = 100
	MaxChunkOverlap     = 400
)

// ChunkConfig controls chunk sizing. Values are in tokens.
type ChunkConfig struct {
	ChunkSize    int `json:"chunkSize"`
	ChunkOverlap int `json:"chunkOverlap"`
}

// Normalised returns a copy with defaults applied to zero values
// and every field clamped to its allowed range.
func (c ChunkConfig) Normalised() ChunkConfig {
	out := c
	if out.ChunkSize <= 0 {
		out.ChunkSize = DefaultChunkSize
	}
	if out.ChunkOverlap <= 0 {
		out.ChunkOverlap = DefaultChunkOverlap
	}
	out.ChunkSize = clamp(out.ChunkSize, MinChunkSize, MaxChunkSize)
	out.ChunkOverlap = clamp(out.ChunkOverlap, MinChunkOverlap, MaxChunkOverlap)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RawDocument represents opaque file bytes before format normalisation.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-supplied key-value pairs such as "title".
	Metadata map[string]any
}
