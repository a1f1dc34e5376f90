// Package markdown provides a Normaliser for Markdown documents.
// Headings are kept as their own paragraphs so the chunker can label sections.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	codeBlock     = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingLine   = regexp.MustCompile(`(?m)^[ \t]*(#{1,6}[ \t]+.*?)[ \t]*#*[ \t]*$`)
	blockquote    = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	horizontal    = regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`)
	bulletMarker  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	emphasis      = regexp.MustCompile(`(\*\*|__|\*)`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	firstH1       = regexp.MustCompile(`(?m)^[ \t]*#[ \t]+(.+?)[ \t]*#*[ \t]*$`)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise simplifies markdown formatting to plain paragraphs.
// The title is the first H1 heading, falling back to the file name.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	title := plaintext.TitleFromURI(raw.URI)
	if m := firstH1.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(m[1])
	}

	return &driven.NormaliseResult{
		Document: domain.DocumentInput{
			Content: stripMarkdown(content),
			Title:   title,
		},
	}, nil
}

// stripMarkdown removes inline formatting and isolates headings.
func stripMarkdown(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = horizontal.ReplaceAllString(content, "")
	content = headingLine.ReplaceAllString(content, "\n$1\n")
	content = blockquote.ReplaceAllString(content, "")
	content = bulletMarker.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "")
	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
