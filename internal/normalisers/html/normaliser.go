package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise extracts paragraphs of readable text from HTML.
// Headings become "# " paragraphs and the title comes from <title>.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)

	return &driven.NormaliseResult{
		Document: domain.DocumentInput{
			Content: stripHTML(content),
			Title:   extractHTMLTitle(content, raw.URI),
		},
	}, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag       = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	droppedTags    = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	htmlComments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	headingTags    = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	blockElements  = regexp.MustCompile(`(?i)</?(p|div|li|tr|blockquote|pre|table|section|article|ul|ol)[^>]*>`)
	lineBreakTags  = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags        = regexp.MustCompile(`<[^>]+>`)
	multiSpaces    = regexp.MustCompile(`[ \t]+`)
	multiNewlines  = regexp.MustCompile(`\n{3,}`)
	headingNewline = regexp.MustCompile(`\s*\n\s*`)
)

// extractHTMLTitle reads the <title> tag or falls back to the file name.
func extractHTMLTitle(content, uri string) string {
	if m := titleTag.FindStringSubmatch(content); len(m) > 1 {
		title := strings.TrimSpace(html.UnescapeString(allTags.ReplaceAllString(m[1], "")))
		if title != "" {
			return title
		}
	}
	return plaintext.TitleFromURI(uri)
}

// stripHTML removes markup and keeps block boundaries as blank lines.
func stripHTML(content string) string {
	content = droppedTags.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = headingTags.ReplaceAllStringFunc(content, func(h string) string {
		inner := headingTags.FindStringSubmatch(h)[1]
		inner = allTags.ReplaceAllString(inner, "")
		inner = headingNewline.ReplaceAllString(strings.TrimSpace(inner), " ")
		return "\n\n# " + inner + "\n\n"
	})

	content = blockElements.ReplaceAllString(content, "\n\n")
	content = lineBreakTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")

	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
