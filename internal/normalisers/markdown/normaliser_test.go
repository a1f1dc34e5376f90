package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestNormaliser_Metadata(t *testing.T) {
	n := New()

	assert.Equal(t, []string{"text/markdown", "text/x-markdown"}, n.SupportedMIMETypes())
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise(t *testing.T) {
	content := "# Cleaning SOP\n\nIntro **bold** text with `code` and [link](http://x).\n## Scope\nApplies to all sites.\n\n- item one\n- item two\n\n```\ncode block\n```\n"
	raw := &domain.RawDocument{URI: "/docs/cleaning.md", MIMEType: "text/markdown", Content: []byte(content)}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Cleaning SOP", result.Document.Title)
	want := "# Cleaning SOP\n\nIntro bold text with code and link.\n\n## Scope\n\nApplies to all sites.\n\nitem one\nitem two"
	assert.Equal(t, want, result.Document.Content)
}

func TestNormalise_TitleFallsBackToFileName(t *testing.T) {
	raw := &domain.RawDocument{URI: "/docs/deviation_report.md", Content: []byte("## Summary\n\nNo H1 here.")}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "deviation report", result.Document.Title)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"image dropped", "See ![diagram](a.png) here", "See  here"},
		{"blockquote", "> quoted line", "quoted line"},
		{"horizontal rule", "above\n\n---\n\nbelow", "above\n\nbelow"},
		{"closing hashes", "## Scope ##\nText", "## Scope\n\nText"},
		{"numbered heading kept", "1. Purpose\n\nText", "1. Purpose\n\nText"},
		{"crlf", "a\r\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdown(tt.in))
		})
	}
}
