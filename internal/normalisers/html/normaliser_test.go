package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestNormaliser_Metadata(t *testing.T) {
	n := New()

	assert.Contains(t, n.SupportedMIMETypes(), "text/html")
	assert.Contains(t, n.SupportedMIMETypes(), "application/xhtml+xml")
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise(t *testing.T) {
	content := "<html><head><title>Batch &amp; Release</title></head><body>" +
		"<h1>Purpose</h1><p>Defines the <b>release</b> flow.</p>" +
		"<p>Line one<br>Line two</p><script>x()</script></body></html>"
	raw := &domain.RawDocument{URI: "/docs/release.html", MIMEType: "text/html", Content: []byte(content)}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Batch & Release", result.Document.Title)
	assert.Equal(t, "# Purpose\n\nDefines the release flow.\n\nLine one\nLine two", result.Document.Content)
}

func TestNormalise_TitleFallsBackToFileName(t *testing.T) {
	raw := &domain.RawDocument{URI: "/docs/capa-plan.html", Content: []byte("<p>Body</p>")}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "capa plan", result.Document.Title)
	assert.Equal(t, "Body", result.Document.Content)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"comments and styles", "<!-- note --><style>p{}</style><p>Text</p>", "Text"},
		{"entities", "<p>5 &lt; 6 &amp; ok</p>", "5 < 6 & ok"},
		{"nested heading markup", "<h2>Risk <em>and</em>\n CAPA</h2><p>x</p>", "# Risk and CAPA\n\nx"},
		{"list items", "<ul><li>one</li><li>two</li></ul>", "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}
