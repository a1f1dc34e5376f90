package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestNormaliser_Metadata(t *testing.T) {
	n := New()

	assert.Contains(t, n.SupportedMIMETypes(), "text/plain")
	assert.Equal(t, 5, n.Priority())
}

func TestNormalise(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/docs/batch_release-sop.txt",
		MIMEType: "text/plain",
		Content:  []byte("Purpose\n\nRelease batches after QA review."),
	}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Purpose\n\nRelease batches after QA review.", result.Document.Content)
	assert.Equal(t, "batch release sop", result.Document.Title)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTitleFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"", ""},
		{"notes.txt", "notes"},
		{"/a/b/change_control-log.md", "change control log"},
		{"README", "README"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleFromURI(tt.uri), tt.uri)
	}
}
