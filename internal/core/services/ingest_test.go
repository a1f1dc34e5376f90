package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestNormaliseContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\r\n ", ""},
		{"crlf and blank runs", "  Hello\r\n\r\n\r\n\r\nWorld\t\tfoo  ", "Hello\n\nWorld foo"},
		{"lone carriage return", "a\rb", "a\nb"},
		{"control characters", "a\x00b\x07c", "a b c"},
		{"single blank line kept", "one\n\ntwo", "one\n\ntwo"},
		{"line breaks kept", "one\ntwo", "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseContent(tt.in))
		})
	}
}

func TestContentID(t *testing.T) {
	id := ContentID("batch record")

	assert.Len(t, id, 16)
	assert.Equal(t, id, ContentID("batch record"))
	assert.NotEqual(t, id, ContentID("batch record 2"))
}

func TestNormaliseDocument_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	doc, err := NormaliseDocument(domain.DocumentInput{Content: "  Some   content. "}, now)

	require.NoError(t, err)
	assert.Equal(t, "Some content.", doc.Content)
	assert.Equal(t, ContentID("Some content."), doc.DocID)
	assert.Equal(t, domain.DefaultTitle, doc.Title)
	assert.Equal(t, domain.DefaultVersion, doc.Version)
	assert.Equal(t, domain.DefaultDocType, doc.DocType)
	assert.Equal(t, "2026-03-04", doc.EffectiveDate)
	assert.Equal(t, domain.DefaultOwner, doc.Owner)
	assert.Equal(t, domain.DefaultSystemOfRecord, doc.SystemOfRecord)
}

func TestNormaliseDocument_Aliases(t *testing.T) {
	in := domain.DocumentInput{
		Text:                "Alias content",
		ID:                  "SOP-042",
		Title:               "Cleaning SOP",
		Version:             "3.2",
		Type:                "SOP",
		EffectiveDateCamel:  "2025-01-15",
		Owner:               "QA",
		SystemOfRecordCamel: "Veeva",
	}

	doc, err := NormaliseDocument(in, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Alias content", doc.Content)
	assert.Equal(t, "SOP-042", doc.DocID)
	assert.Equal(t, "Cleaning SOP", doc.Title)
	assert.Equal(t, "3.2", doc.Version)
	assert.Equal(t, "SOP", doc.DocType)
	assert.Equal(t, "2025-01-15", doc.EffectiveDate)
	assert.Equal(t, "QA", doc.Owner)
	assert.Equal(t, "Veeva", doc.SystemOfRecord)
}

func TestNormaliseDocument_CanonicalFieldsWin(t *testing.T) {
	in := domain.DocumentInput{
		Content: "canonical",
		Text:    "alias",
		DocID:   "doc-1",
		ID:      "doc-2",
		DocType: "Protocol",
		Type:    "SOP",
	}

	doc, err := NormaliseDocument(in, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "canonical", doc.Content)
	assert.Equal(t, "doc-1", doc.DocID)
	assert.Equal(t, "Protocol", doc.DocType)
}

func TestNormaliseDocument_MissingContent(t *testing.T) {
	for _, in := range []domain.DocumentInput{
		{},
		{Content: "   \n\t "},
		{Title: "Only a title"},
	} {
		_, err := NormaliseDocument(in, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "content", verr.Field)
		assert.Equal(t, "Document content is required", verr.Message)
	}
}
