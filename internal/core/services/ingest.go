package services

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// docIDLength is the number of hex characters kept from the content hash.
const docIDLength = 16

var (
	multiSpace   = regexp.MustCompile(` {2,}`)
	excessBreaks = regexp.MustCompile(`\n{3,}`)
)

// NormaliseContent cleans raw document text.
// Line endings become LF and every other control character becomes a space.
// Runs of spaces collapse, lines are trimmed and at most one blank line is kept.
func NormaliseContent(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' {
			return ' '
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")

	return strings.TrimSpace(excessBreaks.ReplaceAllString(s, "\n\n"))
}

// ContentID derives a stable document id from normalised content.
func ContentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:docIDLength]
}

// NormaliseDocument validates caller input and fills defaults.
// now supplies the default effective date.
func NormaliseDocument(in domain.DocumentInput, now time.Time) (domain.Document, error) {
	content := NormaliseContent(firstNonEmpty(in.Content, in.Text))
	if content == "" {
		return domain.Document{}, domain.ErrContentRequired
	}

	docID := firstNonEmpty(in.DocID, in.ID)
	if docID == "" {
		docID = ContentID(content)
	}

	return domain.Document{
		DocID:          docID,
		Title:          orDefault(in.Title, domain.DefaultTitle),
		Version:        orDefault(in.Version, domain.DefaultVersion),
		DocType:        orDefault(firstNonEmpty(in.DocType, in.Type), domain.DefaultDocType),
		EffectiveDate:  orDefault(firstNonEmpty(in.EffectiveDate, in.EffectiveDateCamel), now.Format(time.DateOnly)),
		Owner:          orDefault(in.Owner, domain.DefaultOwner),
		SystemOfRecord: orDefault(firstNonEmpty(in.SystemOfRecord, in.SystemOfRecordCamel), domain.DefaultSystemOfRecord),
		Content:        content,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
