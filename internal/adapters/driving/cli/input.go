package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/normalisers"
)

var errNoInput = errors.New("no document given: pass a file or pipe text on stdin")

// readDocumentFile loads a file and normalises it by MIME type.
// A non-empty title overrides the extracted one.
func readDocumentFile(ctx context.Context, path, title string) (domain.DocumentInput, error) {
	if normaliserRegistry == nil {
		return domain.DocumentInput{}, errors.New("normaliser registry not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DocumentInput{}, fmt.Errorf("reading %s: %w", path, err)
	}

	raw := &domain.RawDocument{
		URI:      path,
		MIMEType: normalisers.MIMETypeForPath(path),
		Content:  data,
		Metadata: map[string]any{"title": title},
	}
	result, err := normaliserRegistry.Normalise(ctx, raw)
	if err != nil {
		return domain.DocumentInput{}, err
	}
	return result.Document, nil
}

// readDocumentStdin reads piped text. An interactive terminal is refused
// rather than blocking on a prompt the user never sees.
func readDocumentStdin(in io.Reader, title string) (domain.DocumentInput, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return domain.DocumentInput{}, errNoInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return domain.DocumentInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return domain.DocumentInput{}, errNoInput
	}
	return domain.DocumentInput{Content: string(data), Title: title}, nil
}
