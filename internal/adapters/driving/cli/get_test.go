package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

func TestGetCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t, &mockSummaryService{})
	rootCmd.SetArgs([]string{"get"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestGetCmd_RendersRecord(t *testing.T) {
	rec := sampleRecord()
	svc := &mockSummaryService{record: &rec}
	buf := setupTestServices(t, svc)
	rootCmd.SetArgs([]string{"get", "sum-1"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "sum-1", svc.lastID)
	out := buf.String()
	assert.Contains(t, out, "Auditor | Regulatory | Standard | sum-1")
	assert.Contains(t, out, "Confidence: 0.65")
	assert.Contains(t, out, "Citation density: 1.00")
}

func TestGetCmd_JSON(t *testing.T) {
	rec := sampleRecord()
	buf := setupTestServices(t, &mockSummaryService{record: &rec})
	rootCmd.SetArgs([]string{"get", "sum-1", "--json"})

	require.NoError(t, rootCmd.Execute())

	var got domain.SummaryRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rec.SummaryID, got.SummaryID)
	assert.Equal(t, rec.Citations, got.Citations)
}

func TestGetCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), "summary sum-9 not found"},
		{"store failure", errors.New("disk full"), "failed to load summary: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t, &mockSummaryService{err: tt.err})
			rootCmd.SetArgs([]string{"get", "sum-9"})

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
