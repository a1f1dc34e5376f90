package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

var (
	summarizeRole            string
	summarizeLens            string
	summarizeDetail          string
	summarizeQuery           string
	summarizeTitle           string
	summarizeTags            []string
	summarizeSections        []string
	summarizeChunkSize       int
	summarizeChunkOverlap    int
	summarizeJSON            bool
	summarizeShowDiagnostics bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarise a QA document",
	Long: `Summarises a document for an audience and prints the cited summary.

The document is read from the given file (plain text, Markdown or HTML) or
from stdin when no file is given.

Roles:   Auditor, QA Lead, Engineer, New Hire
Lenses:  Regulatory, Risk & CAPA, Training, Timeline/Change log, Testing & Evidence
Detail:  Brief, Standard, Deep Dive

Examples:
  qadigest summarize sop-042.md --role Auditor --lens "Risk & CAPA"
  cat plan.txt | qadigest summarize --detail brief --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	f := summarizeCmd.Flags()
	f.StringVarP(&summarizeRole, "role", "r", "", "audience role (default QA Lead)")
	f.StringVarP(&summarizeLens, "lens", "l", "", "summary lens (default Regulatory)")
	f.StringVarP(&summarizeDetail, "detail", "d", "", "detail level (default Standard)")
	f.StringVarP(&summarizeQuery, "query", "q", "", "free-text focus for retrieval")
	f.StringVar(&summarizeTitle, "title", "", "document title")
	f.StringSliceVar(&summarizeTags, "tag", nil, "extra retrieval term (repeatable)")
	f.StringSliceVar(&summarizeSections, "section", nil, "section name to favour (repeatable)")
	f.IntVar(&summarizeChunkSize, "chunk-size", 0, "chunk size in tokens (800-2000)")
	f.IntVar(&summarizeChunkOverlap, "chunk-overlap", 0, "chunk overlap in tokens (100-400)")
	f.BoolVar(&summarizeJSON, "json", false, "output the full result as JSON")
	f.BoolVar(&summarizeShowDiagnostics, "show-diagnostics", false, "print pipeline diagnostics")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	var (
		doc domain.DocumentInput
		err error
	)
	if len(args) == 1 {
		doc, err = readDocumentFile(cmd.Context(), args[0], summarizeTitle)
	} else {
		doc, err = readDocumentStdin(cmd.InOrStdin(), summarizeTitle)
	}
	if err != nil {
		return err
	}

	req := domain.SummaryRequest{
		Document: doc,
		Mode: domain.ModeInput{
			Role:   summarizeRole,
			Lens:   summarizeLens,
			Detail: summarizeDetail,
		},
		Query: summarizeQuery,
		Filters: domain.Filters{
			Tags:     summarizeTags,
			Sections: summarizeSections,
		},
		ChunkConfig: domain.ChunkConfig{
			ChunkSize:    summarizeChunkSize,
			ChunkOverlap: summarizeChunkOverlap,
		},
	}

	result, err := summaryService.Summarize(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	if summarizeJSON {
		return outputJSON(cmd, result)
	}
	renderResult(cmd.OutOrStdout(), result, summarizeShowDiagnostics)
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
