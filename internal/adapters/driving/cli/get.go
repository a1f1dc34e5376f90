package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [summary-id]",
	Short: "Show a stored summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the record as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	record, err := summaryService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("summary %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}

	if getJSON {
		return outputJSON(cmd, record)
	}
	renderRecord(cmd.OutOrStdout(), record)
	return nil
}
