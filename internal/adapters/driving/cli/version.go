package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("qadigest version %s (model %s)\n", version, domain.ModelID)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
