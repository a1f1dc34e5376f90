package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/adapters/driving/mcp"
)

var mcpAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose summaries to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts a Model Context Protocol server over stdio, or over streamable
HTTP when --addr is set.

Tools:
  summarize_document   run the pipeline on document text
  get_summary          load a stored summary by id

Resource template:
  qadigest://summaries/{summaryId}

Client configuration:
  {
    "mcpServers": {
      "qadigest": {"command": "qadigest", "args": ["mcp", "serve"]}
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpAddr, "addr", "", "serve streamable HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{Summary: summaryService})
	if err != nil {
		return err
	}

	if mcpAddr == "" {
		return server.Run(cmd.Context())
	}

	cmd.Printf("MCP server listening on %s\n", mcpAddr)
	return server.RunHTTP(cmd.Context(), mcpAddr)
}
