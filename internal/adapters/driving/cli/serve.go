package cli

import (
	"errors"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/qadigest/internal/adapters/driving/http"
	"github.com/custodia-labs/qadigest/internal/adapters/driving/http/handlers"
	"github.com/custodia-labs/qadigest/internal/adapters/driving/http/middleware"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the summary HTTP API.

Routes:
  POST /api/summaries        run the pipeline and store the summary
  GET  /api/summaries?summary_id=ID
  GET  /api/summaries/:id    load a stored summary
  GET  /healthz              liveness
  GET  /metrics              Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	server := httpapi.NewServer(newRouterConfig())

	addr := serveAddr
	if addr == "" {
		addr = serverSettings.Addr
	}
	cmd.Printf("HTTP API listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}

func newRouterConfig() httpapi.RouterConfig {
	return httpapi.RouterConfig{
		Log:            cliLog,
		SummaryHandler: handlers.NewSummaryHandler(cliLog, summaryService),
		HealthHandler:  handlers.NewHealthHandler(),
		Gatherer:       metricsGatherer,
		CORSOrigins:    serverSettings.CORSOrigins,
		RateLimiter:    middleware.NewRateLimiter(serverSettings.RateLimit, serverSettings.Burst),
	}
}
