// Package cli provides the cobra command tree for qadigest.
package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
	"github.com/custodia-labs/qadigest/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Config holds the services the commands run against.
type Config struct {
	Summary     driving.SummaryService
	Settings    driving.SettingsService
	Normalisers driven.NormaliserRegistry
	Log         *logger.Logger

	// Gatherer backs the /metrics route of the serve command.
	Gatherer prometheus.Gatherer

	Server domain.ServerSettings
}

var (
	summaryService     driving.SummaryService
	settingsService    driving.SettingsService
	normaliserRegistry driven.NormaliserRegistry
	cliLog             = logger.Nop()
	metricsGatherer    prometheus.Gatherer
	serverSettings     = domain.DefaultSettings().Server
)

var rootCmd = &cobra.Command{
	Use:   "qadigest",
	Short: "Cited summaries of pharma QA documents",
	Long: `qadigest summarises SOPs, validation plans and other pharma QA documents
for a chosen audience. Every summary bullet is cited back to the chunk of
the document it came from, and each summary is checked by guardrails and
given a confidence score.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetConfig injects the services used by every command.
func SetConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	summaryService = cfg.Summary
	settingsService = cfg.Settings
	normaliserRegistry = cfg.Normalisers
	metricsGatherer = cfg.Gatherer
	serverSettings = cfg.Server
	if cfg.Log != nil {
		cliLog = cfg.Log
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
