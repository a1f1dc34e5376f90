// Command qadigest produces cited, role-aware summaries of pharma QA documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/qadigest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/qadigest/internal/adapters/driven/metrics/prom"
	"github.com/custodia-labs/qadigest/internal/adapters/driving/cli"
	"github.com/custodia-labs/qadigest/internal/core/services"
	"github.com/custodia-labs/qadigest/internal/logger"
	"github.com/custodia-labs/qadigest/internal/normalisers"
	"github.com/custodia-labs/qadigest/internal/postprocessors"
	"github.com/custodia-labs/qadigest/internal/search/lexical"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore(os.Getenv("QADIGEST_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	log, err := logger.New(logMode(settings.LogMode, os.Args[1:]))
	if err != nil {
		return err
	}
	defer log.Sync()
	logger.SetDefault(log)

	recorder := prom.New(prometheus.DefaultRegisterer)

	store, err := openStore(settings.Store, recorder, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing summary store", "error", err)
		}
	}()

	summaryService := services.NewSummaryService(
		postprocessors.NewDefaultFactory(settings.Chunking),
		lexical.New(),
		store,
		services.WithLogger(log),
		services.WithMetrics(recorder),
	)

	cli.SetVersion(version)
	cli.SetConfig(&cli.Config{
		Summary:     summaryService,
		Settings:    settingsService,
		Normalisers: normalisers.NewDefaultRegistry(),
		Log:         log,
		Gatherer:    prometheus.DefaultGatherer,
		Server:      settings.Server,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}

// logMode upgrades the configured mode to verbose when --verbose is passed.
// The logger is built before cobra parses flags, so the flag is checked here.
func logMode(configured string, args []string) string {
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return logger.ModeVerbose
		}
	}
	return configured
}
