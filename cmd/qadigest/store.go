package main

import (
	"fmt"

	"github.com/custodia-labs/qadigest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/qadigest/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/qadigest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/qadigest/internal/adapters/driven/storage/tiered"
	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/logger"
)

// openStore builds the in-process cache and the configured durable tier.
// An unreachable Postgres leaves the cache serving alone.
func openStore(cfg domain.StoreSettings, metrics driven.MetricsRecorder, log *logger.Logger) (*tiered.Store, error) {
	var durable driven.SummaryStore

	switch cfg.Driver {
	case domain.StoreDriverMemory:
	case domain.StoreDriverSQLite:
		s, err := sqlite.NewStore(cfg.SQLiteDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		log.Info("summary store ready", "driver", cfg.Driver, "path", s.Path())
		durable = s.SummaryStore()
	case domain.StoreDriverPostgres:
		s, err := postgres.Open(cfg.PostgresDSN, log)
		if err != nil {
			log.Warn("postgres unavailable, serving summaries from cache only", "error", err)
			metrics.StoreFailed("open")
			break
		}
		durable = s
	default:
		return nil, fmt.Errorf("%w: store driver %q", domain.ErrUnsupportedType, cfg.Driver)
	}

	return tiered.New(memory.NewSummaryStore(), durable, metrics, log), nil
}
