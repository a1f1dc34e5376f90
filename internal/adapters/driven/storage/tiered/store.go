// Package tiered composes an in-process cache with a durable summary store.
package tiered

import (
	"context"
	"errors"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SummaryStore = (*Store)(nil)

// replacer is implemented by caches that can mirror a record verbatim.
type replacer interface {
	Replace(ctx context.Context, record *domain.SummaryRecord) error
}

// Store writes through to a cache and a durable store and reads cache first.
// Durable failures are logged and swallowed; the cache stays authoritative
// for the life of the process.
type Store struct {
	cache   driven.SummaryStore
	durable driven.SummaryStore
	metrics driven.MetricsRecorder
	log     *logger.Logger
}

// New creates a tiered store. durable may be nil, in which case only the cache is used.
func New(cache, durable driven.SummaryStore, metrics driven.MetricsRecorder, logg *logger.Logger) *Store {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		cache:   cache,
		durable: durable,
		metrics: metrics,
		log:     logg.With("store", "tiered"),
	}
}

// Save writes the record to the cache, then upserts it to the durable store.
// Only a cache failure is returned.
func (s *Store) Save(ctx context.Context, record *domain.SummaryRecord) error {
	if err := s.cache.Save(ctx, record); err != nil {
		return err
	}
	if s.durable == nil {
		return nil
	}

	if err := s.durable.Save(ctx, record); err != nil {
		s.metrics.StoreFailed("save")
		s.log.Warn("durable summary save failed, serving from cache",
			"summary_id", record.SummaryID, "error", err)
		return nil
	}

	// The durable store may hold an older created_at than a fresh cache.
	return s.mirror(ctx, record)
}

// mirror copies a durable record into the cache.
func (s *Store) mirror(ctx context.Context, record *domain.SummaryRecord) error {
	if r, ok := s.cache.(replacer); ok {
		return r.Replace(ctx, record)
	}
	return s.cache.Save(ctx, record)
}

// Get reads the cache, then the durable store, populating the cache on a durable hit.
// A durable read failure counts as a miss.
func (s *Store) Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	rec, err := s.cache.Get(ctx, summaryID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("summary cache read failed", "summary_id", summaryID, "error", err)
	}
	if s.durable == nil {
		return nil, domain.ErrNotFound
	}

	rec, err = s.durable.Get(ctx, summaryID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.metrics.StoreFailed("get")
			s.log.Warn("durable summary read failed", "summary_id", summaryID, "error", err)
		}
		return nil, domain.ErrNotFound
	}

	if err := s.mirror(ctx, rec); err != nil {
		s.log.Warn("summary cache fill failed", "summary_id", summaryID, "error", err)
	}
	return rec, nil
}

// Close closes both tiers.
func (s *Store) Close() error {
	var errs []error
	if err := s.cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.durable != nil {
		if err := s.durable.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
