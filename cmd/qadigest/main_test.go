package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/logger"
)

type countingMetrics struct {
	driven.NopMetrics
	failures []string
}

func (m *countingMetrics) StoreFailed(op string) { m.failures = append(m.failures, op) }

func TestLogMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"configured", []string{"summarize", "plan.md"}, "production"},
		{"short flag", []string{"-v", "summarize"}, logger.ModeVerbose},
		{"long flag", []string{"get", "id", "--verbose"}, logger.ModeVerbose},
		{"after terminator", []string{"summarize", "--", "-v"}, "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logMode("production", tt.args))
		})
	}
}

func TestOpenStore_Memory(t *testing.T) {
	store, err := openStore(domain.StoreSettings{Driver: domain.StoreDriverMemory}, driven.NopMetrics{}, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	rec := &domain.SummaryRecord{SummaryID: "s1", DocID: "d1", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.DocID)
}

func TestOpenStore_SQLitePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.StoreSettings{Driver: domain.StoreDriverSQLite, SQLiteDir: dir}
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	store, err := openStore(cfg, driven.NopMetrics{}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &domain.SummaryRecord{SummaryID: "s1", DocID: "d1", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, store.Close())

	reopened, err := openStore(cfg, driven.NopMetrics{}, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.DocID)
}

func TestOpenStore_PostgresFallsBackToCache(t *testing.T) {
	metrics := &countingMetrics{}
	cfg := domain.StoreSettings{
		Driver:      domain.StoreDriverPostgres,
		PostgresDSN: "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1",
	}

	store, err := openStore(cfg, metrics, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, []string{"open"}, metrics.failures)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.SummaryRecord{SummaryID: "s1"}))
	_, err = store.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := openStore(domain.StoreSettings{Driver: "redis"}, driven.NopMetrics{}, logger.Nop())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}
