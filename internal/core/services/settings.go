package services

import (
	"fmt"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr   = "server.addr"
	keyRateLimit    = "server.rate_limit"
	keyBurst        = "server.burst"
	keyCORSOrigins  = "server.cors_origins"
	keyStoreDriver  = "store.driver"
	keySQLiteDir    = "store.sqlite_dir"
	keyPostgresDSN  = "store.postgres_dsn"
	keyLogMode      = "log.mode"
	keyChunkSize    = "chunking.chunk_size"
	keyChunkOverlap = "chunking.chunk_overlap"
)

// SettingsService reads and writes application settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

var _ driving.SettingsService = (*SettingsService)(nil)

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Addr:        s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:   s.getFloat(keyRateLimit, defaults.Server.RateLimit),
			Burst:       s.getInt(keyBurst, defaults.Server.Burst),
			CORSOrigins: s.getStringSlice(keyCORSOrigins, defaults.Server.CORSOrigins),
		},
		Store: domain.StoreSettings{
			Driver:      s.getStoreDriver(defaults.Store.Driver),
			SQLiteDir:   s.configStore.GetString(keySQLiteDir),
			PostgresDSN: s.configStore.GetString(keyPostgresDSN),
		},
		LogMode: s.getString(keyLogMode, defaults.LogMode),
		Chunking: domain.ChunkConfig{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Chunking.ChunkOverlap),
		}.Normalised(),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyServerAddr, settings.Server.Addr},
		{keyRateLimit, settings.Server.RateLimit},
		{keyBurst, settings.Server.Burst},
		{keyCORSOrigins, settings.Server.CORSOrigins},
		{keyStoreDriver, settings.Store.Driver.String()},
		{keySQLiteDir, settings.Store.SQLiteDir},
		{keyLogMode, settings.LogMode},
		{keyChunkSize, settings.Chunking.ChunkSize},
		{keyChunkOverlap, settings.Chunking.ChunkOverlap},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// The DSN carries credentials; only write it when provided.
	if settings.Store.PostgresDSN != "" {
		if err := s.configStore.Set(keyPostgresDSN, settings.Store.PostgresDSN); err != nil {
			return fmt.Errorf("save %s: %w", keyPostgresDSN, err)
		}
	}

	return s.configStore.Save()
}

// Validate checks the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if raw := s.configStore.GetString(keyStoreDriver); raw != "" {
		if _, ok := domain.ParseStoreDriver(raw); !ok {
			return &domain.ValidationError{Field: keyStoreDriver, Message: "unknown store driver: " + raw}
		}
	}
	return settings.Validate()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStoreDriver(defaultVal domain.StoreDriver) domain.StoreDriver {
	driver, ok := domain.ParseStoreDriver(s.configStore.GetString(keyStoreDriver))
	if !ok {
		return defaultVal
	}
	return driver
}
