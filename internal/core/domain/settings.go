package domain

import "strings"

// StoreDriver selects the durable summary store.
type StoreDriver string

// Available store drivers.
const (
	// StoreDriverMemory keeps summaries in-process only.
	StoreDriverMemory StoreDriver = "memory"

	// StoreDriverSQLite persists summaries to an embedded SQLite file.
	StoreDriverSQLite StoreDriver = "sqlite"

	// StoreDriverPostgres persists summaries to a Postgres summaries table.
	StoreDriverPostgres StoreDriver = "postgres"
)

// IsValid returns true if the driver is recognised.
func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverPostgres:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StoreDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StoreDriver) Description() string {
	switch d {
	case StoreDriverMemory:
		return "In-process cache only"
	case StoreDriverSQLite:
		return "Embedded SQLite file"
	case StoreDriverPostgres:
		return "Postgres summaries table"
	default:
		return "Unknown"
	}
}

// ParseStoreDriver resolves a driver name case-insensitively.
func ParseStoreDriver(s string) (StoreDriver, bool) {
	d := StoreDriver(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", false
	}
	return d, true
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr        string
	RateLimit   float64
	Burst       int
	CORSOrigins []string
}

// StoreSettings configures summary persistence.
type StoreSettings struct {
	Driver      StoreDriver
	SQLiteDir   string
	PostgresDSN string
}

// Settings is the complete application configuration.
type Settings struct {
	Server  ServerSettings
	Store   StoreSettings
	LogMode string

	// Chunking holds server-side defaults for requests that omit chunkConfig.
	Chunking ChunkConfig
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:      ":8080",
			RateLimit: 20,
			Burst:     40,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
			},
		},
		Store: StoreSettings{
			Driver: StoreDriverSQLite,
		},
		LogMode: "development",
		Chunking: ChunkConfig{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if !s.Store.Driver.IsValid() {
		return &ValidationError{Field: "store.driver", Message: "unknown store driver: " + string(s.Store.Driver)}
	}
	if s.Store.Driver == StoreDriverPostgres && strings.TrimSpace(s.Store.PostgresDSN) == "" {
		return &ValidationError{Field: "store.postgres_dsn", Message: "postgres store requires a DSN"}
	}
	if s.Server.RateLimit < 0 {
		return &ValidationError{Field: "server.rate_limit", Message: "rate limit must not be negative"}
	}
	return nil
}
