package driven

// ConfigStore is the key/value source behind the settings service.
// Keys are dotted, e.g. "chunking.chunk_size" or "store.driver". A QADIGEST_*
// environment variable overrides the stored value for reads.
type ConfigStore interface {
	// Get returns the raw value and whether it is set.
	Get(key string) (any, bool)

	// GetString returns "" when unset.
	GetString(key string) string

	// GetInt returns 0 when unset or unparseable.
	GetInt(key string) int

	// GetFloat accepts integer values too. It returns 0 when unset.
	GetFloat(key string) float64

	GetBool(key string) bool

	// GetStringSlice also splits a comma-separated override.
	GetStringSlice(key string) []string

	// Set updates the in-memory value and writes the file.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the backing TOML file.
	Path() string
}
