package driving

import "github.com/custodia-labs/qadigest/internal/core/domain"

// SettingsService reads and writes the persisted application settings.
type SettingsService interface {
	// Get returns the effective settings, with defaults and environment
	// overrides applied.
	Get() (*domain.Settings, error)

	// Save writes every field of settings to the backing store.
	Save(settings *domain.Settings) error

	// Validate checks the stored settings are usable.
	Validate() error
}
