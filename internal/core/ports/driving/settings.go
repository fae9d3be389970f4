package driving

import "github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetVisionProvider configures the vision provider.
	SetVisionProvider(provider domain.AIProvider, model, apiKey string) error

	// SetEmbeddingProvider configures the text embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the settings can run an enrichment.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateVisionConfig validates the vision configuration by pinging the provider.
	ValidateVisionConfig() error

	// ValidateEmbeddingConfig validates the embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error
}
