package driven

import "github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateVision validates a vision configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateVision(config *domain.ProviderSettings) error

	// ValidateEmbedding validates an embedding configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateEmbedding(config *domain.ProviderSettings) error
}
