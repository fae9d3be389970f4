package services

import (
	"fmt"
	"slices"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config sections for provider settings.
const (
	sectionVision     = "vision"
	sectionEmbedding  = "embedding"
	sectionMultimodal = "multimodal"
	sectionCultural   = "cultural"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAnalysisTimeout  = "enrichment.analysis_timeout"
	keyEmbeddingTimeout = "enrichment.embedding_timeout"
	keyRequestsPerSec   = "ai.requests_per_second"
	keyMaxRetries       = "ai.max_retries"
	keyStorageBackend   = "storage.backend"
	keyPostgresDSN      = "storage.postgres_dsn"
	keyLockBackend      = "lock.backend"
	keyLockRedisAddr    = "lock.redis_addr"
	keyLockTTL          = "lock.ttl"
	keyServerAddr       = "server.addr"
	keyJWTSecret        = "server.jwt_secret"
	keyCORSOrigins      = "server.cors_origins"
)

// defaultOllamaURL is used for local providers without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Vision:     s.getProviderSettings(sectionVision, defaults.Vision),
		Embedding:  s.getProviderSettings(sectionEmbedding, defaults.Embedding),
		Multimodal: s.getProviderSettings(sectionMultimodal, defaults.Multimodal),
		Cultural:   s.getProviderSettings(sectionCultural, defaults.Cultural),
		Enrichment: domain.EnrichmentSettings{
			AnalysisTimeout:   s.getDuration(keyAnalysisTimeout, defaults.Enrichment.AnalysisTimeout),
			EmbeddingTimeout:  s.getDuration(keyEmbeddingTimeout, defaults.Enrichment.EmbeddingTimeout),
			RequestsPerSecond: s.getFloat(keyRequestsPerSec, defaults.Enrichment.RequestsPerSecond),
			MaxRetries:        s.getInt(keyMaxRetries, defaults.Enrichment.MaxRetries),
		},
		Storage: domain.StorageSettings{
			Backend:     s.getStorageBackend(defaults.Storage.Backend),
			PostgresDSN: s.configStore.GetString(keyPostgresDSN),
		},
		Lock: domain.LockSettings{
			Backend:   s.getLockBackend(defaults.Lock.Backend),
			RedisAddr: s.configStore.GetString(keyLockRedisAddr),
			TTL:       s.getDuration(keyLockTTL, defaults.Lock.TTL),
		},
		Server: domain.ServerSettings{
			Addr:        s.getString(keyServerAddr, defaults.Server.Addr),
			JWTSecret:   s.configStore.GetString(keyJWTSecret),
			CORSOrigins: s.configStore.GetStringSlice(keyCORSOrigins),
		},
	}

	// The cultural embedding shares the text embedding provider unless
	// configured on its own.
	if settings.Cultural.Provider == "" {
		settings.Cultural = settings.Embedding
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	for section, ps := range map[string]domain.ProviderSettings{
		sectionVision:     settings.Vision,
		sectionEmbedding:  settings.Embedding,
		sectionMultimodal: settings.Multimodal,
	} {
		if err := s.saveProviderSettings(section, ps); err != nil {
			return err
		}
	}
	if settings.Cultural != settings.Embedding {
		if err := s.saveProviderSettings(sectionCultural, settings.Cultural); err != nil {
			return err
		}
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAnalysisTimeout, settings.Enrichment.AnalysisTimeout.String()},
		{keyEmbeddingTimeout, settings.Enrichment.EmbeddingTimeout.String()},
		{keyRequestsPerSec, settings.Enrichment.RequestsPerSecond},
		{keyMaxRetries, settings.Enrichment.MaxRetries},
		{keyStorageBackend, string(settings.Storage.Backend)},
		{keyPostgresDSN, settings.Storage.PostgresDSN},
		{keyLockBackend, string(settings.Lock.Backend)},
		{keyLockRedisAddr, settings.Lock.RedisAddr},
		{keyLockTTL, settings.Lock.TTL.String()},
		{keyServerAddr, settings.Server.Addr},
		{keyCORSOrigins, settings.Server.CORSOrigins},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Server.JWTSecret != "" {
		if err := s.configStore.Set(keyJWTSecret, settings.Server.JWTSecret); err != nil {
			return fmt.Errorf("save %s: %w", keyJWTSecret, err)
		}
	}

	return nil
}

func (s *SettingsService) saveProviderSettings(section string, ps domain.ProviderSettings) error {
	if err := s.configStore.Set(section+".provider", ps.Provider.String()); err != nil {
		return fmt.Errorf("save %s provider: %w", section, err)
	}
	if err := s.configStore.Set(section+".model", ps.Model); err != nil {
		return fmt.Errorf("save %s model: %w", section, err)
	}
	if err := s.configStore.Set(section+".base_url", ps.BaseURL); err != nil {
		return fmt.Errorf("save %s base_url: %w", section, err)
	}
	if ps.APIKey != "" {
		if err := s.configStore.Set(section+".api_key", ps.APIKey); err != nil {
			return fmt.Errorf("save %s api_key: %w", section, err)
		}
	}
	return nil
}

// SetVisionProvider configures the vision provider.
func (s *SettingsService) SetVisionProvider(provider domain.AIProvider, model, apiKey string) error {
	if !slices.Contains(domain.AllVisionProviders(), provider) {
		return fmt.Errorf("%w: provider %q does not support vision", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	ps, err := configureProvider(settings.Vision, provider, model, apiKey, domain.DefaultVisionModels())
	if err != nil {
		return err
	}
	settings.Vision = ps
	return s.Save(settings)
}

// SetEmbeddingProvider configures the text embedding provider. The
// multimodal provider follows when the new provider supports it.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("%w: provider %q does not support embeddings", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	ps, err := configureProvider(settings.Embedding, provider, model, apiKey, domain.DefaultEmbeddingModels())
	if err != nil {
		return err
	}
	if settings.Cultural == settings.Embedding {
		settings.Cultural = ps
	}
	settings.Embedding = ps
	if provider.SupportsMultimodalEmbedding() {
		settings.Multimodal = ps
	}
	return s.Save(settings)
}

func configureProvider(
	current domain.ProviderSettings,
	provider domain.AIProvider,
	model, apiKey string,
	defaults map[domain.AIProvider]string,
) (domain.ProviderSettings, error) {
	if provider.RequiresAPIKey() && apiKey == "" {
		return current, fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	ps := domain.ProviderSettings{Provider: provider, APIKey: apiKey, Model: model}
	if ps.Model == "" {
		ps.Model = defaults[provider]
	}
	if provider.IsLocal() {
		ps.BaseURL = current.BaseURL
		if ps.BaseURL == "" || current.Provider != provider {
			ps.BaseURL = defaultOllamaURL
		}
	}
	return ps, nil
}

// Validate checks that the settings can run an enrichment.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Vision.IsConfigured() {
		return fmt.Errorf("vision provider %q is not configured: %w", settings.Vision.Provider, domain.ErrVisionUnavailable)
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, settings.Storage.Backend)
	}
	if settings.Storage.Backend == domain.StoragePostgres && settings.Storage.PostgresDSN == "" {
		return fmt.Errorf("%w: %s is required for the postgres backend", domain.ErrInvalidInput, keyPostgresDSN)
	}
	if settings.Lock.Backend == domain.LockRedis && settings.Lock.RedisAddr == "" {
		return fmt.Errorf("%w: %s is required for the redis lock", domain.ErrInvalidInput, keyLockRedisAddr)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateVisionConfig validates the vision configuration by pinging the provider.
func (s *SettingsService) ValidateVisionConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateVision(&settings.Vision)
}

// ValidateEmbeddingConfig validates the embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProviderSettings(section string, defaults domain.ProviderSettings) domain.ProviderSettings {
	return domain.ProviderSettings{
		Provider: s.getProvider(section+".provider", defaults.Provider),
		Model:    s.getString(section+".model", defaults.Model),
		BaseURL:  s.configStore.GetString(section + ".base_url"), // No default - empty is valid for cloud providers
		APIKey:   s.configStore.GetString(section + ".api_key"),
	}
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStorageBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getLockBackend(defaultVal domain.LockBackend) domain.LockBackend {
	backend := domain.LockBackend(s.configStore.GetString(keyLockBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
