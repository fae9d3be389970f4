package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for vision or embeddings.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// SupportsMultimodalEmbedding returns true if the provider can embed
// content and text together.
func (p AIProvider) SupportsMultimodalEmbedding() bool {
	return p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// ProviderSettings configures one AI capability.
type ProviderSettings struct {
	// Provider is the AI service provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the provider is set up.
func (s ProviderSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// EnrichmentSettings bounds the external calls of one enrichment run.
type EnrichmentSettings struct {
	// AnalysisTimeout bounds content analysis (tags and story together).
	AnalysisTimeout time.Duration

	// EmbeddingTimeout bounds each embedding derivation.
	EmbeddingTimeout time.Duration

	// RequestsPerSecond limits calls to each AI provider. 0 disables.
	RequestsPerSecond float64

	// MaxRetries is the number of retries for a failed AI call.
	MaxRetries int
}

// StorageBackend selects the media and tag store.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite   StorageBackend = "sqlite"
	StoragePostgres StorageBackend = "postgres"
	StorageMemory   StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// StorageSettings configures persistence.
type StorageSettings struct {
	Backend     StorageBackend
	PostgresDSN string
}

// LockBackend selects where in-flight enrichment markers live.
type LockBackend string

// Available lock backends.
const (
	LockMemory LockBackend = "memory"
	LockRedis  LockBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b LockBackend) IsValid() bool {
	return b == LockMemory || b == LockRedis
}

// LockSettings configures the enrichment marker.
type LockSettings struct {
	Backend   LockBackend
	RedisAddr string
	// TTL caps how long a marker survives a crashed holder.
	TTL time.Duration
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Addr        string
	JWTSecret   string
	CORSOrigins []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Vision analyzes content into tags and a story.
	Vision ProviderSettings

	// Embedding produces the text embedding.
	Embedding ProviderSettings

	// Multimodal produces the content+text embedding.
	Multimodal ProviderSettings

	// Cultural produces the cultural embedding. Falls back to Embedding
	// when unconfigured.
	Cultural ProviderSettings

	Enrichment EnrichmentSettings
	Storage    StorageSettings
	Lock       LockSettings
	Server     ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left without API keys; users supply them via config
// file or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Vision: ProviderSettings{
			Provider: AIProviderGemini,
			Model:    DefaultVisionModels()[AIProviderGemini],
		},
		Embedding: ProviderSettings{
			Provider: AIProviderGemini,
			Model:    DefaultEmbeddingModels()[AIProviderGemini],
		},
		Multimodal: ProviderSettings{
			Provider: AIProviderGemini,
			Model:    DefaultEmbeddingModels()[AIProviderGemini],
		},
		Enrichment: EnrichmentSettings{
			AnalysisTimeout:   60 * time.Second,
			EmbeddingTimeout:  30 * time.Second,
			RequestsPerSecond: 5,
			MaxRetries:        1,
		},
		Storage: StorageSettings{Backend: StorageSQLite},
		Lock: LockSettings{
			Backend: LockMemory,
			TTL:     5 * time.Minute,
		},
		Server: ServerSettings{Addr: ":8080"},
	}
}

// AllVisionProviders returns providers that can analyze images.
func AllVisionProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "text-embedding-004",
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultVisionModels returns default models for each vision provider.
func DefaultVisionModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-1.5-flash",
		AIProviderOllama:    "llava",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Gemini models
		"text-embedding-004": 768,
		"embedding-001":      768,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
