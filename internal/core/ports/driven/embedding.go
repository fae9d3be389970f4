// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, text and cultural embeddings
// are omitted from every enrichment.
//
// Implementations may include:
//   - Gemini (text-embedding-004)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// MultimodalEmbeddingService embeds binary content together with text
// into a single vector.
type MultimodalEmbeddingService interface {
	// EmbedMultimodal generates one vector for content and text.
	// text may be empty.
	EmbedMultimodal(ctx context.Context, content *domain.MediaContent, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
