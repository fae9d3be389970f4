package driven

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// VisionService answers prompts about binary media content.
// Implementations wrap a multimodal model (Gemini, LLaVA via Ollama,
// GPT-4o, Claude).
type VisionService interface {
	// Describe sends content and prompt to the model and returns its text.
	Describe(ctx context.Context, content *domain.MediaContent, prompt string, opts DescribeOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// DescribeOptions configures a vision request.
type DescribeOptions struct {
	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSON asks the model for a JSON response when the provider supports it.
	JSON bool
}
