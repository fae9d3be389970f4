// Package ai builds the vision and embedding adapters selected by settings.
package ai

import (
	"context"
	"fmt"

	anthropicvision "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/vision/anthropic"
	geminivision "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/vision/gemini"
	ollamavision "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/vision/ollama"
	openaivision "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/vision/openai"

	geminiembed "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/embedding/openai"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// InitResult contains the AI services built from settings. Any service may
// be nil; the pipeline degrades per capability.
type InitResult struct {
	Vision     driven.VisionService
	Embedding  driven.EmbeddingService
	Cultural   driven.EmbeddingService // nil means reuse Embedding.
	Multimodal driven.MultimodalEmbeddingService
	Warnings   []string // Non-fatal issues that left a capability unset.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.Vision != nil {
		_ = r.Vision.Close()
	}
	if r.Embedding != nil {
		_ = r.Embedding.Close()
	}
	if r.Cultural != nil {
		_ = r.Cultural.Close()
	}
	if r.Multimodal != nil {
		_ = r.Multimodal.Close()
	}
}

// Initialise creates every configured AI service and wraps it with the
// rate limiter, retries and circuit breaker from settings.Enrichment.
// Creation errors are collected as warnings.
func Initialise(ctx context.Context, settings domain.AppSettings) *InitResult {
	res := &InitResult{}
	cfg := ResilienceConfig{
		RequestsPerSecond: settings.Enrichment.RequestsPerSecond,
		MaxRetries:        settings.Enrichment.MaxRetries,
	}

	if vision, err := CreateVisionService(ctx, &settings.Vision); err != nil {
		res.warn("vision", err)
	} else if vision != nil {
		res.Vision = NewResilientVision(vision, "vision:"+settings.Vision.Provider.String(), cfg)
	}

	if embed, err := CreateEmbeddingService(ctx, &settings.Embedding); err != nil {
		res.warn("embedding", err)
	} else if embed != nil {
		res.Embedding = NewResilientEmbedding(embed, "embedding:"+settings.Embedding.Provider.String(), cfg)
	}

	if settings.Cultural.IsConfigured() && settings.Cultural != settings.Embedding {
		if cultural, err := CreateEmbeddingService(ctx, &settings.Cultural); err != nil {
			res.warn("cultural", err)
		} else if cultural != nil {
			res.Cultural = NewResilientEmbedding(cultural, "cultural:"+settings.Cultural.Provider.String(), cfg)
		}
	}

	if mm, err := CreateMultimodalService(ctx, &settings.Multimodal); err != nil {
		res.warn("multimodal", err)
	} else if mm != nil {
		res.Multimodal = NewResilientMultimodal(mm, "multimodal:"+settings.Multimodal.Provider.String(), cfg)
	}

	return res
}

func (r *InitResult) warn(capability string, err error) {
	msg := fmt.Sprintf("%s disabled: %v", capability, err)
	logger.Warn("%s", msg)
	r.Warnings = append(r.Warnings, msg)
}

// CreateVisionService creates the vision service selected by settings.
// Returns nil if the provider is not configured.
func CreateVisionService(ctx context.Context, settings *domain.ProviderSettings) (driven.VisionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminivision.NewVisionService(ctx, geminivision.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOllama:
		return ollamavision.NewVisionService(ollamavision.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaivision.NewVisionService(openaivision.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicvision.NewVisionService(anthropicvision.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", settings.Provider)
	}
}

// CreateEmbeddingService creates the text embedding service selected by
// settings. Returns nil if the provider is not configured.
func CreateEmbeddingService(ctx context.Context, settings *domain.ProviderSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	dimensions := domain.EmbeddingDimensions()[settings.Model]

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dimensions,
		})

	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("%w: anthropic does not support embeddings, use gemini, ollama or openai",
			domain.ErrUnsupportedType)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateMultimodalService creates the content+text embedding service.
// Only Gemini embeds binary content, by captioning it before a text
// embedding. Returns nil if not configured.
func CreateMultimodalService(ctx context.Context, settings *domain.ProviderSettings) (driven.MultimodalEmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	if !settings.Provider.SupportsMultimodalEmbedding() {
		return nil, fmt.Errorf("%w: %s does not support multimodal embeddings",
			domain.ErrUnsupportedType, settings.Provider)
	}

	return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: domain.EmbeddingDimensions()[settings.Model],
	})
}
