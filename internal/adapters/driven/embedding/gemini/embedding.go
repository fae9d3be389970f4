// Package gemini provides text and multimodal embedding adapters using the
// Gemini embedContent API.
//
// Gemini embedding models accept text only. A multimodal embedding is
// therefore built in two calls: a generation model captions the media,
// then the caption and the accompanying text are embedded together.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/googleai"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// Ensure EmbeddingService implements both embedding ports.
var (
	_ driven.EmbeddingService           = (*EmbeddingService)(nil)
	_ driven.MultimodalEmbeddingService = (*EmbeddingService)(nil)
)

// Default configuration values.
const (
	DefaultModel        = "text-embedding-004"
	DefaultDimensions   = 768
	DefaultCaptionModel = "gemini-1.5-flash"

	// taskType tells the model the vectors index stored documents.
	taskType = "RETRIEVAL_DOCUMENT"
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Model is the embedding model (default: text-embedding-004).
	Model string

	// Dimensions is the embedding vector size (default: 768).
	Dimensions int

	// CaptionModel describes media before a multimodal embedding
	// (default: gemini-1.5-flash).
	CaptionModel string
}

const captionPrompt = `Describe this media in two or three plain sentences for a search index.
Name the objects, people, activities, places and any Bengali cultural elements you can see.`

// EmbeddingService generates text and multimodal embeddings with Gemini.
type EmbeddingService struct {
	models       *generativelanguage.ModelsService
	model        string
	captionModel string
	dimensions   int
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.CaptionModel == "" {
		cfg.CaptionModel = DefaultCaptionModel
	}

	svc, err := googleai.NewService(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &EmbeddingService{
		models:       svc.Models,
		model:        cfg.Model,
		captionModel: cfg.CaptionModel,
		dimensions:   cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, googleai.TextPart(text))
}

// EmbedMultimodal embeds a caption of content together with text as one
// vector.
func (s *EmbeddingService) EmbedMultimodal(ctx context.Context, content *domain.MediaContent, text string) ([]float32, error) {
	if content == nil || len(content.Data) == 0 {
		return nil, fmt.Errorf("%w: no content to embed", domain.ErrInvalidInput)
	}
	caption, err := s.caption(ctx, content)
	if err != nil {
		return nil, err
	}
	if text = strings.TrimSpace(text); text != "" {
		caption += "\n\n" + text
	}
	return s.embed(ctx, googleai.TextPart(caption))
}

// caption asks the caption model to describe content.
func (s *EmbeddingService) caption(ctx context.Context, content *domain.MediaContent) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{googleai.InlinePart(content), googleai.TextPart(captionPrompt)},
		}},
		GenerationConfig: &generativelanguage.GenerationConfig{MaxOutputTokens: 256},
	}

	resp, err := s.models.GenerateContent(googleai.ModelPath(s.captionModel), req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gemini: caption: %w", googleai.WrapError(err))
	}

	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			out.WriteString(part.Text)
		}
		break
	}
	caption := strings.TrimSpace(out.String())
	if caption == "" {
		return "", errors.New("gemini: caption model returned no text")
	}
	return caption, nil
}

func (s *EmbeddingService) embed(ctx context.Context, parts ...*generativelanguage.Part) ([]float32, error) {
	req := &generativelanguage.EmbedContentRequest{
		Model:    googleai.ModelPath(s.model),
		Content:  &generativelanguage.Content{Parts: parts},
		TaskType: taskType,
	}

	resp, err := s.models.EmbedContent(googleai.ModelPath(s.model), req).Context(ctx).Do()
	if err != nil {
		return nil, googleai.WrapError(err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini: model %s returned an empty embedding", s.model)
	}
	return googleai.ToFloat32(resp.Embedding.Values), nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the API key by fetching the model description.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return googleai.Ping(ctx, s.models, s.model)
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
