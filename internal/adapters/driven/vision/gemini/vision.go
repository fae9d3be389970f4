// Package gemini provides a vision service adapter using the Gemini
// generateContent API. Gemini accepts both images and video.
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

// Ensure VisionService implements the interface.
var _ driven.VisionService = (*VisionService)(nil)

// Default configuration values.
const (
	DefaultModel = "gemini-1.5-flash"
)

// Config holds configuration for the Gemini vision service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Model is the model to use (default: gemini-1.5-flash).
	Model string
}

// VisionService describes images and video using Gemini.
type VisionService struct {
	models *generativelanguage.ModelsService
	model  string
}

// NewVisionService creates a new Gemini vision service.
func NewVisionService(ctx context.Context, cfg Config) (*VisionService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	svc, err := googleai.NewService(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &VisionService{
		models: svc.Models,
		model:  cfg.Model,
	}, nil
}

// Describe sends the content inline together with the prompt.
func (s *VisionService) Describe(
	ctx context.Context,
	content *domain.MediaContent,
	prompt string,
	opts driven.DescribeOptions,
) (string, error) {
	if !content.IsImage() && !content.IsVideo() {
		return "", fmt.Errorf("%w: gemini vision accepts images and video, got %q", domain.ErrUnsupportedType, content.MimeType)
	}

	genCfg := &generativelanguage.GenerationConfig{
		MaxOutputTokens: int64(opts.MaxTokens),
		Temperature:     opts.Temperature,
		ForceSendFields: []string{"Temperature"},
	}
	if opts.JSON {
		genCfg.ResponseMimeType = "application/json"
	}

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{googleai.InlinePart(content), googleai.TextPart(prompt)},
		}},
		GenerationConfig: genCfg,
	}

	resp, err := s.models.GenerateContent(googleai.ModelPath(s.model), req).Context(ctx).Do()
	if err != nil {
		return "", googleai.WrapError(err)
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
	if out.Len() == 0 {
		return "", errors.New("gemini: no text in response")
	}
	return out.String(), nil
}

// ModelName returns the name of the model being used.
func (s *VisionService) ModelName() string {
	return s.model
}

// Ping validates the API key by fetching the model description.
func (s *VisionService) Ping(ctx context.Context) error {
	return googleai.Ping(ctx, s.models, s.model)
}

// Close releases resources.
func (s *VisionService) Close() error {
	return nil
}
