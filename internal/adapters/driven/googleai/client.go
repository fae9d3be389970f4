// Package googleai holds the client plumbing shared by the Gemini vision
// and embedding adapters.
package googleai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// NewService creates a generativelanguage client authenticated by apiKey.
// baseURL overrides the endpoint and is empty in production.
func NewService(ctx context.Context, apiKey, baseURL string) (*generativelanguage.Service, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(baseURL, "/")+"/"))
	}
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return svc, nil
}

// ModelPath returns the resource name for model ("models/<model>").
func ModelPath(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

// InlinePart wraps content as an inline data part.
func InlinePart(content *domain.MediaContent) *generativelanguage.Part {
	return &generativelanguage.Part{
		InlineData: &generativelanguage.Blob{
			MimeType: content.MimeType,
			Data:     base64.StdEncoding.EncodeToString(content.Data),
		},
	}
}

// TextPart wraps text as a part.
func TextPart(text string) *generativelanguage.Part {
	return &generativelanguage.Part{Text: text}
}

// WrapError marks 429 responses as domain.ErrRateLimited.
func WrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("gemini: %w: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("gemini: %w", err)
}

// Ping fetches the model description, which validates the key.
func Ping(ctx context.Context, models *generativelanguage.ModelsService, model string) error {
	if _, err := models.Get(ModelPath(model)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", WrapError(err))
	}
	return nil
}

// ToFloat32 converts API vectors to the float32 vectors used by the domain.
func ToFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
