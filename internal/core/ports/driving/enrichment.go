package driving

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// EnrichmentService derives tags, a story and embeddings for a media item.
type EnrichmentService interface {
	// Enrich runs the pipeline for one media item. Failures are reported
	// in the result, never as a panic or separate error.
	Enrich(ctx context.Context, req domain.EnrichRequest) domain.EnrichResult
}

// TagSuggestionService suggests tags for free text.
type TagSuggestionService interface {
	// Suggest returns at most limit tags without duplicates. limit <= 0
	// uses the default of 10. Store failures degrade to curated matches.
	Suggest(ctx context.Context, searchText string, limit int) []string
}

// MediaService registers and reads media items for the driving adapters.
type MediaService interface {
	// Register creates a media item. ID and timestamps are filled in when empty.
	Register(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error)

	// Get retrieves a media item by ID.
	Get(ctx context.Context, id string) (*domain.MediaItem, error)

	// List returns recent media items.
	List(ctx context.Context, limit int) ([]domain.MediaItem, error)
}
