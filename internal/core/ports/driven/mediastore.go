package driven

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// MediaStore persists media items.
type MediaStore interface {
	// SaveMedia creates or replaces a media item.
	SaveMedia(ctx context.Context, item *domain.MediaItem) error

	// GetMedia retrieves a media item by ID.
	// Returns domain.ErrNotFound if absent.
	GetMedia(ctx context.Context, id string) (*domain.MediaItem, error)

	// PatchMedia applies the present fields of patch in a single write and
	// returns the updated item. Fields absent from the patch are untouched.
	// Returns domain.ErrNotFound if absent.
	PatchMedia(ctx context.Context, id string, patch *domain.MediaPatch) (*domain.MediaItem, error)

	// ListMedia returns up to limit items, newest first.
	ListMedia(ctx context.Context, limit int) ([]domain.MediaItem, error)
}
