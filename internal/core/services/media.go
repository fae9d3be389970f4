package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// DefaultListLimit caps List when the caller passes limit <= 0.
const DefaultListLimit = 50

// MediaService registers and reads media items.
type MediaService struct {
	mediaStore driven.MediaStore
	tagStore   driven.TagStore
}

// NewMediaService creates a new media service. tagStore is optional.
func NewMediaService(mediaStore driven.MediaStore, tagStore driven.TagStore) *MediaService {
	return &MediaService{
		mediaStore: mediaStore,
		tagStore:   tagStore,
	}
}

// Register creates a media item. Caller-supplied tags count as one use
// each in the tag store.
func (s *MediaService) Register(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error) {
	if item == nil || strings.TrimSpace(item.URI) == "" {
		return nil, fmt.Errorf("%w: uri is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	created := *item
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now
	if created.Tags == nil {
		created.Tags = []string{}
	}
	if created.BengaliTags == nil {
		created.BengaliTags = []string{}
	}

	if err := s.mediaStore.SaveMedia(ctx, &created); err != nil {
		return nil, fmt.Errorf("save media: %w", err)
	}

	if s.tagStore != nil && len(created.Tags) > 0 {
		if err := s.tagStore.IncrementUseCount(ctx, created.Tags); err != nil {
			logger.Warn("count tags for media %s: %v", created.ID, err)
		}
	}

	return &created, nil
}

// Get retrieves a media item by ID.
func (s *MediaService) Get(ctx context.Context, id string) (*domain.MediaItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: media id is required", domain.ErrInvalidInput)
	}
	return s.mediaStore.GetMedia(ctx, id)
}

// List returns recent media items.
func (s *MediaService) List(ctx context.Context, limit int) ([]domain.MediaItem, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.mediaStore.ListMedia(ctx, limit)
}
