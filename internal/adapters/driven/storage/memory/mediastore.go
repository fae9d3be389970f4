package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// Ensure MediaStore implements the interface.
var _ driven.MediaStore = (*MediaStore)(nil)

// MediaStore is an in-memory implementation of driven.MediaStore.
type MediaStore struct {
	mu    sync.RWMutex
	items map[string]domain.MediaItem
}

// NewMediaStore creates a new in-memory media store.
func NewMediaStore() *MediaStore {
	return &MediaStore{
		items: make(map[string]domain.MediaItem),
	}
}

// SaveMedia creates or replaces a media item.
func (s *MediaStore) SaveMedia(_ context.Context, item *domain.MediaItem) error {
	if item == nil || item.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = cloneMedia(item)
	return nil
}

// GetMedia retrieves a media item by ID.
func (s *MediaStore) GetMedia(_ context.Context, id string) (*domain.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneMedia(&item)
	return &out, nil
}

// PatchMedia applies the present fields of patch and returns the updated item.
func (s *MediaStore) PatchMedia(_ context.Context, id string, patch *domain.MediaPatch) (*domain.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&item)
	item.UpdatedAt = time.Now()
	s.items[id] = item
	out := cloneMedia(&item)
	return &out, nil
}

// ListMedia returns up to limit items, newest first.
func (s *MediaStore) ListMedia(_ context.Context, limit int) ([]domain.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.MediaItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, cloneMedia(&item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// cloneMedia copies item so callers never share slices with the store.
func cloneMedia(item *domain.MediaItem) domain.MediaItem {
	out := *item
	out.Tags = slices.Clone(item.Tags)
	out.BengaliTags = slices.Clone(item.BengaliTags)
	out.TextEmbedding = slices.Clone(item.TextEmbedding)
	out.MultimodalEmbedding = slices.Clone(item.MultimodalEmbedding)
	out.CulturalEmbedding = slices.Clone(item.CulturalEmbedding)
	if item.Story != nil {
		story := *item.Story
		out.Story = &story
	}
	return out
}
