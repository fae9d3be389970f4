package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// Ensure TagStore implements the interface.
var _ driven.TagStore = (*TagStore)(nil)

// TagStore is an in-memory implementation of driven.TagStore.
// Tags are keyed by lowercase name.
type TagStore struct {
	mu   sync.RWMutex
	tags map[string]domain.Tag
}

// NewTagStore creates a new in-memory tag store.
func NewTagStore() *TagStore {
	return &TagStore{
		tags: make(map[string]domain.Tag),
	}
}

// SaveTag creates or replaces a tag. Used to seed the store.
func (s *TagStore) SaveTag(_ context.Context, tag domain.Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[strings.ToLower(tag.Name)] = tag
	return nil
}

// FindByNameMatch returns up to limit tags containing pattern, most used first.
func (s *TagStore) FindByNameMatch(_ context.Context, pattern string, limit int) ([]domain.Tag, error) {
	if limit <= 0 {
		return []domain.Tag{}, nil
	}
	needle := strings.ToLower(pattern)

	s.mu.RLock()
	matched := make([]domain.Tag, 0)
	for key, tag := range s.tags {
		if strings.Contains(key, needle) {
			matched = append(matched, tag)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].UseCount != matched[j].UseCount {
			return matched[i].UseCount > matched[j].UseCount
		}
		return matched[i].Name < matched[j].Name
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// IncrementUseCount adds one use to each named tag, creating missing tags.
func (s *TagStore) IncrementUseCount(_ context.Context, names []string) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		tag, ok := s.tags[key]
		if !ok {
			tag = domain.Tag{Name: name, CreatedAt: now}
		}
		tag.UseCount++
		tag.UpdatedAt = now
		s.tags[key] = tag
	}
	return nil
}

// GetTag retrieves a tag by name.
func (s *TagStore) GetTag(_ context.Context, name string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.tags[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tag, nil
}
