package driven

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// TagStore persists user-contributed tags and their usage counts.
type TagStore interface {
	// FindByNameMatch returns up to limit tags whose name contains pattern,
	// compared case-insensitively. pattern is a literal, not a regex.
	// Results are ordered by use count descending, then name.
	FindByNameMatch(ctx context.Context, pattern string, limit int) ([]domain.Tag, error)

	// IncrementUseCount adds one use to each named tag, creating missing tags.
	IncrementUseCount(ctx context.Context, names []string) error

	// GetTag retrieves a tag by name (case-insensitive).
	// Returns domain.ErrNotFound if absent.
	GetTag(ctx context.Context, name string) (*domain.Tag, error)
}
