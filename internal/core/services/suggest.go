package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/metrics"
)

// Ensure TagSuggestionService implements the interface.
var _ driving.TagSuggestionService = (*TagSuggestionService)(nil)

// DefaultSuggestLimit is used when the caller passes limit <= 0.
const DefaultSuggestLimit = 10

// result is a value or the error that prevented it.
type result[T any] struct {
	value T
	err   error
}

func ok[T any](v T) result[T] {
	return result[T]{value: v}
}

func failed[T any](err error) result[T] {
	return result[T]{err: err}
}

// or returns the value, or fallback if the result is an error.
func (r result[T]) or(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// TagSuggestionService suggests tags for free text from the curated
// catalog first and the usage-ranked tag store second.
type TagSuggestionService struct {
	catalog  *TagCatalog
	tagStore driven.TagStore
}

// NewTagSuggestionService creates a new suggestion service.
// tagStore may be nil, in which case only curated tags are suggested.
func NewTagSuggestionService(catalog *TagCatalog, tagStore driven.TagStore) *TagSuggestionService {
	if catalog == nil {
		catalog = NewTagCatalog(nil)
	}
	return &TagSuggestionService{
		catalog:  catalog,
		tagStore: tagStore,
	}
}

// Suggest returns at most limit tags matching searchText, curated matches
// first, without duplicates. It never fails: a tag store error degrades to
// curated matches.
func (s *TagSuggestionService) Suggest(ctx context.Context, searchText string, limit int) []string {
	metrics.TagSuggestions.Inc()
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	matched := s.catalog.MatchQuery(searchText)
	if len(matched) >= limit {
		return matched[:limit]
	}

	stored := s.lookup(ctx, strings.TrimSpace(searchText), limit-len(matched)).or(nil)
	return mergeUnique(limit, matched, stored)
}

// lookup queries the tag store for up to n names containing pattern.
func (s *TagSuggestionService) lookup(ctx context.Context, pattern string, n int) result[[]string] {
	if s.tagStore == nil {
		return ok[[]string](nil)
	}

	tags, err := s.tagStore.FindByNameMatch(ctx, pattern, n)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrStoreQueryFailed, err)
		logger.Warn("suggest tags for %q: %v", pattern, err)
		metrics.TagStoreFallbacks.Inc()
		return failed[[]string](err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return ok(names)
}

// mergeUnique concatenates lists in order, dropping case-insensitive
// duplicates and empty names, and stops at limit.
func mergeUnique(limit int, lists ...[]string) []string {
	merged := []string{}
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, name := range list {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, name)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
