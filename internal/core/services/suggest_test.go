package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/storage/memory"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// recordingTagStore wraps the memory tag store and records queries.
type recordingTagStore struct {
	*memory.TagStore
	patterns []string
	limits   []int
}

func (s *recordingTagStore) FindByNameMatch(ctx context.Context, pattern string, limit int) ([]domain.Tag, error) {
	s.patterns = append(s.patterns, pattern)
	s.limits = append(s.limits, limit)
	return s.TagStore.FindByNameMatch(ctx, pattern, limit)
}

func seededTagStore(t *testing.T, tags ...domain.Tag) *recordingTagStore {
	t.Helper()
	store := memory.NewTagStore()
	for _, tag := range tags {
		require.NoError(t, store.SaveTag(context.Background(), tag))
	}
	return &recordingTagStore{TagStore: store}
}

func TestSuggest_CuratedFirstThenStore(t *testing.T) {
	catalog := NewTagCatalog([]string{"pohela-boishakh", "boishakhi-mela", "durga-puja"})
	var stored []domain.Tag
	for i := 0; i < 10; i++ {
		stored = append(stored, domain.Tag{Name: fmt.Sprintf("boishakh-photo-%02d", i), UseCount: 100 - i})
	}
	store := seededTagStore(t, stored...)
	svc := NewTagSuggestionService(catalog, store)

	got := svc.Suggest(context.Background(), "boishakh", 5)

	assert.Equal(t, []string{
		"pohela-boishakh", "boishakhi-mela",
		"boishakh-photo-00", "boishakh-photo-01", "boishakh-photo-02",
	}, got)
	assert.Equal(t, []string{"boishakh"}, store.patterns)
	assert.Equal(t, []int{3}, store.limits)
}

func TestSuggest_NoDuplicatesAcrossSources(t *testing.T) {
	catalog := NewTagCatalog([]string{"durga-puja"})
	store := seededTagStore(t,
		domain.Tag{Name: "Durga-Puja", UseCount: 50},
		domain.Tag{Name: "durga-puja-pandal", UseCount: 10},
	)
	svc := NewTagSuggestionService(catalog, store)

	got := svc.Suggest(context.Background(), "durga", 5)

	assert.Equal(t, []string{"durga-puja", "durga-puja-pandal"}, got)
}

func TestSuggest_StoreFailureFallsBackToCurated(t *testing.T) {
	catalog := NewTagCatalog([]string{"pohela-boishakh", "boishakhi-mela"})
	svc := NewTagSuggestionService(catalog, failingTagStore{})

	got := svc.Suggest(context.Background(), "boishakh", 5)

	assert.Equal(t, []string{"pohela-boishakh", "boishakhi-mela"}, got)
}

func TestSuggest_StoreFailureWithNoCuratedMatch(t *testing.T) {
	svc := NewTagSuggestionService(NewTagCatalog([]string{"durga-puja"}), failingTagStore{})

	got := svc.Suggest(context.Background(), "sunset", 5)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_EnoughCuratedSkipsStore(t *testing.T) {
	catalog := NewTagCatalog([]string{"kali-puja", "durga-puja", "lakshmi-puja"})
	store := seededTagStore(t, domain.Tag{Name: "puja-vlog", UseCount: 9})
	svc := NewTagSuggestionService(catalog, store)

	got := svc.Suggest(context.Background(), "puja", 2)

	assert.Equal(t, []string{"kali-puja", "durga-puja"}, got)
	assert.Empty(t, store.patterns)
}

func TestSuggest_DefaultLimit(t *testing.T) {
	var names []string
	for i := 0; i < 15; i++ {
		names = append(names, fmt.Sprintf("alpana-%02d", i))
	}
	svc := NewTagSuggestionService(NewTagCatalog(names), nil)

	for _, limit := range []int{0, -3} {
		got := svc.Suggest(context.Background(), "alpana", limit)
		assert.Len(t, got, DefaultSuggestLimit)
	}
}

func TestSuggest_MatchesSpacedQuery(t *testing.T) {
	svc := NewTagSuggestionService(nil, nil)

	got := svc.Suggest(context.Background(), "  Pohela Boishakh ", 5)

	assert.Contains(t, got, "pohela-boishakh")
}

func TestSuggest_StoreQueryUsesTrimmedText(t *testing.T) {
	store := seededTagStore(t, domain.Tag{Name: "street food", UseCount: 3})
	svc := NewTagSuggestionService(NewTagCatalog([]string{"tagore"}), store)

	got := svc.Suggest(context.Background(), "  Street ", 5)

	assert.Equal(t, []string{"street food"}, got)
	require.Len(t, store.patterns, 1)
	assert.Equal(t, "Street", store.patterns[0])
}

func TestSuggest_ResultsBoundedAndUnique(t *testing.T) {
	store := seededTagStore(t,
		domain.Tag{Name: "kolkata", UseCount: 5},
		domain.Tag{Name: "kolkata-rain", UseCount: 4},
		domain.Tag{Name: "KOLKATA-RAIN", UseCount: 1},
	)
	svc := NewTagSuggestionService(nil, store)

	for _, limit := range []int{1, 2, 3, 10} {
		got := svc.Suggest(context.Background(), "kolkata", limit)
		assert.LessOrEqual(t, len(got), limit)
		seen := map[string]bool{}
		for _, name := range got {
			key := strings.ToLower(name)
			assert.False(t, seen[key], "duplicate %q", name)
			seen[key] = true
		}
	}
}

func TestMergeUnique(t *testing.T) {
	got := mergeUnique(4, []string{"a", "", "B"}, []string{"b", " ", "c", "d", "e"})
	assert.Equal(t, []string{"a", "B", "c", "d"}, got)
	assert.NotNil(t, mergeUnique(3))
}

func TestResultOr(t *testing.T) {
	assert.Equal(t, 1, ok(1).or(2))
	assert.Equal(t, 2, failed[int](assert.AnError).or(2))
}
