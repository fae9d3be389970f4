package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "bonglore.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.MediaStore().SaveMedia(ctx, &domain.MediaItem{ID: "m1", URI: "a.jpg"}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	var versions int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	got, err := store.MediaStore().GetMedia(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got.URI)
}

func TestFloat32Bytes(t *testing.T) {
	vec := []float32{0.5, -1.25, 3}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestMediaStore_SaveAndGet(t *testing.T) {
	ms := newTestStore(t).MediaStore()
	ctx := context.Background()

	item := &domain.MediaItem{
		ID:                  "m1",
		OwnerID:             "u1",
		URI:                 "/media/pandal.jpg",
		MimeType:            "image/jpeg",
		Description:         "Durga Puja pandal at night",
		Tags:                []string{"pandal", "lights"},
		BengaliTags:         []string{"durga-puja"},
		Story:               &domain.Story{Title: "Night of lights", Summary: "A lit pandal."},
		MultimodalEmbedding: []float32{0.1, 0.2},
	}
	require.NoError(t, ms.SaveMedia(ctx, item))

	got, err := ms.GetMedia(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, item.URI, got.URI)
	assert.Equal(t, item.OwnerID, got.OwnerID)
	assert.Equal(t, item.Tags, got.Tags)
	assert.Equal(t, item.BengaliTags, got.BengaliTags)
	assert.Equal(t, item.Story, got.Story)
	assert.Equal(t, item.MultimodalEmbedding, got.MultimodalEmbedding)
	assert.Nil(t, got.TextEmbedding)
	assert.False(t, got.CreatedAt.IsZero())

	assert.ErrorIs(t, ms.SaveMedia(ctx, &domain.MediaItem{}), domain.ErrInvalidInput)
}

func TestMediaStore_GetMissing(t *testing.T) {
	ms := newTestStore(t).MediaStore()

	_, err := ms.GetMedia(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaStore_PatchMedia(t *testing.T) {
	ms := newTestStore(t).MediaStore()
	ctx := context.Background()

	require.NoError(t, ms.SaveMedia(ctx, &domain.MediaItem{
		ID:            "m1",
		URI:           "a.jpg",
		Description:   "rosogolla",
		Tags:          []string{"old"},
		TextEmbedding: []float32{9},
	}))

	title := "Sweet story"
	patch := &domain.MediaPatch{
		Tags:              []string{"sweet", "dessert"},
		BengaliTags:       []string{},
		Story:             &domain.Story{Title: title, Summary: "Syrupy."},
		Title:             &title,
		CulturalEmbedding: []float32{0.3},
	}

	got, err := ms.PatchMedia(ctx, "m1", patch)
	require.NoError(t, err)
	assert.Equal(t, []string{"sweet", "dessert"}, got.Tags)
	assert.Equal(t, title, got.Title)

	stored, err := ms.GetMedia(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "rosogolla", stored.Description)
	assert.Equal(t, []string{"sweet", "dessert"}, stored.Tags)
	assert.NotNil(t, stored.BengaliTags)
	assert.Empty(t, stored.BengaliTags)
	assert.Equal(t, []float32{9}, stored.TextEmbedding, "absent field untouched")
	assert.Equal(t, []float32{0.3}, stored.CulturalEmbedding)
	assert.Equal(t, title, stored.Title)

	_, err = ms.PatchMedia(ctx, "missing", patch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaStore_ListNewestFirst(t *testing.T) {
	ms := newTestStore(t).MediaStore()
	ctx := context.Background()

	base := time.Date(2026, 4, 14, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, ms.SaveMedia(ctx, &domain.MediaItem{
			ID:        id,
			URI:       id + ".jpg",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	items, err := ms.ListMedia(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[2].ID)

	items, err = ms.ListMedia(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "mid", items[1].ID)
}

func TestTagStore_IncrementAndGet(t *testing.T) {
	ts := newTestStore(t).TagStore()
	ctx := context.Background()

	require.NoError(t, ts.IncrementUseCount(ctx, []string{"Kolkata-Street-Food", " ", "jhalmuri"}))
	require.NoError(t, ts.IncrementUseCount(ctx, []string{"kolkata-street-food"}))

	tag, err := ts.GetTag(ctx, "KOLKATA-street-food")
	require.NoError(t, err)
	assert.Equal(t, "Kolkata-Street-Food", tag.Name)
	assert.Equal(t, 2, tag.UseCount)

	_, err = ts.GetTag(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagStore_FindByNameMatch(t *testing.T) {
	ts := newTestStore(t).TagStore()
	ctx := context.Background()

	require.NoError(t, ts.IncrementUseCount(ctx, []string{"street-food", "food-walk", "seafood", "100%_pure"}))
	require.NoError(t, ts.IncrementUseCount(ctx, []string{"seafood", "seafood", "food-walk"}))

	tags, err := ts.FindByNameMatch(ctx, "FOOD", 10)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "seafood", tags[0].Name)
	assert.Equal(t, "food-walk", tags[1].Name)
	assert.Equal(t, "street-food", tags[2].Name)

	tags, err = ts.FindByNameMatch(ctx, "food", 1)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	// Pattern characters are literal.
	tags, err = ts.FindByNameMatch(ctx, "%_", 10)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "100%_pure", tags[0].Name)

	tags, err = ts.FindByNameMatch(ctx, "food", 0)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
