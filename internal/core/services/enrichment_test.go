package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

type enrichFixture struct {
	store      *countingMediaStore
	resolver   *mockResolver
	vision     *mockVision
	text       *mockEmbedding
	cultural   *mockEmbedding
	multimodal *mockMultimodal
	lock       *mockLock
}

func newEnrichFixture() *enrichFixture {
	return &enrichFixture{
		store:      newCountingMediaStore(),
		resolver:   jpegResolver(),
		vision:     deterministicVision(),
		text:       &mockEmbedding{vec: []float32{0.1, 0.2}},
		cultural:   &mockEmbedding{vec: []float32{0.3, 0.4}},
		multimodal: &mockMultimodal{vec: []float32{0.5, 0.6}},
		lock:       &mockLock{},
	}
}

func (f *enrichFixture) orchestrator() *EnrichmentOrchestrator {
	return NewEnrichmentOrchestrator(
		f.store,
		f.resolver,
		f.lock,
		NewContentAnalyzer(f.vision, AnalyzerConfig{Timeout: time.Second}),
		NewEmbeddingGenerator(f.text, f.cultural, f.multimodal, EmbeddingConfig{Timeout: time.Second}),
		NewTagCatalog(nil),
	)
}

func (f *enrichFixture) seed(t *testing.T, item *domain.MediaItem) {
	t.Helper()
	require.NoError(t, f.store.SaveMedia(context.Background(), item))
}

func enrichID(o *EnrichmentOrchestrator, id string) domain.EnrichResult {
	return o.Enrich(context.Background(), domain.EnrichRequest{MediaID: id})
}

func TestEnrich_Success(t *testing.T) {
	f := newEnrichFixture()
	f.seed(t, &domain.MediaItem{
		ID:          "m1",
		URI:         "/media/pandal.jpg",
		Description: "We celebrated Pohela Boishakh together",
	})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success, result.Error)
	assert.Equal(t, []string{"festival", "crowd", "durga puja"}, result.Tags)
	require.NotNil(t, result.Story)
	assert.Equal(t, "Evening at the pandal", result.Story.Title)
	assert.Empty(t, result.Failed)

	media := result.Media
	require.NotNil(t, media)
	assert.Equal(t, result.Tags, media.Tags)
	assert.Contains(t, media.BengaliTags, "pohela-boishakh")
	assert.Equal(t, "Evening at the pandal", media.Title)
	assert.Equal(t, "We celebrated Pohela Boishakh together", media.Description)
	assert.Equal(t, []float32{0.1, 0.2}, media.TextEmbedding)
	assert.Equal(t, []float32{0.5, 0.6}, media.MultimodalEmbedding)
	assert.Equal(t, []float32{0.3, 0.4}, media.CulturalEmbedding)

	assert.Equal(t, 1, f.store.patchCount())
	assert.Equal(t, "We celebrated Pohela Boishakh together", f.text.lastText())
	assert.Equal(t, int32(1), f.lock.acquired)
	assert.Equal(t, int32(1), f.lock.released)
}

func TestEnrich_TitleOnlySetWhenAbsent(t *testing.T) {
	f := newEnrichFixture()
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", Title: "My own title"})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success)
	assert.Equal(t, "My own title", result.Media.Title)
	assert.False(t, f.store.last.Has(domain.FieldTitle))
	assert.True(t, f.store.last.Has(domain.FieldTags))
	assert.True(t, f.store.last.Has(domain.FieldStory))
}

func TestEnrich_NoTitleWhenStoryHasNone(t *testing.T) {
	f := newEnrichFixture()
	f.vision.storyOut = `{"summary": "Just a summary"}`
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success)
	assert.Empty(t, result.Media.Title)
	assert.False(t, f.store.last.Has(domain.FieldTitle))
}

func TestEnrich_StoryWithoutSummaryUsesDescription(t *testing.T) {
	f := newEnrichFixture()
	f.vision.storyOut = `{"title": "Ashtami night"}`
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", Description: "Durga Puja pandal on Ashtami"})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success, result.Error)
	require.NotNil(t, result.Story)
	assert.Equal(t, "Durga Puja pandal on Ashtami", result.Story.Summary)
	assert.Equal(t, "Ashtami night", result.Media.Title)
	assert.Equal(t, 1, f.store.patchCount())
}

func TestEnrich_StoryWithoutSummaryNoDescription_NoWrites(t *testing.T) {
	f := newEnrichFixture()
	f.vision.storyOut = `{"title": "Ashtami night"}`
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrAnalysisFailed)
	assert.Equal(t, 0, f.store.patchCount())
}

func TestEnrich_NotFound_NoWrites(t *testing.T) {
	f := newEnrichFixture()

	result := enrichID(f.orchestrator(), "missing")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrNotFound)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, 0, f.store.patchCount())
	assert.Equal(t, 0, f.vision.callCount())
	assert.Equal(t, int32(1), f.lock.released)
}

func TestEnrich_AnalyzerFailure_NoWrites(t *testing.T) {
	f := newEnrichFixture()
	f.vision.storyErr = errors.New("vision backend down")
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", Description: "desc"})

	result := enrichID(f.orchestrator(), "m1")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrAnalysisFailed)
	assert.Contains(t, result.Error, "vision backend down")
	assert.Equal(t, 0, f.store.patchCount())
	assert.Equal(t, 0, f.text.callCount(), "embeddings must not start after phase 1 fails")
	assert.Equal(t, 0, f.cultural.callCount())
}

func TestEnrich_UnreadableContent_NoWrites(t *testing.T) {
	f := newEnrichFixture()
	f.resolver.err = errors.New("open /a.jpg: no such file")
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrAnalysisFailed)
	assert.Equal(t, 0, f.store.patchCount())
	assert.Equal(t, 0, f.vision.callCount())
}

func TestEnrich_OneEmbeddingFails_OthersWritten(t *testing.T) {
	kinds := []struct {
		kind  domain.EmbeddingKind
		field string
		fail  func(f *enrichFixture)
	}{
		{domain.EmbeddingText, domain.FieldTextEmbedding, func(f *enrichFixture) { f.text.err = errors.New("boom") }},
		{domain.EmbeddingMultimodal, domain.FieldMultimodalEmbedding, func(f *enrichFixture) { f.multimodal.err = errors.New("boom") }},
		{domain.EmbeddingCultural, domain.FieldCulturalEmbedding, func(f *enrichFixture) { f.cultural.err = errors.New("boom") }},
	}

	for _, tt := range kinds {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := newEnrichFixture()
			tt.fail(f)
			f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", Description: "Baul singers"})

			result := enrichID(f.orchestrator(), "m1")

			require.True(t, result.Success)
			assert.Equal(t, []domain.EmbeddingKind{tt.kind}, result.Failed)
			assert.Equal(t, 1, f.store.patchCount())

			present := 0
			for _, field := range []string{domain.FieldTextEmbedding, domain.FieldMultimodalEmbedding, domain.FieldCulturalEmbedding} {
				if field == tt.field {
					assert.False(t, f.store.last.Has(field), "failed field %s must be omitted", field)
					continue
				}
				assert.True(t, f.store.last.Has(field), "field %s must be present", field)
				present++
			}
			assert.Equal(t, 2, present)
		})
	}
}

func TestEnrich_AllEmbeddingsFail_StillSucceeds(t *testing.T) {
	f := newEnrichFixture()
	f.text.err = errors.New("x")
	f.cultural.err = errors.New("y")
	f.multimodal.err = errors.New("z")
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success)
	assert.Len(t, result.Failed, 3)
	assert.Equal(t, []string{domain.FieldTags, domain.FieldBengaliTags, domain.FieldStory, domain.FieldTitle}, f.store.last.Fields())
}

func TestEnrich_EmbeddingTextFallsBackToStory(t *testing.T) {
	f := newEnrichFixture()
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	require.True(t, result.Success)
	assert.Equal(t, "Families gather under the lights of a puja pandal.", f.text.lastText())
	assert.Empty(t, result.Media.BengaliTags)
	assert.NotNil(t, f.store.last.BengaliTags, "bengaliTags is always replaced")
}

func TestEmbeddingText(t *testing.T) {
	assert.Equal(t, "desc", embeddingText(" desc ", domain.Story{Summary: "s", Title: "t"}))
	assert.Equal(t, "s", embeddingText("", domain.Story{Summary: "s", Title: "t"}))
	assert.Equal(t, "t", embeddingText("", domain.Story{Title: "t"}))
	assert.Equal(t, "", embeddingText("", domain.Story{}))
}

func TestEnrich_Idempotent(t *testing.T) {
	f := newEnrichFixture()
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", Description: "Rosogolla at Durga Puja"})
	o := f.orchestrator()

	first := enrichID(o, "m1")
	second := enrichID(o, "m1")

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Tags, second.Tags)
	assert.Equal(t, first.Story, second.Story)
	assert.Equal(t, first.Media.BengaliTags, second.Media.BengaliTags)
	assert.Equal(t, []string{"durga-puja", "rosogolla"}, second.Media.BengaliTags)
	assert.Equal(t, first.Media.Title, second.Media.Title)
}

func TestEnrich_InvalidID(t *testing.T) {
	f := newEnrichFixture()

	result := enrichID(f.orchestrator(), "  ")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrInvalidInput)
	assert.Equal(t, int32(0), f.lock.acquired)
}

func TestEnrich_LockHeldElsewhere(t *testing.T) {
	f := newEnrichFixture()
	f.lock.err = domain.ErrEnrichmentInProgress
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})
	o := f.orchestrator()

	result := enrichID(o, "m1")

	assert.ErrorIs(t, result.Err, domain.ErrEnrichmentInProgress)
	assert.Equal(t, 0, f.vision.callCount())
	assert.False(t, o.IsEnriching("m1"), "local marker released after shared lock failure")
}

func TestEnrich_AtMostOneInFlightPerItem(t *testing.T) {
	f := newEnrichFixture()
	f.vision.block = true
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})
	o := NewEnrichmentOrchestrator(
		f.store, f.resolver, nil,
		NewContentAnalyzer(f.vision, AnalyzerConfig{Timeout: 200 * time.Millisecond}),
		NewEmbeddingGenerator(f.text, f.cultural, f.multimodal, EmbeddingConfig{}),
		nil,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		enrichID(o, "m1")
	}()

	require.Eventually(t, func() bool { return o.IsEnriching("m1") }, time.Second, 5*time.Millisecond)
	second := enrichID(o, "m1")
	wg.Wait()

	assert.False(t, second.Success)
	assert.ErrorIs(t, second.Err, domain.ErrEnrichmentInProgress)
	assert.False(t, o.IsEnriching("m1"))
	assert.Equal(t, 0, f.store.patchCount())
}

func TestEnrich_ForbiddenForOtherOwner(t *testing.T) {
	f := newEnrichFixture()
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg", OwnerID: "alice"})

	result := f.orchestrator().Enrich(context.Background(), domain.EnrichRequest{
		MediaID:   "m1",
		Requester: domain.Identity{UserID: "bob"},
	})

	assert.ErrorIs(t, result.Err, domain.ErrAuthInvalid)
	assert.Equal(t, 0, f.vision.callCount())
}

func TestEnrich_PersistFailure(t *testing.T) {
	f := newEnrichFixture()
	f.store.patchErr = errors.New("disk full")
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.jpg"})

	result := enrichID(f.orchestrator(), "m1")

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrPersistFailed)
	assert.Equal(t, 1, f.store.patchCount())
}

func TestEnrich_StoreFetchError(t *testing.T) {
	f := newEnrichFixture()
	f.store.getErr = errors.New("connection reset")

	result := enrichID(f.orchestrator(), "m1")

	assert.False(t, result.Success)
	assert.NotErrorIs(t, result.Err, domain.ErrNotFound)
	assert.Contains(t, result.Error, "connection reset")
}

// recordingMultimodal captures the content it is asked to embed.
type recordingMultimodal struct {
	mockMultimodal
	seen *domain.MediaContent
}

func (m *recordingMultimodal) EmbedMultimodal(ctx context.Context, content *domain.MediaContent, text string) ([]float32, error) {
	m.seen = content
	return m.mockMultimodal.EmbedMultimodal(ctx, content, text)
}

func TestEnrich_DeclaredMimeTypeUsedWhenSniffingFails(t *testing.T) {
	f := newEnrichFixture()
	f.resolver.content = &domain.MediaContent{MimeType: "application/octet-stream", Data: []byte{1}}
	f.seed(t, &domain.MediaItem{ID: "m1", URI: "/a.heic", MimeType: "image/heic"})
	recorder := &recordingMultimodal{mockMultimodal: mockMultimodal{vec: []float32{1}}}
	o := NewEnrichmentOrchestrator(
		f.store, f.resolver, nil,
		NewContentAnalyzer(f.vision, AnalyzerConfig{}),
		NewEmbeddingGenerator(f.text, f.cultural, recorder, EmbeddingConfig{}),
		nil,
	)

	result := enrichID(o, "m1")

	require.True(t, result.Success)
	require.NotNil(t, recorder.seen)
	assert.Equal(t, "image/heic", recorder.seen.MimeType)
	assert.Equal(t, "/a.heic", recorder.seen.Locator)
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "success", outcomeLabel(domain.EnrichResult{Success: true}))
	assert.Equal(t, "not_found", outcomeLabel(domain.FailedResult(domain.ErrNotFound)))
	assert.Equal(t, "analysis_failed", outcomeLabel(domain.FailedResult(domain.ErrAnalysisFailed)))
	assert.Equal(t, "error", outcomeLabel(domain.FailedResult(errors.New("x"))))
}
