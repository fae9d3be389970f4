package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driven/storage/memory"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockVision implements driven.VisionService for testing.
// Story requests are recognised by opts.JSON.
type mockVision struct {
	tagsOut  string
	storyOut string
	tagsErr  error
	storyErr error
	block    bool // wait for ctx cancellation

	mu      sync.Mutex
	prompts []string
	calls   int32
}

func (m *mockVision) Describe(ctx context.Context, _ *domain.MediaContent, prompt string, opts driven.DescribeOptions) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if opts.JSON {
		return m.storyOut, m.storyErr
	}
	return m.tagsOut, m.tagsErr
}

func (m *mockVision) ModelName() string { return "mock-vision" }
func (m *mockVision) Ping(_ context.Context) error { return nil }
func (m *mockVision) Close() error { return nil }
func (m *mockVision) callCount() int { return int(atomic.LoadInt32(&m.calls)) }

func (m *mockVision) promptAt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompts[i]
}

// deterministicVision returns a vision mock with fixed tags and story.
func deterministicVision() *mockVision {
	return &mockVision{
		tagsOut:  "festival | crowd | Durga Puja | festival",
		storyOut: `{"title": "Evening at the pandal", "summary": "Families gather under the lights of a puja pandal.", "cultural_context": "Durga Puja is the largest festival in Bengal."}`,
	}
}

// mockEmbedding implements driven.EmbeddingService for testing.
type mockEmbedding struct {
	vec   []float32
	err   error
	block bool

	mu    sync.Mutex
	texts []string
	calls int32
}

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.vec, nil
}

func (m *mockEmbedding) Dimensions() int { return len(m.vec) }
func (m *mockEmbedding) ModelName() string { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error { return nil }
func (m *mockEmbedding) callCount() int { return int(atomic.LoadInt32(&m.calls)) }

func (m *mockEmbedding) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// mockMultimodal implements driven.MultimodalEmbeddingService for testing.
type mockMultimodal struct {
	vec   []float32
	err   error
	calls int32
}

func (m *mockMultimodal) EmbedMultimodal(_ context.Context, _ *domain.MediaContent, _ string) ([]float32, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	return m.vec, nil
}

func (m *mockMultimodal) ModelName() string { return "mock-multimodal" }
func (m *mockMultimodal) Ping(_ context.Context) error { return nil }
func (m *mockMultimodal) Close() error { return nil }

// mockResolver implements driven.ContentResolver for testing.
type mockResolver struct {
	content *domain.MediaContent
	err     error
	calls   int32
}

func (m *mockResolver) Resolve(_ context.Context, locator string) (*domain.MediaContent, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	c := *m.content
	c.Locator = locator
	return &c, nil
}

func jpegResolver() *mockResolver {
	return &mockResolver{content: &domain.MediaContent{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}}
}

// countingMediaStore wraps the memory store and counts writes.
type countingMediaStore struct {
	*memory.MediaStore
	patches  int32
	patchErr error
	getErr   error
	last     *domain.MediaPatch
}

func newCountingMediaStore() *countingMediaStore {
	return &countingMediaStore{MediaStore: memory.NewMediaStore()}
}

func (s *countingMediaStore) GetMedia(ctx context.Context, id string) (*domain.MediaItem, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MediaStore.GetMedia(ctx, id)
}

func (s *countingMediaStore) PatchMedia(ctx context.Context, id string, patch *domain.MediaPatch) (*domain.MediaItem, error) {
	atomic.AddInt32(&s.patches, 1)
	s.last = patch
	if s.patchErr != nil {
		return nil, s.patchErr
	}
	return s.MediaStore.PatchMedia(ctx, id, patch)
}

func (s *countingMediaStore) patchCount() int { return int(atomic.LoadInt32(&s.patches)) }

// failingTagStore implements driven.TagStore and fails every query.
type failingTagStore struct{}

func (failingTagStore) FindByNameMatch(_ context.Context, _ string, _ int) ([]domain.Tag, error) {
	return nil, errors.New("connection refused")
}
func (failingTagStore) IncrementUseCount(_ context.Context, _ []string) error {
	return errors.New("connection refused")
}
func (failingTagStore) GetTag(_ context.Context, _ string) (*domain.Tag, error) {
	return nil, errors.New("connection refused")
}

// mockLock implements driven.EnrichmentLock for testing.
type mockLock struct {
	err      error
	acquired int32
	released int32
}

func (m *mockLock) Acquire(_ context.Context, _ string) (func(), error) {
	if m.err != nil {
		return nil, m.err
	}
	atomic.AddInt32(&m.acquired, 1)
	return func() { atomic.AddInt32(&m.released, 1) }, nil
}

// mapPromptStore implements driven.PromptStore for testing.
type mapPromptStore map[string]string

func (m mapPromptStore) Load(name string) (string, error) {
	if p, ok := m[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (m mapPromptStore) Reload() {}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
