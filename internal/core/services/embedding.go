package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/metrics"
)

// Ensure EmbeddingGenerator can take custom prompts.
var _ driven.PromptStoreAware = (*EmbeddingGenerator)(nil)

// DefaultEmbeddingTimeout bounds each embedding call.
const DefaultEmbeddingTimeout = 30 * time.Second

// defaultCulturalPrompt is the fallback when no PromptStore is configured.
const defaultCulturalPrompt = `Bengali cultural heritage archive entry. Festivals, rituals, food, music, art, attire and places of Bengal. %s`

// errEmptyText marks a derivation skipped because there is nothing to embed.
var errEmptyText = errors.New("empty text")

// EmbeddingConfig holds EmbeddingGenerator settings.
type EmbeddingConfig struct {
	// Timeout bounds each derivation (default: 30s).
	Timeout time.Duration
}

// EmbeddingGenerator produces the text, multimodal and cultural embeddings
// of a media item. Each derivation fails independently.
type EmbeddingGenerator struct {
	text        driven.EmbeddingService
	cultural    driven.EmbeddingService
	multimodal  driven.MultimodalEmbeddingService
	promptStore driven.PromptStore
	timeout     time.Duration
}

// NewEmbeddingGenerator creates a generator. Any service may be nil, which
// makes that derivation fail with domain.ErrEmbeddingUnavailable. A nil
// cultural service reuses the text service.
func NewEmbeddingGenerator(
	text driven.EmbeddingService,
	cultural driven.EmbeddingService,
	multimodal driven.MultimodalEmbeddingService,
	cfg EmbeddingConfig,
) *EmbeddingGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultEmbeddingTimeout
	}
	if cultural == nil {
		cultural = text
	}
	return &EmbeddingGenerator{
		text:       text,
		cultural:   cultural,
		multimodal: multimodal,
		timeout:    cfg.Timeout,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (g *EmbeddingGenerator) SetPromptStore(store driven.PromptStore) {
	g.promptStore = store
}

// Text embeds text. Empty text is a no-op returning no vector and no error.
func (g *EmbeddingGenerator) Text(ctx context.Context, text string) ([]float32, error) {
	vec, err := g.embedText(ctx, g.text, text)
	if errors.Is(err, errEmptyText) {
		return nil, nil
	}
	return vec, err
}

// Cultural embeds text framed by the cultural prompt. Empty text is a no-op.
func (g *EmbeddingGenerator) Cultural(ctx context.Context, text string) ([]float32, error) {
	vec, err := g.embedCultural(ctx, text)
	if errors.Is(err, errEmptyText) {
		return nil, nil
	}
	return vec, err
}

// Multimodal embeds content together with text. text may be empty.
func (g *EmbeddingGenerator) Multimodal(ctx context.Context, content *domain.MediaContent, text string) ([]float32, error) {
	if g.multimodal == nil {
		return nil, fmt.Errorf("%w: multimodal: %w", domain.ErrEmbeddingFailed, domain.ErrEmbeddingUnavailable)
	}
	if content == nil || len(content.Data) == 0 {
		return nil, fmt.Errorf("%w: multimodal: content is empty", domain.ErrEmbeddingFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vec, err := g.multimodal.EmbedMultimodal(ctx, content, strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: multimodal: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: multimodal: empty vector", domain.ErrEmbeddingFailed)
	}
	return vec, nil
}

func (g *EmbeddingGenerator) embedCultural(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyText
	}
	framed := fmt.Sprintf(loadPrompt(g.promptStore, driven.PromptCulturalEmbedding, defaultCulturalPrompt), strings.TrimSpace(text))
	return g.embedText(ctx, g.cultural, framed)
}

func (g *EmbeddingGenerator) embedText(ctx context.Context, svc driven.EmbeddingService, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyText
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, domain.ErrEmbeddingUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vec, err := svc.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty vector", domain.ErrEmbeddingFailed)
	}
	return vec, nil
}

// EmbeddingSet collects the outcome of the three derivations. A kind that
// was skipped appears in neither map.
type EmbeddingSet struct {
	Vectors map[domain.EmbeddingKind][]float32
	Errors  map[domain.EmbeddingKind]error
}

// FailedKinds returns the kinds that failed, in patch order.
func (s EmbeddingSet) FailedKinds() []domain.EmbeddingKind {
	var failed []domain.EmbeddingKind
	for _, kind := range domain.AllEmbeddingKinds() {
		if _, ok := s.Errors[kind]; ok {
			failed = append(failed, kind)
		}
	}
	return failed
}

// embeddingOutcome is the tagged result of one derivation task.
type embeddingOutcome struct {
	kind    domain.EmbeddingKind
	vector  []float32
	err     error
	skipped bool
}

// GenerateAll runs the three derivations concurrently and waits for all of
// them. A failure never cancels the other derivations.
func (g *EmbeddingGenerator) GenerateAll(ctx context.Context, content *domain.MediaContent, text string) EmbeddingSet {
	kinds := domain.AllEmbeddingKinds()
	outcomes := make([]embeddingOutcome, len(kinds))

	var group errgroup.Group
	for i, kind := range kinds {
		group.Go(func() error {
			outcomes[i] = g.derive(ctx, kind, content, text)
			return nil
		})
	}
	_ = group.Wait()

	set := EmbeddingSet{
		Vectors: make(map[domain.EmbeddingKind][]float32),
		Errors:  make(map[domain.EmbeddingKind]error),
	}
	for _, out := range outcomes {
		switch {
		case out.skipped:
			logger.Debug("%s embedding skipped: no text", out.kind)
			metrics.RecordEmbedding(string(out.kind), "skipped")
		case out.err != nil:
			logger.Warn("%s embedding failed: %v", out.kind, out.err)
			metrics.RecordEmbedding(string(out.kind), "failure")
			set.Errors[out.kind] = out.err
		default:
			metrics.RecordEmbedding(string(out.kind), "success")
			set.Vectors[out.kind] = out.vector
		}
	}
	return set
}

func (g *EmbeddingGenerator) derive(ctx context.Context, kind domain.EmbeddingKind, content *domain.MediaContent, text string) embeddingOutcome {
	var (
		vec []float32
		err error
	)
	switch kind {
	case domain.EmbeddingText:
		vec, err = g.embedText(ctx, g.text, text)
	case domain.EmbeddingMultimodal:
		vec, err = g.Multimodal(ctx, content, text)
	case domain.EmbeddingCultural:
		vec, err = g.embedCultural(ctx, text)
	default:
		err = fmt.Errorf("%w: unknown embedding kind %q", domain.ErrEmbeddingFailed, kind)
	}
	if errors.Is(err, errEmptyText) {
		return embeddingOutcome{kind: kind, skipped: true}
	}
	return embeddingOutcome{kind: kind, vector: vec, err: err}
}
