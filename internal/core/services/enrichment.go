package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/metrics"
)

// Ensure EnrichmentOrchestrator implements the interface.
var _ driving.EnrichmentService = (*EnrichmentOrchestrator)(nil)

// octetStream is the MIME type resolvers report when sniffing fails.
const octetStream = "application/octet-stream"

// EnrichmentOrchestrator runs the enrichment pipeline for one media item:
// analyze, then embed concurrently, then write a single merge patch.
type EnrichmentOrchestrator struct {
	mediaStore driven.MediaStore
	resolver   driven.ContentResolver
	lock       driven.EnrichmentLock
	analyzer   *ContentAnalyzer
	embeddings *EmbeddingGenerator
	catalog    *TagCatalog

	mu                sync.Mutex
	activeEnrichments map[string]time.Time
}

// NewEnrichmentOrchestrator creates a new orchestrator.
// lock is optional; without it only enrichments within this process are
// serialised per media item.
func NewEnrichmentOrchestrator(
	mediaStore driven.MediaStore,
	resolver driven.ContentResolver,
	lock driven.EnrichmentLock,
	analyzer *ContentAnalyzer,
	embeddings *EmbeddingGenerator,
	catalog *TagCatalog,
) *EnrichmentOrchestrator {
	if catalog == nil {
		catalog = NewTagCatalog(nil)
	}
	return &EnrichmentOrchestrator{
		mediaStore:        mediaStore,
		resolver:          resolver,
		lock:              lock,
		analyzer:          analyzer,
		embeddings:        embeddings,
		catalog:           catalog,
		activeEnrichments: make(map[string]time.Time),
	}
}

// Enrich runs the pipeline for req.MediaID.
func (o *EnrichmentOrchestrator) Enrich(ctx context.Context, req domain.EnrichRequest) domain.EnrichResult {
	start := time.Now()
	result := o.enrich(ctx, req)
	metrics.RecordEnrichment(outcomeLabel(result), time.Since(start))

	if result.Success {
		logger.Info("enriched media %s in %v (%d tags, failed embeddings: %v)",
			req.MediaID, time.Since(start).Round(time.Millisecond), len(result.Tags), result.Failed)
	} else {
		logger.Warn("enrich media %s failed: %s", req.MediaID, result.Error)
	}
	return result
}

// IsEnriching returns true if mediaID is being enriched by this process.
func (o *EnrichmentOrchestrator) IsEnriching(mediaID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.activeEnrichments[mediaID]
	return ok
}

//nolint:gocyclo // Pipeline function with necessary sequential steps
func (o *EnrichmentOrchestrator) enrich(ctx context.Context, req domain.EnrichRequest) domain.EnrichResult {
	id := strings.TrimSpace(req.MediaID)
	if id == "" {
		return domain.FailedResult(fmt.Errorf("%w: media id is required", domain.ErrInvalidInput))
	}

	release, err := o.acquire(ctx, id)
	if err != nil {
		return domain.FailedResult(fmt.Errorf("enrich %s: %w", id, err))
	}
	defer release()

	logger.Section("Enrich " + id)

	// 1. Fetch the item
	item, err := o.mediaStore.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FailedResult(fmt.Errorf("media item %s: %w", id, domain.ErrNotFound))
		}
		return domain.FailedResult(fmt.Errorf("fetch media %s: %w", id, err))
	}
	if !req.Requester.CanEnrich(item) {
		return domain.FailedResult(fmt.Errorf("media item %s: %w", id, domain.ErrAuthInvalid))
	}

	// 2. Analyze; tags and story are all-or-nothing
	content, err := o.resolver.Resolve(ctx, item.URI)
	if err != nil {
		return domain.FailedResult(fmt.Errorf("%w: read %s: %w", domain.ErrAnalysisFailed, item.URI, err))
	}
	if item.MimeType != "" && (content.MimeType == "" || content.MimeType == octetStream) {
		content.MimeType = item.MimeType
	}

	analysis, err := o.analyzer.Analyze(ctx, content, item.Description)
	if err != nil {
		return domain.FailedResult(err)
	}
	tags := analysis.Tags
	if tags == nil {
		tags = []string{}
	}
	story := analysis.Story

	// 3. Curated tags from the caller's description
	bengaliTags := o.catalog.MatchDescription(item.Description)
	logger.Debug("curated tags: %v", bengaliTags)

	// 4-5. Embeddings, concurrently, failures omitted
	embeddings := o.embeddings.GenerateAll(ctx, content, embeddingText(item.Description, story))

	// 6. Merge patch
	patch := &domain.MediaPatch{
		Tags:        tags,
		BengaliTags: bengaliTags,
		Story:       &story,
	}
	for kind, vec := range embeddings.Vectors {
		patch.SetEmbedding(kind, vec)
	}
	if item.Title == "" && story.Title != "" {
		title := story.Title
		patch.Title = &title
	}

	// 7. Single write
	updated, err := o.mediaStore.PatchMedia(ctx, id, patch)
	if err != nil {
		return domain.FailedResult(fmt.Errorf("%w: %s: %w", domain.ErrPersistFailed, id, err))
	}

	return domain.EnrichResult{
		Success: true,
		Media:   updated,
		Tags:    tags,
		Story:   &story,
		Failed:  embeddings.FailedKinds(),
	}
}

// acquire claims the in-process marker for id and, when configured, the
// shared lock.
func (o *EnrichmentOrchestrator) acquire(ctx context.Context, id string) (func(), error) {
	o.mu.Lock()
	if _, busy := o.activeEnrichments[id]; busy {
		o.mu.Unlock()
		return nil, domain.ErrEnrichmentInProgress
	}
	o.activeEnrichments[id] = time.Now()
	o.mu.Unlock()
	metrics.EnrichmentsInFlight.Inc()

	releaseLocal := func() {
		o.mu.Lock()
		delete(o.activeEnrichments, id)
		o.mu.Unlock()
		metrics.EnrichmentsInFlight.Dec()
	}

	if o.lock == nil {
		return releaseLocal, nil
	}

	releaseShared, err := o.lock.Acquire(ctx, id)
	if err != nil {
		releaseLocal()
		return nil, err
	}
	return func() {
		releaseShared()
		releaseLocal()
	}, nil
}

// embeddingText picks the text to embed: the caller's description, else
// the story summary, else the story title.
func embeddingText(description string, story domain.Story) string {
	for _, candidate := range []string{description, story.Summary, story.Title} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return ""
}

func outcomeLabel(r domain.EnrichResult) string {
	switch {
	case r.Success:
		return "success"
	case errors.Is(r.Err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(r.Err, domain.ErrEnrichmentInProgress):
		return "in_progress"
	case errors.Is(r.Err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(r.Err, domain.ErrAuthInvalid):
		return "forbidden"
	case errors.Is(r.Err, domain.ErrAnalysisFailed):
		return "analysis_failed"
	case errors.Is(r.Err, domain.ErrPersistFailed):
		return "persist_failed"
	default:
		return "error"
	}
}
