package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// Ensure ContentAnalyzer can take custom prompts.
var _ driven.PromptStoreAware = (*ContentAnalyzer)(nil)

// DefaultAnalysisTimeout bounds both vision calls of one analysis.
const DefaultAnalysisTimeout = 60 * time.Second

// defaultTagsPrompt is the fallback when no PromptStore is configured.
const defaultTagsPrompt = `You are tagging media for a Bengali culture community.
Look at the attached media and list 5 to 15 short, lowercase tags describing
what is shown: objects, people, activities, places, festivals, food, art.
Prefer specific Bengali cultural terms where they apply (durga-puja, alpana,
rosogolla). Join multi-word tags with hyphens.
Return ONLY the tags separated by "|", nothing else.

Uploader's description: %s`

// defaultStoryPrompt is the fallback when no PromptStore is configured.
const defaultStoryPrompt = `Write a short story for the attached media as it would appear in a
Bengali culture archive. Use these tags as hints: %s
Uploader's description: %s

Respond with JSON only:
{"title": "<at most 8 words>", "summary": "<2-4 sentences>", "cultural_context": "<1-2 sentences on the Bengali cultural significance, or empty>"}`

// AnalyzerConfig holds ContentAnalyzer settings.
type AnalyzerConfig struct {
	// Timeout bounds the whole analysis (default: 60s).
	Timeout time.Duration
}

// ContentAnalyzer derives tags and a story for media content using a
// vision model. Tags and story form one unit: either both are produced or
// the analysis fails.
type ContentAnalyzer struct {
	vision      driven.VisionService
	promptStore driven.PromptStore
	timeout     time.Duration
}

// NewContentAnalyzer creates an analyzer. vision may be nil, in which case
// every analysis fails with domain.ErrVisionUnavailable.
func NewContentAnalyzer(vision driven.VisionService, cfg AnalyzerConfig) *ContentAnalyzer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAnalysisTimeout
	}
	return &ContentAnalyzer{
		vision:  vision,
		timeout: cfg.Timeout,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (a *ContentAnalyzer) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Analyze asks the vision model for tags, then for a story hinted by those
// tags and the caller's description. All failures wrap
// domain.ErrAnalysisFailed.
func (a *ContentAnalyzer) Analyze(ctx context.Context, content *domain.MediaContent, hint string) (*domain.Analysis, error) {
	if a.vision == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, domain.ErrVisionUnavailable)
	}
	if content == nil || len(content.Data) == 0 {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrAnalysisFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	hintText := strings.TrimSpace(hint)
	if hintText == "" {
		hintText = "(none)"
	}

	logger.Debug("analyze %s (%s, %d bytes) with %s", content.Locator, content.MimeType, len(content.Data), a.vision.ModelName())

	start := time.Now()
	tagsOut, err := a.vision.Describe(ctx, content,
		fmt.Sprintf(a.loadPrompt(driven.PromptTags, defaultTagsPrompt), hintText),
		driven.DescribeOptions{MaxTokens: 256, Temperature: 0.2},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: generate tags: %w", domain.ErrAnalysisFailed, err)
	}
	tags := parseTags(tagsOut)
	logger.Debug("tags in %v: %v", time.Since(start), tags)

	tagHint := strings.Join(tags, ", ")
	if tagHint == "" {
		tagHint = "(none)"
	}

	storyOut, err := a.vision.Describe(ctx, content,
		fmt.Sprintf(a.loadPrompt(driven.PromptStory, defaultStoryPrompt), tagHint, hintText),
		driven.DescribeOptions{MaxTokens: 1024, Temperature: 0.4, JSON: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: generate story: %w", domain.ErrAnalysisFailed, err)
	}

	story := parseStory(storyOut)
	if story.Summary == "" {
		// The caller's description stands in for a missing summary.
		story.Summary = strings.TrimSpace(hint)
	}
	if story.Summary == "" {
		return nil, fmt.Errorf("%w: story has no summary", domain.ErrAnalysisFailed)
	}
	logger.Debug("story %q in %v", story.Title, time.Since(start))

	return &domain.Analysis{Tags: tags, Story: story}, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (a *ContentAnalyzer) loadPrompt(name, fallback string) string {
	return loadPrompt(a.promptStore, name, fallback)
}

func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}
