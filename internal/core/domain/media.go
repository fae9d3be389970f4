package domain

import (
	"slices"
	"strings"
	"time"
)

// MediaItem is an uploaded image or video. It is created by the upload
// flow; enrichment only ever patches the fields described on MediaPatch.
type MediaItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// OwnerID is the user that uploaded the item. Empty for system items.
	OwnerID string `json:"ownerId,omitempty"`

	// URI locates the binary content (file path, file:// or http(s) URL).
	URI string `json:"uri"`

	// MimeType is the declared content type, if known.
	MimeType string `json:"mimeType,omitempty"`

	// Description is caller-supplied text. Never modified by enrichment.
	Description string `json:"description,omitempty"`

	// Title is set by enrichment only when empty.
	Title string `json:"title,omitempty"`

	// Tags are the analyzer's tags, in the order produced.
	Tags []string `json:"tags"`

	// BengaliTags are the curated catalog tags found in Description.
	BengaliTags []string `json:"bengaliTags"`

	// Story is the narrative produced by content analysis.
	Story *Story `json:"story,omitempty"`

	// TextEmbedding, MultimodalEmbedding and CulturalEmbedding are each
	// written only when their derivation succeeded.
	TextEmbedding       []float32 `json:"textEmbedding,omitempty"`
	MultimodalEmbedding []float32 `json:"multimodalEmbedding,omitempty"`
	CulturalEmbedding   []float32 `json:"culturalEmbedding,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasEmbeddings reports which embedding fields are populated.
func (m *MediaItem) HasEmbeddings() map[EmbeddingKind]bool {
	return map[EmbeddingKind]bool{
		EmbeddingText:       len(m.TextEmbedding) > 0,
		EmbeddingMultimodal: len(m.MultimodalEmbedding) > 0,
		EmbeddingCultural:   len(m.CulturalEmbedding) > 0,
	}
}

// Story is the structured narrative for a media item.
type Story struct {
	Title           string `json:"title,omitempty"`
	Summary         string `json:"summary"`
	CulturalContext string `json:"culturalContext,omitempty"`
}

// EmbeddingKind names one of the three embedding derivations.
type EmbeddingKind string

// Embedding kinds.
const (
	EmbeddingText       EmbeddingKind = "text"
	EmbeddingMultimodal EmbeddingKind = "multimodal"
	EmbeddingCultural   EmbeddingKind = "cultural"
)

// AllEmbeddingKinds returns the embedding kinds in patch order.
func AllEmbeddingKinds() []EmbeddingKind {
	return []EmbeddingKind{EmbeddingText, EmbeddingMultimodal, EmbeddingCultural}
}

// Patch field names as reported by MediaPatch.Fields.
const (
	FieldTags                = "tags"
	FieldBengaliTags         = "bengaliTags"
	FieldStory               = "story"
	FieldTitle               = "title"
	FieldTextEmbedding       = "textEmbedding"
	FieldMultimodalEmbedding = "multimodalEmbedding"
	FieldCulturalEmbedding   = "culturalEmbedding"
)

// MediaPatch is a partial update of a MediaItem. A nil field is left
// untouched by the store.
type MediaPatch struct {
	Tags                []string
	BengaliTags         []string
	Story               *Story
	Title               *string
	TextEmbedding       []float32
	MultimodalEmbedding []float32
	CulturalEmbedding   []float32
}

// Fields returns the names of the fields present in the patch.
func (p *MediaPatch) Fields() []string {
	var fields []string
	if p.Tags != nil {
		fields = append(fields, FieldTags)
	}
	if p.BengaliTags != nil {
		fields = append(fields, FieldBengaliTags)
	}
	if p.Story != nil {
		fields = append(fields, FieldStory)
	}
	if p.Title != nil {
		fields = append(fields, FieldTitle)
	}
	if p.TextEmbedding != nil {
		fields = append(fields, FieldTextEmbedding)
	}
	if p.MultimodalEmbedding != nil {
		fields = append(fields, FieldMultimodalEmbedding)
	}
	if p.CulturalEmbedding != nil {
		fields = append(fields, FieldCulturalEmbedding)
	}
	return fields
}

// IsEmpty returns true if the patch updates nothing.
func (p *MediaPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Has reports whether field is present in the patch.
func (p *MediaPatch) Has(field string) bool {
	for _, f := range p.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// SetEmbedding stores vec in the slot for kind.
func (p *MediaPatch) SetEmbedding(kind EmbeddingKind, vec []float32) {
	switch kind {
	case EmbeddingText:
		p.TextEmbedding = vec
	case EmbeddingMultimodal:
		p.MultimodalEmbedding = vec
	case EmbeddingCultural:
		p.CulturalEmbedding = vec
	}
}

// Apply copies the present fields onto m.
func (p *MediaPatch) Apply(m *MediaItem) {
	if p.Tags != nil {
		m.Tags = slices.Clone(p.Tags)
	}
	if p.BengaliTags != nil {
		m.BengaliTags = slices.Clone(p.BengaliTags)
	}
	if p.Story != nil {
		s := *p.Story
		m.Story = &s
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.TextEmbedding != nil {
		m.TextEmbedding = slices.Clone(p.TextEmbedding)
	}
	if p.MultimodalEmbedding != nil {
		m.MultimodalEmbedding = slices.Clone(p.MultimodalEmbedding)
	}
	if p.CulturalEmbedding != nil {
		m.CulturalEmbedding = slices.Clone(p.CulturalEmbedding)
	}
}

// MediaContent is the resolved binary content behind a locator.
type MediaContent struct {
	Locator  string
	MimeType string
	Data     []byte
}

// IsImage returns true for image/* content.
func (c *MediaContent) IsImage() bool {
	return strings.HasPrefix(c.MimeType, "image/")
}

// IsVideo returns true for video/* content.
func (c *MediaContent) IsVideo() bool {
	return strings.HasPrefix(c.MimeType, "video/")
}

// Analysis is the output of content analysis. Tags and Story are only
// ever written together.
type Analysis struct {
	Tags  []string
	Story Story
}

// Tag is a user-contributed tag with its usage count.
type Tag struct {
	Name      string    `json:"name"`
	UseCount  int       `json:"useCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is the authenticated caller of an operation.
// The zero value is an internal caller (CLI, MCP) with full access.
type Identity struct {
	UserID string
	Email  string
}

// IsAnonymous returns true for the internal caller.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// CanEnrich reports whether the identity may enrich m.
func (i Identity) CanEnrich(m *MediaItem) bool {
	return i.IsAnonymous() || m.OwnerID == "" || m.OwnerID == i.UserID
}

// EnrichRequest asks for one media item to be enriched.
type EnrichRequest struct {
	MediaID   string
	Requester Identity
}

// EnrichResult is the outcome of one enrichment run.
type EnrichResult struct {
	Success bool       `json:"success"`
	Media   *MediaItem `json:"media,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
	Story   *Story     `json:"story,omitempty"`
	Error   string     `json:"error,omitempty"`

	// Failed lists embedding kinds that were omitted from the patch.
	Failed []EmbeddingKind `json:"failedEmbeddings,omitempty"`

	// Err is the wrapped failure for callers mapping errors to status codes.
	Err error `json:"-"`
}

// FailedResult builds an unsuccessful result from err.
func FailedResult(err error) EnrichResult {
	return EnrichResult{Success: false, Error: err.Error(), Err: err}
}
