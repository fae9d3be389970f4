package mcp

import (
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Enrichment runs the enrichment pipeline.
	Enrichment driving.EnrichmentService

	// Suggest suggests tags for free text.
	Suggest driving.TagSuggestionService

	// Media reads media items. Optional; enables the media resource.
	Media driving.MediaService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Enrichment == nil {
		return ErrMissingEnrichmentService
	}
	if p.Suggest == nil {
		return ErrMissingSuggestService
	}
	return nil
}
