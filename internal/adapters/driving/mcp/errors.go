// Package mcp provides an MCP (Model Context Protocol) server adapter for Bong-Lore.
// It lets AI assistants enrich media items and suggest Bengali tags.
package mcp

import "errors"

var (
	// ErrMissingEnrichmentService is returned when the enrichment service is not provided.
	ErrMissingEnrichmentService = errors.New("mcp: enrichment service is required")

	// ErrMissingSuggestService is returned when the tag suggestion service is not provided.
	ErrMissingSuggestService = errors.New("mcp: tag suggestion service is required")
)
