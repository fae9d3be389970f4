package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// defaultSuggestLimit mirrors the suggestion service default.
const defaultSuggestLimit = 10

// EnrichInput is the input schema for the enrich_media tool.
type EnrichInput struct {
	MediaID string `json:"media_id" jsonschema:"the id of the media item to enrich"`
}

// EnrichOutput is the output schema for the enrich_media tool.
type EnrichOutput struct {
	Success          bool     `json:"success"`
	MediaID          string   `json:"media_id,omitempty"`
	Title            string   `json:"title,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	BengaliTags      []string `json:"bengali_tags,omitempty"`
	Story            string   `json:"story,omitempty"`
	CulturalContext  string   `json:"cultural_context,omitempty"`
	FailedEmbeddings []string `json:"failed_embeddings,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// SuggestInput is the input schema for the suggest_tags tool.
type SuggestInput struct {
	Text  string `json:"text" jsonschema:"free text to find Bengali cultural tags for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of tags to return (default 10)"`
}

// SuggestOutput is the output schema for the suggest_tags tool.
type SuggestOutput struct {
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "enrich_media",
		Description: "Analyze a media item and store its tags, story and embeddings",
	}, s.handleEnrich)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_tags",
		Description: "Suggest Bengali cultural tags for free text",
	}, s.handleSuggest)
}

// handleEnrich runs the enrichment pipeline as the internal caller.
// Pipeline failures are reported in the output, not as tool errors.
func (s *Server) handleEnrich(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnrichInput,
) (*mcp.CallToolResult, EnrichOutput, error) {
	id := strings.TrimSpace(input.MediaID)
	if id == "" {
		return nil, EnrichOutput{}, errors.New("media_id is required")
	}

	res := s.ports.Enrichment.Enrich(ctx, domain.EnrichRequest{MediaID: id})
	out := EnrichOutput{
		Success: res.Success,
		Tags:    res.Tags,
		Error:   res.Error,
	}
	if res.Media != nil {
		out.MediaID = res.Media.ID
		out.Title = res.Media.Title
		out.BengaliTags = res.Media.BengaliTags
	}
	if res.Story != nil {
		out.Story = res.Story.Summary
		out.CulturalContext = res.Story.CulturalContext
	}
	for _, kind := range res.Failed {
		out.FailedEmbeddings = append(out.FailedEmbeddings, string(kind))
	}

	return nil, out, nil
}

// handleSuggest handles the suggest_tags tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	tags := s.ports.Suggest.Suggest(ctx, input.Text, limit)
	if tags == nil {
		tags = []string{}
	}

	return nil, SuggestOutput{Tags: tags, Count: len(tags)}, nil
}
