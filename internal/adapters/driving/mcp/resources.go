package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

const uriScheme = "bonglore://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "media",
		Name:        "media",
		Description: "Recently uploaded media items",
		MIMEType:    "application/json",
	}, s.handleMediaListResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "media/{mediaId}",
		Name:        "media-item",
		Description: "A media item with its tags and story",
		MIMEType:    "application/json",
	}, s.handleMediaResource)
}

// mediaInfo is the resource view of a media item. Embedding vectors are
// reduced to presence flags.
type mediaInfo struct {
	ID          string                        `json:"id"`
	URI         string                        `json:"uri"`
	Title       string                        `json:"title,omitempty"`
	Description string                        `json:"description,omitempty"`
	Tags        []string                      `json:"tags"`
	BengaliTags []string                      `json:"bengaliTags"`
	Story       *domain.Story                 `json:"story,omitempty"`
	Embeddings  map[domain.EmbeddingKind]bool `json:"embeddings,omitempty"`
}

func toMediaInfo(m *domain.MediaItem, withEmbeddings bool) mediaInfo {
	info := mediaInfo{
		ID:          m.ID,
		URI:         m.URI,
		Title:       m.Title,
		Description: m.Description,
		Tags:        m.Tags,
		BengaliTags: m.BengaliTags,
		Story:       m.Story,
	}
	if withEmbeddings {
		info.Embeddings = m.HasEmbeddings()
	}
	return info
}

func (s *Server) handleMediaListResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	items, err := s.ports.Media.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}

	infos := make([]mediaInfo, len(items))
	for i := range items {
		infos[i] = toMediaInfo(&items[i], false)
	}

	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleMediaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractMediaID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Media.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting media: %w", err)
	}

	return jsonResource(req.Params.URI, toMediaInfo(item, true))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMediaID extracts the media ID from a URI like bonglore://media/{mediaId}.
func extractMediaID(uri string) string {
	const prefix = uriScheme + "media/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
