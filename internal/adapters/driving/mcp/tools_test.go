package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

func TestServer_handleEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("returns enrichment result", func(t *testing.T) {
		enrich := &mockEnrichmentService{
			result: domain.EnrichResult{
				Success: true,
				Media: &domain.MediaItem{
					ID:          "m1",
					Title:       "Durga Puja",
					BengaliTags: []string{"Durga Puja"},
				},
				Tags:   []string{"festival", "pandal"},
				Story:  &domain.Story{Summary: "A pandal at night", CulturalContext: "Autumn festival"},
				Failed: []domain.EmbeddingKind{domain.EmbeddingMultimodal},
			},
		}
		ports := validPorts()
		ports.Enrichment = enrich
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, out, err := server.handleEnrich(ctx, nil, EnrichInput{MediaID: " m1 "})

		require.NoError(t, err)
		assert.Equal(t, "m1", enrich.got.MediaID)
		assert.True(t, enrich.got.Requester.IsAnonymous())
		assert.True(t, out.Success)
		assert.Equal(t, "m1", out.MediaID)
		assert.Equal(t, "Durga Puja", out.Title)
		assert.Equal(t, []string{"festival", "pandal"}, out.Tags)
		assert.Equal(t, []string{"Durga Puja"}, out.BengaliTags)
		assert.Equal(t, "A pandal at night", out.Story)
		assert.Equal(t, "Autumn festival", out.CulturalContext)
		assert.Equal(t, []string{"multimodal"}, out.FailedEmbeddings)
	})

	t.Run("failure is reported in output", func(t *testing.T) {
		ports := validPorts()
		ports.Enrichment = &mockEnrichmentService{
			result: domain.FailedResult(domain.ErrNotFound),
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, out, err := server.handleEnrich(ctx, nil, EnrichInput{MediaID: "missing"})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "not found", out.Error)
	})

	t.Run("empty media id is a tool error", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		_, _, err = server.handleEnrich(ctx, nil, EnrichInput{MediaID: "  "})
		require.Error(t, err)
	})
}

func TestServer_handleSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tags", func(t *testing.T) {
		suggest := &mockSuggestService{tags: []string{"Rabindranath Tagore", "Rabindra Sangeet"}}
		ports := validPorts()
		ports.Suggest = suggest
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, out, err := server.handleSuggest(ctx, nil, SuggestInput{Text: "rabindra", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
		assert.Equal(t, "rabindra", suggest.gotText)
		assert.Equal(t, 5, suggest.gotLimit)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		suggest := &mockSuggestService{}
		ports := validPorts()
		ports.Suggest = suggest
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, out, err := server.handleSuggest(ctx, nil, SuggestInput{Text: "x"})

		require.NoError(t, err)
		assert.Equal(t, 10, suggest.gotLimit)
		assert.NotNil(t, out.Tags)
		assert.Zero(t, out.Count)
	})
}
