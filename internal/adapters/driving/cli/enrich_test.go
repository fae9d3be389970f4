package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

func TestEnrichCmd_Use(t *testing.T) {
	assert.Equal(t, "enrich [media-id]", enrichCmd.Use)
}

func TestEnrichCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := run("enrich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestEnrichCmd_PrintsResult(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.enrichment.result.Failed = []domain.EmbeddingKind{domain.EmbeddingMultimodal}

	out, err := run("enrich", "media-1")

	require.NoError(t, err)
	assert.Equal(t, "media-1", ts.enrichment.got.MediaID)
	assert.True(t, ts.enrichment.got.Requester.IsAnonymous())
	assert.Contains(t, out, "Enriched media-1")
	assert.Contains(t, out, "Title: Durga Puja pandal")
	assert.Contains(t, out, "Tags: festival, pandal")
	assert.Contains(t, out, "Bengali tags: Durga Puja")
	assert.Contains(t, out, "Story: Crowds gather at a lit pandal.")
	assert.Contains(t, out, "Cultural context: Autumn festival")
	assert.Contains(t, out, "Embeddings not generated: multimodal")
}

func TestEnrichCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run("enrich", "--json", "media-1")

	require.NoError(t, err)
	var res domain.EnrichResult
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &res))
	assert.True(t, res.Success)
	assert.Equal(t, []string{"festival", "pandal"}, res.Tags)
}

func TestEnrichCmd_Failure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.enrichment.result = domain.FailedResult(domain.ErrAnalysisFailed)

	_, err := run("enrich", "media-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrichment failed: content analysis failed")
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "(none)", joinOrNone(nil))
	assert.Equal(t, "a, b", joinOrNone([]string{"a", "b"}))
}
