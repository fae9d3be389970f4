package mcp

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// mockEnrichmentService is a mock implementation of driving.EnrichmentService.
type mockEnrichmentService struct {
	result domain.EnrichResult
	got    domain.EnrichRequest
}

func (m *mockEnrichmentService) Enrich(_ context.Context, req domain.EnrichRequest) domain.EnrichResult {
	m.got = req
	return m.result
}

// mockSuggestService is a mock implementation of driving.TagSuggestionService.
type mockSuggestService struct {
	tags     []string
	gotText  string
	gotLimit int
}

func (m *mockSuggestService) Suggest(_ context.Context, text string, limit int) []string {
	m.gotText = text
	m.gotLimit = limit
	return m.tags
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	items []domain.MediaItem
	item  *domain.MediaItem
	err   error
}

func (m *mockMediaService) Register(_ context.Context, item *domain.MediaItem) (*domain.MediaItem, error) {
	return item, m.err
}

func (m *mockMediaService) Get(_ context.Context, _ string) (*domain.MediaItem, error) {
	return m.item, m.err
}

func (m *mockMediaService) List(_ context.Context, _ int) ([]domain.MediaItem, error) {
	return m.items, m.err
}

func validPorts() *Ports {
	return &Ports{
		Enrichment: &mockEnrichmentService{},
		Suggest:    &mockSuggestService{},
	}
}
