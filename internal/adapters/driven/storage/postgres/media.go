package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

type mediaStore struct {
	pool *pgxpool.Pool
}

var _ driven.MediaStore = (*mediaStore)(nil)

const mediaColumns = `id, owner_id, uri, mime_type, description, title, tags, bengali_tags, story,
	text_embedding, multimodal_embedding, cultural_embedding, created_at, updated_at`

func (s *mediaStore) SaveMedia(ctx context.Context, item *domain.MediaItem) error {
	if item == nil || item.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO media_items (`+mediaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			uri = EXCLUDED.uri,
			mime_type = EXCLUDED.mime_type,
			description = EXCLUDED.description,
			title = EXCLUDED.title,
			tags = EXCLUDED.tags,
			bengali_tags = EXCLUDED.bengali_tags,
			story = EXCLUDED.story,
			text_embedding = EXCLUDED.text_embedding,
			multimodal_embedding = EXCLUDED.multimodal_embedding,
			cultural_embedding = EXCLUDED.cultural_embedding,
			updated_at = EXCLUDED.updated_at
	`, item.ID, item.OwnerID, item.URI, item.MimeType, item.Description, item.Title,
		item.Tags, item.BengaliTags, item.Story,
		toVector(item.TextEmbedding), toVector(item.MultimodalEmbedding), toVector(item.CulturalEmbedding),
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving media: %w", err)
	}
	return nil
}

func (s *mediaStore) GetMedia(ctx context.Context, id string) (*domain.MediaItem, error) {
	item, err := scanMedia(s.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return item, err
}

// PatchMedia locks the row, applies the patch and writes it back in one
// UPDATE.
func (s *mediaStore) PatchMedia(ctx context.Context, id string, patch *domain.MediaPatch) (*domain.MediaItem, error) {
	var item *domain.MediaItem
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		item, err = scanMedia(tx.QueryRow(ctx,
			`SELECT `+mediaColumns+` FROM media_items WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		patch.Apply(item)
		item.UpdatedAt = time.Now().UTC()

		_, err = tx.Exec(ctx, `
			UPDATE media_items SET
				title = $2, tags = $3, bengali_tags = $4, story = $5,
				text_embedding = $6, multimodal_embedding = $7, cultural_embedding = $8,
				updated_at = $9
			WHERE id = $1
		`, id, item.Title, item.Tags, item.BengaliTags, item.Story,
			toVector(item.TextEmbedding), toVector(item.MultimodalEmbedding), toVector(item.CulturalEmbedding),
			item.UpdatedAt)
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patching media: %w", err)
	}
	return item, nil
}

func (s *mediaStore) ListMedia(ctx context.Context, limit int) ([]domain.MediaItem, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+mediaColumns+` FROM media_items
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, lim)
	if err != nil {
		return nil, fmt.Errorf("querying media: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MediaItem, 0)
	for rows.Next() {
		item, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media: %w", err)
	}
	return items, nil
}

func scanMedia(row pgx.Row) (*domain.MediaItem, error) {
	var item domain.MediaItem
	var textEmb, multiEmb, culturalEmb *pgvector.Vector

	err := row.Scan(&item.ID, &item.OwnerID, &item.URI, &item.MimeType, &item.Description, &item.Title,
		&item.Tags, &item.BengaliTags, &item.Story,
		&textEmb, &multiEmb, &culturalEmb,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning media: %w", err)
	}

	item.TextEmbedding = fromVector(textEmb)
	item.MultimodalEmbedding = fromVector(multiEmb)
	item.CulturalEmbedding = fromVector(culturalEmb)
	return &item, nil
}
