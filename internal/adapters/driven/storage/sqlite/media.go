package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// mediaStore implements driven.MediaStore.
type mediaStore struct {
	store *Store
}

var _ driven.MediaStore = (*mediaStore)(nil)

const mediaColumns = `id, owner_id, uri, mime_type, description, title, tags, bengali_tags, story,
	text_embedding, multimodal_embedding, cultural_embedding, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SaveMedia stores or replaces a media item.
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

	args, err := mediaArgs(item)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO media_items (`+mediaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			uri = excluded.uri,
			mime_type = excluded.mime_type,
			description = excluded.description,
			title = excluded.title,
			tags = excluded.tags,
			bengali_tags = excluded.bengali_tags,
			story = excluded.story,
			text_embedding = excluded.text_embedding,
			multimodal_embedding = excluded.multimodal_embedding,
			cultural_embedding = excluded.cultural_embedding,
			updated_at = excluded.updated_at
	`, args...)
	if err != nil {
		return fmt.Errorf("saving media: %w", err)
	}
	return nil
}

// GetMedia retrieves a media item by ID.
func (s *mediaStore) GetMedia(ctx context.Context, id string) (*domain.MediaItem, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_items WHERE id = ?`, id)
	item, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// PatchMedia applies the present fields of patch inside one transaction.
func (s *mediaStore) PatchMedia(ctx context.Context, id string, patch *domain.MediaPatch) (*domain.MediaItem, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning patch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	item, err := scanMedia(tx.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	patch.Apply(item)
	item.UpdatedAt = time.Now().UTC()

	args, err := mediaArgs(item)
	if err != nil {
		return nil, err
	}
	// args[0] is the id; move it to the WHERE clause.
	_, err = tx.ExecContext(ctx, `
		UPDATE media_items SET
			owner_id = ?, uri = ?, mime_type = ?, description = ?, title = ?,
			tags = ?, bengali_tags = ?, story = ?,
			text_embedding = ?, multimodal_embedding = ?, cultural_embedding = ?,
			created_at = ?, updated_at = ?
		WHERE id = ?
	`, append(args[1:], args[0])...)
	if err != nil {
		return nil, fmt.Errorf("patching media: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing patch: %w", err)
	}
	return item, nil
}

// ListMedia returns up to limit items, newest first. limit <= 0 returns all.
func (s *mediaStore) ListMedia(ctx context.Context, limit int) ([]domain.MediaItem, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+mediaColumns+` FROM media_items
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`, limit)
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

// mediaArgs returns the column values of item in mediaColumns order.
func mediaArgs(item *domain.MediaItem) ([]any, error) {
	tagsJSON, err := json.Marshal(item.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshalling tags: %w", err)
	}
	bengaliJSON, err := json.Marshal(item.BengaliTags)
	if err != nil {
		return nil, fmt.Errorf("marshalling bengali tags: %w", err)
	}

	var story sql.NullString
	if item.Story != nil {
		b, err := json.Marshal(item.Story)
		if err != nil {
			return nil, fmt.Errorf("marshalling story: %w", err)
		}
		story = sql.NullString{String: string(b), Valid: true}
	}

	return []any{
		item.ID, item.OwnerID, item.URI, item.MimeType, item.Description, item.Title,
		string(tagsJSON), string(bengaliJSON), story,
		float32SliceToBytes(item.TextEmbedding),
		float32SliceToBytes(item.MultimodalEmbedding),
		float32SliceToBytes(item.CulturalEmbedding),
		item.CreatedAt.UTC(), item.UpdatedAt.UTC(),
	}, nil
}

func scanMedia(row rowScanner) (*domain.MediaItem, error) {
	var item domain.MediaItem
	var tagsJSON, bengaliJSON string
	var story sql.NullString
	var textEmb, multiEmb, culturalEmb []byte
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&item.ID, &item.OwnerID, &item.URI, &item.MimeType, &item.Description, &item.Title,
		&tagsJSON, &bengaliJSON, &story, &textEmb, &multiEmb, &culturalEmb,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning media: %w", err)
	}

	if tagsJSON != jsonNull {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if bengaliJSON != jsonNull {
		if err := json.Unmarshal([]byte(bengaliJSON), &item.BengaliTags); err != nil {
			return nil, fmt.Errorf("unmarshaling bengali tags: %w", err)
		}
	}
	if story.Valid {
		item.Story = &domain.Story{}
		if err := json.Unmarshal([]byte(story.String), item.Story); err != nil {
			return nil, fmt.Errorf("unmarshaling story: %w", err)
		}
	}

	item.TextEmbedding = bytesToFloat32Slice(textEmb)
	item.MultimodalEmbedding = bytesToFloat32Slice(multiEmb)
	item.CulturalEmbedding = bytesToFloat32Slice(culturalEmb)

	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return &item, nil
}
