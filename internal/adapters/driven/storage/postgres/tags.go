package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

type tagStore struct {
	pool *pgxpool.Pool
}

var _ driven.TagStore = (*tagStore)(nil)

// FindByNameMatch uses strpos so the pattern is matched literally.
func (s *tagStore) FindByNameMatch(ctx context.Context, pattern string, limit int) ([]domain.Tag, error) {
	if limit <= 0 {
		return []domain.Tag{}, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT name, use_count, created_at, updated_at
		FROM tags
		WHERE strpos(lower(name), $1) > 0
		ORDER BY use_count DESC, name ASC
		LIMIT $2
	`, strings.ToLower(pattern), limit)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Tag])
	if err != nil {
		return nil, fmt.Errorf("collecting tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

func (s *tagStore) IncrementUseCount(ctx context.Context, names []string) error {
	batch := &pgx.Batch{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		batch.Queue(`
			INSERT INTO tags (name, use_count) VALUES ($1, 1)
			ON CONFLICT ((lower(name))) DO UPDATE SET
				use_count = tags.use_count + 1,
				updated_at = now()
		`, name)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("incrementing tags: %w", err)
	}
	return nil
}

func (s *tagStore) GetTag(ctx context.Context, name string) (*domain.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, use_count, created_at, updated_at FROM tags WHERE lower(name) = lower($1)
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying tag: %w", err)
	}

	tag, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[domain.Tag])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("collecting tag: %w", err)
	}
	return tag, nil
}
