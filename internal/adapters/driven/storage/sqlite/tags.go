package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
)

// tagStore implements driven.TagStore.
type tagStore struct {
	store *Store
}

var _ driven.TagStore = (*tagStore)(nil)

// FindByNameMatch returns up to limit tags whose name contains pattern.
// instr keeps the pattern literal; LIKE would treat % and _ as wildcards.
func (s *tagStore) FindByNameMatch(ctx context.Context, pattern string, limit int) ([]domain.Tag, error) {
	if limit <= 0 {
		return []domain.Tag{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, use_count, created_at, updated_at
		FROM tags
		WHERE instr(lower(name), ?) > 0
		ORDER BY use_count DESC, name ASC
		LIMIT ?
	`, strings.ToLower(pattern), limit)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0, limit)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// IncrementUseCount adds one use to each named tag, creating missing tags.
func (s *tagStore) IncrementUseCount(ctx context.Context, names []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tag update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tags (name, use_count, created_at, updated_at)
			VALUES (?, 1, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				use_count = use_count + 1,
				updated_at = excluded.updated_at
		`, name, now, now)
		if err != nil {
			return fmt.Errorf("incrementing tag %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tag update: %w", err)
	}
	return nil
}

// GetTag retrieves a tag by name. The name column is NOCASE.
func (s *tagStore) GetTag(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT name, use_count, created_at, updated_at FROM tags WHERE name = ?
	`, name)
	tag, err := scanTag(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func scanTag(row rowScanner) (*domain.Tag, error) {
	var tag domain.Tag
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&tag.Name, &tag.UseCount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	if createdAt.Valid {
		tag.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tag.UpdatedAt = updatedAt.Time
	}
	return &tag, nil
}
