package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sourceboard/internal/domain"
	"sourceboard/internal/repository"
)

const createSourcesTable = `
CREATE TABLE IF NOT EXISTS sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	author_id INTEGER NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type SourceRepository struct {
	db *sql.DB
}

func NewSourceRepository(db *sql.DB) repository.SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSourcesTable); err != nil {
		return fmt.Errorf("create sources table: %w", err)
	}
	return nil
}

func (r *SourceRepository) Create(ctx context.Context, source *domain.Source) (int64, error) {
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO sources (title, url, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		source.Title,
		source.URL,
		source.AuthorID,
		source.CreatedAt,
		source.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert source: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("source last insert id: %w", err)
	}
	source.ID = id
	return id, nil
}

func (r *SourceRepository) Get(ctx context.Context, id int64) (*domain.Source, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, url, author_id, created_at, updated_at
FROM sources
WHERE id = ?`,
		id,
	)

	var source domain.Source
	if err := row.Scan(
		&source.ID,
		&source.Title,
		&source.URL,
		&source.AuthorID,
		&source.CreatedAt,
		&source.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan source: %w", err)
	}
	return &source, nil
}

// Update writes title and url in one statement so a failure leaves the
// stored pair at its last committed value.
func (r *SourceRepository) Update(ctx context.Context, id int64, title, url string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE sources
SET title = ?, url = ?, updated_at = ?
WHERE id = ?`,
		title,
		url,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update source rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SourceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete source rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SourceRepository) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, url, author_id, created_at, updated_at
FROM sources
ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var source domain.Source
		if err := rows.Scan(
			&source.ID,
			&source.Title,
			&source.URL,
			&source.AuthorID,
			&source.CreatedAt,
			&source.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return sources, nil
}
