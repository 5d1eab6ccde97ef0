package repository

import (
	"context"

	"sourceboard/internal/domain"
)

// SourceRepository defines persistence operations for Source entities.
type SourceRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, source *domain.Source) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Source, error)
	// Update persists title and url together in a single statement; a failed
	// update leaves the stored pair untouched.
	Update(ctx context.Context, id int64, title, url string) error
	Delete(ctx context.Context, id int64) error
	// List returns every source ordered by ascending creation time.
	List(ctx context.Context) ([]domain.Source, error)
}
