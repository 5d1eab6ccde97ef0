package repository

import (
	"context"

	"sourceboard/internal/domain"
)

// SessionRepository stores server-side login sessions.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	// Get returns the session with the given id; expired sessions are
	// reported as ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
