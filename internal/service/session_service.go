package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sourceboard/internal/auth"
	"sourceboard/internal/domain"
	"sourceboard/internal/repository"
)

// SessionService starts, resolves, and ends login sessions. Resolution is
// server-trusted: the cookie token must verify and its session row must
// still exist and be unexpired.
type SessionService interface {
	// Start creates a session for the user and returns the cookie token and
	// its expiry. Remember extends the session lifetime.
	Start(ctx context.Context, userID int64, remember bool) (string, time.Time, error)
	// Resolve maps a cookie token to an identity. Any failure resolves to
	// the anonymous identity rather than an error.
	Resolve(ctx context.Context, token string) domain.Identity
	// End invalidates the session named by the token. The token must belong
	// to a live session.
	End(ctx context.Context, token string) error
}

type sessionService struct {
	sessions    repository.SessionRepository
	users       repository.UserRepository
	tokens      *auth.TokenManager
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewSessionService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	tokens *auth.TokenManager,
	ttl, rememberTTL time.Duration,
) SessionService {
	return &sessionService{
		sessions:    sessions,
		users:       users,
		tokens:      tokens,
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

func (s *sessionService) Start(ctx context.Context, userID int64, remember bool) (string, time.Time, error) {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	token, err := s.tokens.Issue(session.ID, userID, session.ExpiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, session.ExpiresAt, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) domain.Identity {
	if token == "" {
		return domain.Anonymous()
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Anonymous()
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return domain.Anonymous()
	}
	if session.UserID != claims.UserID {
		return domain.Anonymous()
	}

	// the account must still exist
	if _, err := s.users.GetByID(ctx, session.UserID); err != nil {
		return domain.Anonymous()
	}

	return domain.Authenticated(session.UserID)
}

func (s *sessionService) End(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ErrNotAuthenticated
	}
	if _, err := s.sessions.Get(ctx, claims.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthenticated
		}
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}
