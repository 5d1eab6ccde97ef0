package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourceboard/internal/auth"
	"sourceboard/internal/domain"
	"sourceboard/internal/repository"
)

type fakeSessionRepo struct {
	sessions  map[string]*domain.Session
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) Init(ctx context.Context) error { return nil }

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok || session.Expired(time.Now().UTC()) {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	now := time.Now().UTC()
	for id, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func newSessionFixture(t *testing.T) (SessionService, *fakeSessionRepo, *fakeUserRepo) {
	t.Helper()
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	tokens := auth.NewTokenManager("test-secret")
	svc := NewSessionService(sessions, users, tokens, time.Hour, 30*24*time.Hour)
	return svc, sessions, users
}

func TestSessionStartAndResolve(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	userID, err := users.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	token, expiresAt, err := svc.Start(context.Background(), userID, false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity := svc.Resolve(context.Background(), token)
	uid, ok := identity.UserID()
	require.True(t, ok)
	assert.Equal(t, userID, uid)
}

func TestSessionRememberExtendsTTL(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	userID, err := users.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	_, short, err := svc.Start(context.Background(), userID, false)
	require.NoError(t, err)
	_, long, err := svc.Start(context.Background(), userID, true)
	require.NoError(t, err)

	assert.True(t, long.After(short.Add(24*time.Hour)))
}

func TestResolveUnknownTokenIsAnonymous(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	assert.False(t, svc.Resolve(context.Background(), "").IsAuthenticated())
	assert.False(t, svc.Resolve(context.Background(), "garbage").IsAuthenticated())
}

func TestEndInvalidatesSession(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	userID, err := users.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	token, _, err := svc.Start(context.Background(), userID, false)
	require.NoError(t, err)
	require.True(t, svc.Resolve(context.Background(), token).IsAuthenticated())

	require.NoError(t, svc.End(context.Background(), token))

	// the token still verifies cryptographically, but the session is gone
	assert.False(t, svc.Resolve(context.Background(), token).IsAuthenticated())
}

func TestEndRequiresLiveSession(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	userID, err := users.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	err = svc.End(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	token, _, err := svc.Start(context.Background(), userID, false)
	require.NoError(t, err)
	require.NoError(t, svc.End(context.Background(), token))

	err = svc.End(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestResolveExpiredSessionIsAnonymous(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	tokens := auth.NewTokenManager("test-secret")
	svc := NewSessionService(sessions, users, tokens, -time.Minute, time.Hour)

	userID, err := users.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	token, _, err := svc.Start(context.Background(), userID, false)
	require.NoError(t, err)

	assert.False(t, svc.Resolve(context.Background(), token).IsAuthenticated())
}
