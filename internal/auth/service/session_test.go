package service

import (
	"context"
	"testing"
	"time"

	"github.com/lockbridge/authd/internal/auth/domain"
	"github.com/lockbridge/authd/internal/auth/store"
	"github.com/lockbridge/authd/internal/auth/store/drivers/sqlite"
	"github.com/lockbridge/authd/pkg/cryptox"
	"github.com/lockbridge/authd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func createUser(t *testing.T, st store.Store, username, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestSessionEstablishRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	user := createUser(t, st, "alice", "pw123")

	token, err := sessions.Establish(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	restored, err := sessions.Restore(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, restored.ID)
	require.Equal(t, "alice", restored.Username)
}

func TestSessionTokensAreOpaqueAndUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	user := createUser(t, st, "alice", "pw123")

	a, err := sessions.Establish(ctx, user.ID)
	require.NoError(t, err)
	b, err := sessions.Establish(ctx, user.ID)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NotContains(t, a, user.ID, "session token must not embed the user id")
}

func TestSessionRestoreUnknownToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	_, err := sessions.Restore(ctx, "never-issued")
	require.ErrorIs(t, err, ErrNoSession)

	_, err = sessions.Restore(ctx, "")
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSessionRestoreExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	user := createUser(t, st, "alice", "pw123")

	// Insert an already-expired session directly.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    user.ID,
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}))

	_, err = sessions.Restore(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)

	// The expired row was lazily removed.
	_, err = st.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionRestoreDanglingUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	user := createUser(t, st, "alice", "pw123")
	token, err := sessions.Establish(ctx, user.ID)
	require.NoError(t, err)

	// The backing user record disappears; the session is implicitly invalid.
	require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

	_, err = sessions.Restore(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSessionDestroyIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}

	user := createUser(t, st, "alice", "pw123")
	token, err := sessions.Establish(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, sessions.Destroy(ctx, token))
	require.NoError(t, sessions.Destroy(ctx, token))

	_, err = sessions.Restore(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)
}
