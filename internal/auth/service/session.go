package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lockbridge/authd/internal/auth/domain"
	"github.com/lockbridge/authd/internal/auth/store"
	"github.com/lockbridge/authd/pkg/cryptox"
	"github.com/lockbridge/authd/pkg/idx"
	"github.com/lockbridge/authd/pkg/slogx"
)

// DefaultSessionTTL is how long a session lives without an explicit logout.
const DefaultSessionTTL = 24 * time.Hour

// ErrNoSession is returned when a session token does not resolve to an
// authenticated user: unknown token, expired session, or the backing user
// record is gone. Callers can't distinguish the three on purpose.
var ErrNoSession = errors.New("no active session")

// SessionService maps opaque session tokens to users. A session moves
// Anonymous -> Authenticated on Establish and back on Destroy or expiry;
// there are no intermediate states.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Establish allocates a new session bound to userID and returns the opaque
// token. The token carries 256 bits of entropy; only its fingerprint is
// persisted.
func (s *SessionService) Establish(ctx context.Context, userID string) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Restore resolves a session token back to its user. Expired sessions and
// sessions whose user record no longer exists come back as ErrNoSession
// rather than a loud failure.
func (s *SessionService) Restore(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrNoSession
	}

	hash := cryptox.FingerprintToken(token)

	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		// Lazy cleanup; housekeeping sweeps the rest.
		if err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, hash); err != nil {
			slogx.FromContext(ctx).Warn("failed to delete expired session", "err", err)
		}
		return domain.User{}, ErrNoSession
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// Destroy removes a session. Idempotent: destroying a session that is
// already gone succeeds.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
}
