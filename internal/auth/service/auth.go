package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lockbridge/authd/internal/auth/domain"
	"github.com/lockbridge/authd/internal/auth/store"
	"github.com/lockbridge/authd/pkg/cryptox"
	"github.com/lockbridge/authd/pkg/idx"
	"github.com/lockbridge/authd/pkg/slogx"
)

var (
	// ErrMissingCredentials rejects empty usernames or passwords up front.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrUsernameTaken surfaces the store's uniqueness constraint.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords. The two cases are deliberately indistinguishable so login
	// errors don't reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned for operations that require an active
	// session when none resolves.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthService composes credential verification, session management and the
// MFA lifecycle into the user-facing operations. It is constructed once with
// injected dependencies and passed to the handlers; there is no ambient
// global state.
type AuthService struct {
	Store    store.Store
	Sessions *SessionService
	MFA      *MFAService
}

// Register creates a new user with a hashed password and MFA disabled.
// There is no auto-login; the caller logs in separately.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		MFAEnabled:   false,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "username", username)
	return nil
}

// Login verifies the credentials and, on success, establishes a session.
// The returned principal tells the caller whether a TOTP step is available;
// password success alone restores the session either way, and MFA
// verification is a separate explicit call.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Principal, string, error) {
	if username == "" || password == "" {
		return domain.Principal{}, "", ErrMissingCredentials
	}

	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return domain.Principal{}, "", err
	}

	token, err := s.Sessions.Establish(ctx, user.ID)
	if err != nil {
		return domain.Principal{}, "", err
	}

	slogx.FromContext(ctx).Info("login successful", "username", username, "mfa_enabled", user.MFAEnabled)
	return domain.PrincipalFromUser(user), token, nil
}

// authenticate looks the user up by exact username and verifies the
// password. Absent user and bad password collapse into one error.
func (s *AuthService) authenticate(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login failed: unknown username", "username", username)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Debug("login failed: password mismatch", "username", username)
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Status reports the authenticated principal for a session.
func (s *AuthService) Status(ctx context.Context, sessionToken string) (domain.Principal, error) {
	user, err := s.requireSession(ctx, sessionToken)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.PrincipalFromUser(user), nil
}

// Logout destroys the session. Unauthorized when no session was active.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if _, err := s.requireSession(ctx, sessionToken); err != nil {
		return err
	}
	return s.Sessions.Destroy(ctx, sessionToken)
}

// SetupMFA provisions a TOTP secret for the session's user.
func (s *AuthService) SetupMFA(ctx context.Context, sessionToken string) (domain.MFASetupResponse, error) {
	user, err := s.requireSession(ctx, sessionToken)
	if err != nil {
		return domain.MFASetupResponse{}, err
	}
	return s.MFA.Setup(ctx, user.ID, user.Username)
}

// VerifyMFA checks a TOTP code for the session's user and returns the MFA
// bearer token on success.
func (s *AuthService) VerifyMFA(ctx context.Context, sessionToken, code string) (string, error) {
	user, err := s.requireSession(ctx, sessionToken)
	if err != nil {
		return "", err
	}
	return s.MFA.Verify(ctx, user.ID, code)
}

// ResetMFA clears the session user's TOTP enrollment.
func (s *AuthService) ResetMFA(ctx context.Context, sessionToken string) error {
	user, err := s.requireSession(ctx, sessionToken)
	if err != nil {
		return err
	}
	return s.MFA.Reset(ctx, user.ID)
}

// requireSession is the explicit guard in front of every session-scoped
// operation. It maps any failure to resolve the session onto
// ErrUnauthorized.
func (s *AuthService) requireSession(ctx context.Context, sessionToken string) (domain.User, error) {
	user, err := s.Sessions.Restore(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}
	return user, nil
}
