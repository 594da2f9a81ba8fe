package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lockbridge/authd/internal/auth/domain"
	"github.com/lockbridge/authd/internal/auth/store"
	"github.com/lockbridge/authd/pkg/jwtx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpPeriod = 30 // seconds per step
	totpSkew   = 1  // accepted steps either side of now
)

var (
	ErrInvalidTOTPCode = errors.New("invalid TOTP code")
	ErrMFANotEnrolled  = errors.New("MFA not enrolled for this user")
)

// MFAService owns TOTP provisioning, proof-of-possession verification and
// reset. A verified code is exchanged for a signed bearer token asserting
// "MFA satisfied".
type MFAService struct {
	Store  store.Store
	Issuer string       // Issuer label embedded in provisioning URIs
	Signer *jwtx.Signer // mints the MFA bearer token
}

// Setup generates a TOTP secret for the user, persists it, and returns the
// secret alongside the otpauth provisioning URI for QR rendering.
//
// The secret is committed and the user's MFA flag flipped immediately, before
// the user has proven possession by submitting a code. A stricter flow would
// hold the flag until the first Verify succeeds; this matches the behavior
// the API has always had. See DESIGN.md.
func (s *MFAService) Setup(ctx context.Context, userID, username string) (domain.MFASetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: username,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFASetupResponse{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().EnableMFA(ctx, userID, key.Secret()); err != nil {
		return domain.MFASetupResponse{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return domain.MFASetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		Issuer:     s.Issuer,
		Account:    username,
	}, nil
}

// Verify checks a submitted TOTP code against the user's stored secret and,
// when it matches, issues the MFA bearer token.
func (s *MFAService) Verify(ctx context.Context, userID, code string) (string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if !user.MFAEnabled || !user.HasMFASecret() {
		return "", ErrMFANotEnrolled
	}

	if !validTOTPCode(*user.MFASecret, code, time.Now()) {
		return "", ErrInvalidTOTPCode
	}

	token, err := s.Signer.Sign(user.Username, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to issue MFA token: %w", err)
	}
	return token, nil
}

// Reset clears the TOTP secret and disables MFA. Idempotent: resetting a
// user that never enrolled succeeds.
func (s *MFAService) Reset(ctx context.Context, userID string) error {
	if err := s.Store.Users().DisableMFA(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset MFA: %w", err)
	}
	return nil
}

// validTOTPCode checks a 6-digit code against the secret at the given time,
// accepting one 30-second step of skew either side. Codes are NOT marked as
// used, so a code can be replayed within its validity window; see DESIGN.md
// for why that gap is preserved.
func validTOTPCode(secret, code string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
