package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultMFATokenTTL is the lifetime of an MFA bearer token. One hour,
// matching the window in which a completed TOTP check stays valid.
const DefaultMFATokenTTL = time.Hour

// AMR (Authentication Method Reference) values carried in issued tokens.
//
//	"pwd": password-based authentication
//	"otp": one-time password (TOTP)
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

// Claims are the assertions embedded in an MFA bearer token. The token is a
// self-contained statement that the named user passed a TOTP check; there is
// no server-side revocation list.
type Claims struct {
	jwt.RegisteredClaims

	// Username of the user who completed MFA. Duplicated from the subject
	// claim for callers that don't want to touch RegisteredClaims.
	Username string `json:"username,omitempty"`

	// AMR lists the authentication methods that were used, e.g. ["pwd","otp"].
	AMR []string `json:"amr,omitempty"`
}

// NewMFAClaims builds the claims for a freshly verified MFA check.
func NewMFAClaims(username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
		AMR:      []string{AMRPassword, AMROTP},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
