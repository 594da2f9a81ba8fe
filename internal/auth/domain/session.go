package domain

import "time"

// Session binds an opaque session token to a user. Only the SHA-256
// fingerprint of the token is stored; the raw value lives in the client's
// cookie and nowhere else.
type Session struct {
	ID        string // ULID
	TokenHash string // base64url SHA-256 fingerprint of the opaque token
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
