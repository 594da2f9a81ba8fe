package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost factor applied to every new password hash.
// Raising it only affects hashes created after the change; existing digests
// carry their own cost and keep verifying.
const HashCost = 10

// ErrPasswordMismatch is returned when a password does not match its digest.
// A malformed digest is reported the same way so callers can't tell the two
// apart.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a salted bcrypt digest of the given password.
// The salt is embedded in the returned digest string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt digest using
// the algorithm's own constant-time comparison. Any failure, including a
// digest bcrypt cannot parse, comes back as ErrPasswordMismatch.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
