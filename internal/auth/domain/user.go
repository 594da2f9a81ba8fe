package domain

import "time"

// User is the persisted account record. The username is unique and
// case-sensitive; there is no rename flow.
type User struct {
	ID           string
	Username     string
	PasswordHash string  // bcrypt encoded, never serialized outward
	MFAEnabled   bool    // true once a TOTP secret has been provisioned
	MFASecret    *string // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMFASecret reports whether a TOTP secret is present on the record.
func (u User) HasMFASecret() bool {
	return u.MFASecret != nil && *u.MFASecret != ""
}

// Principal is the authenticated identity view handed to callers. It carries
// no secrets.
type Principal struct {
	UserID     string `json:"-"`
	Username   string `json:"username"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

// PrincipalFromUser projects a stored user onto its outward-facing view.
func PrincipalFromUser(u User) Principal {
	return Principal{
		UserID:     u.ID,
		Username:   u.Username,
		MFAEnabled: u.MFAEnabled,
	}
}
