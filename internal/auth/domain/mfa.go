package domain

// MFASetupResponse is returned when a user provisions TOTP. The otpauth URL
// embeds the issuer, account label and secret; rendering it as a QR code is
// the client's job.
type MFASetupResponse struct {
	Secret     string `json:"secret"`      // base32 encoded shared secret
	OTPAuthURL string `json:"otpauth_url"` // otpauth://totp/... provisioning URI
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
}
