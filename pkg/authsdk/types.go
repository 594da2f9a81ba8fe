package authsdk

// ErrorResponse is the error body returned by every failing endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// MessageResponse is the generic success body for operations with no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// Principal describes the authenticated user.
type Principal struct {
	Username   string `json:"username"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

// TOTPSetupResponse carries the provisioned TOTP secret. The secret is
// returned exactly once; store it or render the otpauth URL as a QR code.
type TOTPSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
}

// TOTPVerifyResponse carries the short-lived MFA bearer token.
type TOTPVerifyResponse struct {
	Token string `json:"token"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
