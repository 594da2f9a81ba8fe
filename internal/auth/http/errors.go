package http

import (
	"errors"
	"net/http"

	"github.com/lockbridge/authd/internal/auth/service"
	"github.com/lockbridge/authd/pkg/httpx"
	"github.com/lockbridge/authd/pkg/slogx"
)

// writeServiceError maps service sentinels onto HTTP responses. Store and
// infrastructure errors never leak to the client; anything unrecognized is
// logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "invalid_request", "Username and password are required")
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken", "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
	case errors.Is(err, service.ErrInvalidTOTPCode):
		writeError(w, http.StatusBadRequest, "invalid_code", "Invalid TOTP code")
	case errors.Is(err, service.ErrMFANotEnrolled):
		writeError(w, http.StatusBadRequest, "mfa_not_enrolled", "MFA is not enabled for this user")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}
