package http

import (
	"encoding/json"
	"net/http"

	"github.com/lockbridge/authd/internal/auth/service"
	"github.com/lockbridge/authd/pkg/httpx"
	"github.com/lockbridge/authd/pkg/slogx"
)

// MFAHandler serves the TOTP lifecycle for the session's user: setup, code
// verification and reset. Every operation requires an active session.
type MFAHandler struct {
	AuthService *service.AuthService
}

// HandleSetup handles POST /v1/auth/2fa/setup. Returns the base32 secret and
// the otpauth URL; QR rendering is the caller's job. The secret is shown
// exactly once.
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	setup, err := h.AuthService.SetupMFA(r.Context(), sessionToken(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, setup)
}

type totpVerifyRequest struct {
	Code string `json:"code"`
}

// HandleVerify handles POST /v1/auth/2fa/verify. A valid code yields the
// short-lived MFA bearer token.
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req totpVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slogx.FromContext(ctx).Warn("failed to parse request", "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	bearer, err := h.AuthService.VerifyMFA(ctx, sessionToken(r), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"token": bearer,
	})
}

// HandleReset handles POST /v1/auth/2fa/reset. Clears the TOTP enrollment so
// a lost authenticator can be replaced via a fresh setup.
func (h *MFAHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.ResetMFA(r.Context(), sessionToken(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "mfa reset",
	})
}
