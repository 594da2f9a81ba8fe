package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lockbridge/authd/internal/auth/service"
	"github.com/lockbridge/authd/pkg/httpx"
	"github.com/lockbridge/authd/pkg/slogx"
)

// AuthHandler serves registration, login, session status and logout.
type AuthHandler struct {
	AuthService *service.AuthService

	// SessionTTL bounds the cookie lifetime; it matches the server-side
	// session expiry so the cookie doesn't outlive the session row.
	SessionTTL   time.Duration
	SecureCookie bool
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleRegister handles POST /v1/auth/register. Registration does not log
// the user in; a fresh account authenticates via login.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slogx.FromContext(ctx).Warn("failed to parse request", "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if err := h.AuthService.Register(ctx, req.Username, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "user registered",
	})
}

// HandleLogin handles POST /v1/auth/login. On success the opaque session
// token is set as an HttpOnly cookie and the principal is returned so the
// client knows whether a TOTP step is available.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slogx.FromContext(ctx).Warn("failed to parse request", "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	principal, token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.SecureCookie)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, principal)
}

// HandleStatus handles GET /v1/auth/status.
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := h.AuthService.Status(r.Context(), sessionToken(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, principal)
}

// HandleLogout handles POST /v1/auth/logout. The server-side session is
// destroyed and the cookie cleared.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), sessionToken(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearSessionCookie(w, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}
