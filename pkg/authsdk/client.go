package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is a client for the authd service. The embedded cookie jar carries
// the session cookie set by Login, so one Client represents at most one
// authenticated user at a time.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new service client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/register", body, nil)
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) (*Principal, error) {
	body := map[string]string{"username": username, "password": password}

	var principal Principal
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", body, &principal); err != nil {
		return nil, err
	}
	return &principal, nil
}

// Status reports the authenticated principal for the current session.
func (c *Client) Status(ctx context.Context) (*Principal, error) {
	var principal Principal
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/status", nil, &principal); err != nil {
		return nil, err
	}
	return &principal, nil
}

// Logout destroys the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// SetupTOTP provisions a TOTP secret for the session's user.
func (c *Client) SetupTOTP(ctx context.Context) (*TOTPSetupResponse, error) {
	var setup TOTPSetupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/2fa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// VerifyTOTP submits a TOTP code and returns the MFA bearer token.
func (c *Client) VerifyTOTP(ctx context.Context, code string) (string, error) {
	body := map[string]string{"code": code}

	var resp TOTPVerifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/2fa/verify", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ResetTOTP clears the session user's TOTP enrollment.
func (c *Client) ResetTOTP(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/2fa/reset", nil, nil)
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz checks the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// doJSON performs a request with an optional JSON body, parses failures into
// *APIError, and decodes the success body into out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := parseErrorResponse(resp, respBody); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
