package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/lockbridge/authd/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginLogout(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))

	principal, err := client.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)
	require.Equal(t, "alice", principal.Username)
	require.False(t, principal.MFAEnabled)

	status, err := client.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", status.Username)

	require.NoError(t, client.Logout(ctx))

	_, err = client.Status(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeUnauthorized, apiErr.Code)
}

func TestLoginWithBadCredentials(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))

	// Wrong password and unknown user must be indistinguishable to the client.
	_, errWrongPassword := client.Login(ctx, "alice", "nope")
	_, errUnknownUser := client.Login(ctx, "mallory", "Password123!")

	var apiErr1, apiErr2 *authsdk.APIError
	require.ErrorAs(t, errWrongPassword, &apiErr1)
	require.ErrorAs(t, errUnknownUser, &apiErr2)
	require.Equal(t, http.StatusUnauthorized, apiErr1.StatusCode)
	require.Equal(t, apiErr1.Code, apiErr2.Code)
	require.Equal(t, apiErr1.Description, apiErr2.Description)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))

	err := client.Register(ctx, "alice", "Different123!")
	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeUsernameTaken, apiErr.Code)
}

func TestSessionsAreIndependentPerClient(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	ctx := t.Context()

	alice := authsdk.NewClient(baseURL)
	require.NoError(t, alice.Register(ctx, "alice", "Password123!"))
	_, err := alice.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	bob := authsdk.NewClient(baseURL)
	require.NoError(t, bob.Register(ctx, "bob", "Password456!"))
	_, err = bob.Login(ctx, "bob", "Password456!")
	require.NoError(t, err)

	// Logging bob out leaves alice's session intact.
	require.NoError(t, bob.Logout(ctx))

	status, err := alice.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", status.Username)

	_, err = bob.Status(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
