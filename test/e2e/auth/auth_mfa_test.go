package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/lockbridge/authd/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestTOTPEnrollVerifyReset(t *testing.T) {
	baseURL, signer := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))
	_, err := client.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	setup, err := client.SetupTOTP(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.Contains(t, setup.OTPAuthURL, "otpauth://totp/")
	require.Equal(t, testIssuer, setup.Issuer)
	require.Equal(t, "alice", setup.Account)

	// Enrollment is visible on the principal right after setup.
	status, err := client.Status(ctx)
	require.NoError(t, err)
	require.True(t, status.MFAEnabled)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)

	bearer, err := client.VerifyTOTP(ctx, code)
	require.NoError(t, err)

	claims, err := signer.Verify(bearer)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)

	require.NoError(t, client.ResetTOTP(ctx))

	status, err = client.Status(ctx)
	require.NoError(t, err)
	require.False(t, status.MFAEnabled)
}

func TestTOTPVerifyRejectsWrongCode(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))
	_, err := client.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	_, err = client.SetupTOTP(ctx)
	require.NoError(t, err)

	_, err = client.VerifyTOTP(ctx, "000000")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidCode, apiErr.Code)
}

func TestTOTPVerifyWithoutEnrollment(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))
	_, err := client.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	_, err = client.VerifyTOTP(ctx, "123456")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeMFANotEnrolled, apiErr.Code)
}

func TestTOTPOperationsRequireSession(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.SetupTOTP(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = client.VerifyTOTP(ctx, "123456")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	err = client.ResetTOTP(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

// TestTOTPReEnrollAfterReset covers replacing a lost authenticator: reset the
// enrollment, set up again, and verify with the new secret only.
func TestTOTPReEnrollAfterReset(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "Password123!"))
	_, err := client.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	first, err := client.SetupTOTP(ctx)
	require.NoError(t, err)

	require.NoError(t, client.ResetTOTP(ctx))

	second, err := client.SetupTOTP(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	// Codes from the old secret no longer verify.
	oldCode, err := totp.GenerateCode(first.Secret, time.Now())
	require.NoError(t, err)
	_, err = client.VerifyTOTP(ctx, oldCode)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInvalidCode, apiErr.Code)

	newCode, err := totp.GenerateCode(second.Secret, time.Now())
	require.NoError(t, err)
	_, err = client.VerifyTOTP(ctx, newCode)
	require.NoError(t, err)
}
