package auth_test

import (
	"testing"

	"github.com/lockbridge/authd/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthProbes(t *testing.T) {
	baseURL, _ := setupAuthServer(t)
	client := authsdk.NewClient(baseURL)
	ctx := t.Context()

	livez, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)
	require.NotEmpty(t, livez.Uptime)

	readyz, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.NotNil(t, readyz.Checks)
	require.Equal(t, "ok", readyz.Checks.Database)
}
