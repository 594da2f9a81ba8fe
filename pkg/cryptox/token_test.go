package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/lockbridge/authd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces url-safe tokens of the right size", func(t *testing.T) {
		tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		require.Len(t, raw, cryptox.TokenSize256)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			tok, err := cryptox.GenerateToken(cryptox.TokenSize128)
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup, "duplicate token generated")
			seen[tok] = struct{}{}
		}
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := cryptox.GenerateToken(0)
		require.Error(t, err)
		_, err = cryptox.GenerateToken(-1)
		require.Error(t, err)
	})
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	a := cryptox.FingerprintToken("session-token")
	b := cryptox.FingerprintToken("session-token")
	c := cryptox.FingerprintToken("other-token")

	require.Equal(t, a, b, "fingerprints must be deterministic")
	require.NotEqual(t, a, c)

	// SHA-256 is 32 bytes, 43 chars in unpadded base64url.
	require.Len(t, a, 43)
}
