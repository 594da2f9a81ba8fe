package auth_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "github.com/lockbridge/authd/internal/auth/http"
	"github.com/lockbridge/authd/internal/auth/service"
	"github.com/lockbridge/authd/internal/auth/store/drivers/sqlite"
	"github.com/lockbridge/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer    = "authd-e2e"
	testJWTSecret = "e2e-secret-e2e-secret-e2e-secret"
)

// setupAuthServer wires a full service (sqlite store, services, router) and
// serves it in-process. Returns the base URL and the signer so tests can
// inspect issued bearer tokens.
func setupAuthServer(t *testing.T) (string, *jwtx.Signer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte(testJWTSecret), testIssuer, time.Hour)
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:    st,
		Sessions: &service.SessionService{Store: st},
		MFA:      &service.MFAService{Store: st, Issuer: testIssuer, Signer: signer},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := authhttp.NewRouter("e2e", st, logger)
	router.AuthService = auth
	router.SessionTTL = service.DefaultSessionTTL
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL, signer
}
