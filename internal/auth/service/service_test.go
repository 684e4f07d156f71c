package service_test

import (
	"testing"

	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/internal/auth/store/drivers/sqlite"
	"github.com/spazigo/spazigo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "spazigo-auth-test"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTokenService(t *testing.T, st store.Store) *service.TokenService {
	t.Helper()

	accessSecret := []byte("test-access-secret")
	refreshSecret := []byte("test-refresh-secret")

	accessSigner, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256(refreshSecret, jwtx.TokenTypeRefresh, jwtx.VerifyOptions{Issuer: testIssuer})
	require.NoError(t, err)

	return &service.TokenService{
		Store:           st,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		Issuer:          testIssuer,
		AccessTTL:       jwtx.DefaultAccessTokenTTL,
		RefreshTTL:      jwtx.DefaultRefreshTokenTTL,
	}
}
