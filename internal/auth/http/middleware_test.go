package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	authhttp "github.com/spazigo/spazigo/internal/auth/http"
	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/internal/auth/store/drivers/sqlite"
	"github.com/spazigo/spazigo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// guardEnv exercises the middleware directly against tiny inline handlers,
// without going through the router.
type guardEnv struct {
	store    store.Store
	users    *service.UserService
	signer   jwtx.Signer
	verifier jwtx.Verifier
}

func newGuardEnv(t *testing.T) *guardEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("guard-access-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.TokenTypeAccess, jwtx.VerifyOptions{Issuer: testIssuer})
	require.NoError(t, err)

	return &guardEnv{
		store:    st,
		users:    &service.UserService{Store: st},
		signer:   signer,
		verifier: verifier,
	}
}

func (e *guardEnv) newUser(t *testing.T, email string, role domain.Role) (domain.User, string) {
	t.Helper()

	u, err := e.users.Register(context.Background(), service.RegisterParams{
		Name:     "Guard User",
		Email:    email,
		Password: "S3cure!password",
		Role:     role,
	})
	require.NoError(t, err)

	token, err := e.signer.Sign(jwtx.NewAccessClaims(u.ID, string(u.Role), u.Email, testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)
	return u, token
}

func serveGuarded(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	e := newGuardEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := authhttp.Authenticate(e.verifier, e.users)(authhttp.RequireRoles(domain.RoleAdmin)(inner))

	_, adminToken := e.newUser(t, "admin@example.com", domain.RoleAdmin)
	_, driverToken := e.newUser(t, "driver@example.com", domain.RoleDriver)

	t.Run("matching role passes", func(t *testing.T) {
		rec := serveGuarded(t, guarded, adminToken)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong role is a 403", func(t *testing.T) {
		rec := serveGuarded(t, guarded, driverToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		rec := serveGuarded(t, guarded, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("misordered chain fails closed", func(t *testing.T) {
		// RequireRoles without Authenticate in front never sees a user, so
		// even a valid token must be rejected.
		bare := authhttp.RequireRoles(domain.RoleAdmin)(inner)
		rec := serveGuarded(t, bare, adminToken)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMaybeAuthenticate(t *testing.T) {
	e := newGuardEnv(t)

	optional := authhttp.MaybeAuthenticate(e.verifier, e.users)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := authhttp.UserFromContext(r.Context()); ok {
				_, _ = w.Write([]byte(u.ID))
				return
			}
			_, _ = w.Write([]byte("anonymous"))
		}))

	u, token := e.newUser(t, "maybe@example.com", domain.RoleDriver)

	t.Run("valid token attaches the user", func(t *testing.T) {
		rec := serveGuarded(t, optional, token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, u.ID, rec.Body.String())
	})

	t.Run("missing token proceeds unauthenticated", func(t *testing.T) {
		rec := serveGuarded(t, optional, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("garbage token proceeds unauthenticated", func(t *testing.T) {
		rec := serveGuarded(t, optional, "not-a-jwt")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("suspended account proceeds unauthenticated", func(t *testing.T) {
		require.NoError(t, e.store.Users().UpdateUserStatus(t.Context(), u.ID, domain.StatusSuspended))

		rec := serveGuarded(t, optional, token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "anonymous", rec.Body.String())
	})
}
