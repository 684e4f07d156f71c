package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/jwtx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type ctxKey int

const (
	ctxKeyClaims ctxKey = iota
	ctxKeyUser
)

// ClaimsFromContext returns the verified access token claims attached by
// Authenticate.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(jwtx.Claims)
	return c, ok
}

// UserFromContext returns the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// bearerToken pulls the compact JWT out of the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate verifies the bearer access token and loads the user fresh from
// the store, so suspensions and deletions take effect on the very next
// request rather than when the token expires.
//
// All token failures come back as a generic 401. An authenticated but
// inactive account gets a 403 naming the account state; at that point the
// caller has proven who they are.
func Authenticate(verifier jwtx.Verifier, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			u, err := users.GetUserByID(ctx, claims.Subject)
			if err != nil {
				// Covers deleted rows and store failures alike; neither is
				// worth distinguishing for the caller.
				httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			if !u.IsActive() {
				l.Info("inactive account presented valid token", "user_id", u.ID, "status", string(u.Status))
				httpx.WriteError(w, http.StatusForbidden, "Account is "+string(u.Status)+".")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyClaims, claims)
			ctx = context.WithValue(ctx, ctxKeyUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuthenticate attaches claims and user like Authenticate, but any
// failure lets the request proceed unauthenticated instead of rejecting it.
// For endpoints that personalise when a token is present but work without.
func MaybeAuthenticate(verifier jwtx.Verifier, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetUserByID(ctx, claims.Subject)
			if err != nil || !u.IsActive() {
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyClaims, claims)
			ctx = context.WithValue(ctx, ctxKeyUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request through only when the authenticated user
// holds one of the listed roles. Must run inside Authenticate.
func RequireRoles(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.WriteError(w, http.StatusForbidden, "Insufficient permissions.")
		})
	}
}

// RequireSelfOrRoles allows the request when the {id} path parameter matches
// the authenticated user, or when the user holds one of the listed roles.
// Must run inside Authenticate on a route with an {id} segment.
func RequireSelfOrRoles(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			if u.ID == r.PathValue("id") {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.WriteError(w, http.StatusForbidden, "Insufficient permissions.")
		})
	}
}
