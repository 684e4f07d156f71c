package http

import (
	"net/http"

	"github.com/spazigo/spazigo/pkg/httpx"
)

// VerifyHandler answers GET /api/auth/verify. It runs behind Authenticate,
// so reaching it at all means the token checked out; it just echoes the
// identity back for clients that only want a yes/no.
func VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		httpx.NoCache(w)
		httpx.WriteOK(w, http.StatusOK, "Token is valid.", map[string]string{
			"id":    u.ID,
			"role":  string(u.Role),
			"email": u.Email,
		})
	}
}

// MeHandler answers GET /api/auth/me with the full (sanitized) profile of
// the authenticated user.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		httpx.NoCache(w)
		httpx.WriteOK(w, http.StatusOK, "", newUserPayload(u))
	}
}
