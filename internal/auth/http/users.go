package http

import (
	"errors"
	"net/http"

	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type UsersHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// HandleGet answers GET /api/users/{id}. Guarded by RequireSelfOrRoles, so
// by the time we're here the caller is either the user themselves or an
// admin.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	id := r.PathValue("id")
	u, err := h.UserService.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found.")
			return
		}
		l.Error("failed to load user", "user_id", id, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load user.")
		return
	}

	httpx.WriteOK(w, http.StatusOK, "", newUserPayload(u))
}

// HandleListSessions answers GET /api/users/{id}/sessions with the user's
// refresh sessions, newest first. Token hashes stay server-side.
func (h *UsersHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	id := r.PathValue("id")
	sessions, err := h.TokenService.ListUserSessions(ctx, id)
	if err != nil {
		l.Error("failed to list sessions", "user_id", id, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to list sessions.")
		return
	}

	out := make([]sessionPayload, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, newSessionPayload(s))
	}

	httpx.WriteOK(w, http.StatusOK, "", out)
}
