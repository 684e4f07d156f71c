package http

import (
	"encoding/json"
	"net/http"

	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type LogoutHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP handles POST /api/auth/logout.
//
// Idempotent: logging out an unknown or already-revoked token still succeeds,
// a client must always be able to end its session.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var p refreshPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if p.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Refresh token is required.")
		return
	}

	if err := h.TokenService.Logout(ctx, p.RefreshToken); err != nil {
		l.Error("logout failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Logout failed.")
		return
	}

	httpx.WriteOK(w, http.StatusOK, "Logged out successfully.", nil)
}
