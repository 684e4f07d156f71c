package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type RefreshHandler struct {
	TokenService *service.TokenService
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

// ServeHTTP handles POST /api/auth/refresh.
//
// The presented refresh token is rotated: its session is revoked and a new
// pair comes back. Any validation failure is a flat 401 so the endpoint
// can't be used to probe which tokens exist.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	tokens, err := h.TokenService.Refresh(ctx, p.RefreshToken, requestMeta(r))
	if err != nil {
		var inactive *service.InactiveUserError
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired refresh token.")
		case errors.As(err, &inactive):
			httpx.WriteError(w, http.StatusForbidden, "Account is "+string(inactive.Status)+".")
		default:
			l.Error("token refresh failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Token refresh failed.")
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteOK(w, http.StatusOK, "Token refreshed.", tokens)
}
