package http

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// ServeHTTP handles POST /api/auth/login.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var p loginPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := p.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.UserService.Login(ctx, p.Email, p.Password)
	if err != nil {
		var inactive *service.InactiveUserError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password.")
		case errors.As(err, &inactive):
			httpx.WriteError(w, http.StatusForbidden, "Account is "+string(inactive.Status)+".")
		default:
			l.Error("login failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Login failed.")
		}
		return
	}

	tokens, err := h.TokenService.IssueTokenPair(ctx, u, requestMeta(r))
	if err != nil {
		l.Error("failed to issue tokens", "user_id", u.ID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	l.Info("user logged in", "user_id", u.ID)

	httpx.NoCache(w)
	httpx.WriteOK(w, http.StatusOK, "Logged in successfully.", authPayload{
		User:   newUserPayload(u),
		Tokens: tokens,
	})
}
