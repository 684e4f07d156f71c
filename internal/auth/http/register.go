package http

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/pkg/httpx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type RegisterHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

type registerPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
}

func (p registerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&p.Email, validation.Required, validation.Length(5, 254), is.Email),
		validation.Field(&p.Phone, validation.By(validPhone)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&p.Role, validation.Required, validation.By(validRole)),
		validation.Field(&p.CompanyName, validation.Length(0, 200)),
	)
}

func validRole(value any) error {
	s, _ := value.(string)
	if !domain.ValidRole(s) {
		return errors.New("must be one of admin, driver, merchant, logistic")
	}
	return nil
}

// validPhone accepts E.164 numbers only. Empty is fine, phone is optional.
func validPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid E.164 phone number")
	}
	return nil
}

// ServeHTTP handles POST /api/auth/register.
//
// Creates the user with its role profile and immediately issues a token pair
// so a fresh signup lands logged in.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var p registerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := p.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.UserService.Register(ctx, service.RegisterParams{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Password:    p.Password,
		Role:        domain.Role(p.Role),
		CompanyName: p.CompanyName,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusConflict, "Email or phone already registered.")
		case errors.Is(err, service.ErrRoleUnknown):
			httpx.WriteError(w, http.StatusBadRequest, "Unknown role.")
		default:
			l.Error("registration failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Registration failed.")
		}
		return
	}

	tokens, err := h.TokenService.IssueTokenPair(ctx, u, requestMeta(r))
	if err != nil {
		l.Error("failed to issue tokens after registration", "user_id", u.ID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	l.Info("user registered", "user_id", u.ID, "role", string(u.Role))

	httpx.NoCache(w)
	httpx.WriteOK(w, http.StatusCreated, "Registered successfully.", authPayload{
		User:   newUserPayload(u),
		Tokens: tokens,
	})
}
