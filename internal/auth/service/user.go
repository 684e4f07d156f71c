package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/pkg/cryptox"
	"github.com/spazigo/spazigo/pkg/idx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// RegisterParams is the already-validated registration payload. Handlers are
// responsible for syntactic validation; this layer enforces business rules
// (role validity, uniqueness, profile bootstrap).
type RegisterParams struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	Role        domain.Role
	CompanyName string // required context for merchant and logistic roles
}

// Register creates the user and its role profile atomically. Returns
// store.ErrAlreadyExists when the email (case-insensitively) or phone is
// taken.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	if !domain.ValidRole(string(p.Role)) {
		return domain.User{}, ErrRoleUnknown
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:        strings.TrimSpace(p.Phone),
		PasswordHash: hash,
		Role:         p.Role,
		Status:       domain.StatusActive,
		Provider:     domain.ProviderLocal,
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return ensureRoleProfile(ctx, tx, u, p.CompanyName)
	}); err != nil {
		return domain.User{}, err
	}

	// Re-read so the caller sees the stored timestamps.
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// Login checks the credentials and returns the user. Unknown email and wrong
// password both come back as ErrInvalidCredentials; a correct password on a
// suspended or deleted account returns InactiveUserError.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", "user_id", u.ID)
		return domain.User{}, ErrInvalidCredentials
	}

	if !u.IsActive() {
		return domain.User{}, &InactiveUserError{Status: u.Status}
	}

	// Best-effort stamp; a failure here must never fail the login.
	go func(ctx context.Context) {
		if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
			slogx.FromContext(ctx).Warn("failed to stamp last login", "user_id", u.ID, "error", err)
		}
	}(context.WithoutCancel(ctx))

	return u, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
