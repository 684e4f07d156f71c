package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/service"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	u, err := users.Register(ctx, service.RegisterParams{
		Name:        "Maria Merchant",
		Email:       "Maria@Example.COM",
		Phone:       "+14155552671",
		Password:    "S3cure!password",
		Role:        domain.RoleMerchant,
		CompanyName: "Maria's Goods",
	})
	require.NoError(t, err)

	require.NotEmpty(t, u.ID)
	require.Equal(t, "maria@example.com", u.Email, "email is stored lowercased")
	require.Equal(t, domain.RoleMerchant, u.Role)
	require.Equal(t, domain.StatusActive, u.Status)
	require.Equal(t, domain.ProviderLocal, u.Provider)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "S3cure!password", u.PasswordHash)
	require.False(t, u.CreatedAt.IsZero())
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	_, err := users.Register(ctx, service.RegisterParams{
		Name:     "First User",
		Email:    "taken@example.com",
		Password: "S3cure!password",
		Role:     domain.RoleDriver,
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, service.RegisterParams{
		Name:     "Second User",
		Email:    "TAKEN@EXAMPLE.com",
		Password: "S3cure!password",
		Role:     domain.RoleDriver,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRegisterUnknownRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	_, err := users.Register(ctx, service.RegisterParams{
		Name:     "Nobody",
		Email:    "nobody@example.com",
		Password: "S3cure!password",
		Role:     domain.Role("superuser"),
	})
	require.ErrorIs(t, err, service.ErrRoleUnknown)
}

func TestRegisterAllRolesBootstrapProfiles(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleDriver, domain.RoleMerchant, domain.RoleLogistic} {
		_, err := users.Register(ctx, service.RegisterParams{
			Name:        "User " + string(role),
			Email:       string(role) + "@example.com",
			Password:    "S3cure!password",
			Role:        role,
			CompanyName: "Acme " + string(role),
		})
		require.NoError(t, err, "role %s", role)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	registerDriver(t, users, "driver@example.com")

	t.Run("correct credentials", func(t *testing.T) {
		u, err := users.Login(ctx, "driver@example.com", "S3cure!password")
		require.NoError(t, err)
		require.Equal(t, "driver@example.com", u.Email)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		_, err := users.Login(ctx, "DRIVER@example.COM", "S3cure!password")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := users.Login(ctx, "driver@example.com", "not the password")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, err := users.Login(ctx, "ghost@example.com", "S3cure!password")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestLoginInactiveAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	u := registerDriver(t, users, "driver@example.com")
	require.NoError(t, st.Users().UpdateUserStatus(ctx, u.ID, domain.StatusDeleted))

	_, err := users.Login(ctx, "driver@example.com", "S3cure!password")

	var inactive *service.InactiveUserError
	require.ErrorAs(t, err, &inactive)
	require.Equal(t, domain.StatusDeleted, inactive.Status)
}

func TestLoginStampsLastLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	u := registerDriver(t, users, "driver@example.com")
	require.Nil(t, u.LastLoginAt)

	_, err := users.Login(ctx, "driver@example.com", "S3cure!password")
	require.NoError(t, err)

	// The stamp is asynchronous, give it a moment.
	require.Eventually(t, func() bool {
		got, err := users.GetUserByID(ctx, u.ID)
		return err == nil && got.LastLoginAt != nil
	}, 2*time.Second, 20*time.Millisecond)
}
