package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/internal/auth/store/drivers/sqlite"
	"github.com/spazigo/spazigo/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newUser(email, phone string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		Phone:        phone,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         domain.RoleDriver,
		Status:       domain.StatusActive,
		Provider:     domain.ProviderLocal,
	}
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	require.NoError(t, st.Users().CreateUser(ctx, newUser("a@example.com", "+14155552671")))

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, newUser("A@EXAMPLE.com", ""))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate phone conflicts", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, newUser("b@example.com", "+14155552671"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing phone doesn't conflict with itself", func(t *testing.T) {
		require.NoError(t, st.Users().CreateUser(ctx, newUser("c@example.com", "")))
		require.NoError(t, st.Users().CreateUser(ctx, newUser("d@example.com", "")))
	})
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("mixed@example.com", "")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	got, err := st.Users().GetUserByEmail(ctx, "MIXED@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevokeSessionKeepsFirstRevocationTime(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("s@example.com", "")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "fingerprint-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	require.NoError(t, st.Sessions().RevokeSession(ctx, sess.ID))

	first, err := st.Sessions().GetSessionByTokenHash(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.True(t, first.Revoked)
	require.NotNil(t, first.RevokedAt)

	// A second revoke must not move the stamp.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, st.Sessions().RevokeSession(ctx, sess.ID))

	second, err := st.Sessions().GetSessionByTokenHash(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.Equal(t, first.RevokedAt.UTC(), second.RevokedAt.UTC())
}

func TestSessionHashConflict(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("h@example.com", "")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "same-fingerprint",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	dup := sess
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Sessions().CreateSession(ctx, dup), store.ErrAlreadyExists)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("tx@example.com", "")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // any error aborts the tx
	})
	require.Error(t, err)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfileEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("p@example.com", "")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	p := domain.DriverProfile{UserID: u.ID, CurrentStatus: domain.DriverOffline}
	require.NoError(t, st.Profiles().EnsureDriverProfile(ctx, p))
	require.NoError(t, st.Profiles().EnsureDriverProfile(ctx, p))
}

func TestEnsureMerchantProfileWithoutPhone(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("m@example.com", "")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	// Registration without a phone number stores an empty string, not NULL.
	p := domain.MerchantProfile{UserID: u.ID, CompanyName: "Acme Freight"}
	require.NoError(t, st.Profiles().EnsureMerchantProfile(ctx, p))
	require.NoError(t, st.Profiles().EnsureMerchantProfile(ctx, p))
}
