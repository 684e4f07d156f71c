package store

import (
	"context"
	"errors"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Use it for
	// multi-step operations that must be atomic (e.g. refresh rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email or phone is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateLastLogin stamps last_login_at. Best-effort callers may ignore
	// the returned error.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// UpdateUserStatus suspends, soft-deletes or reactivates a user. The
	// auth flows only read status; moderation tooling writes it.
	UpdateUserStatus(ctx context.Context, userID string, status domain.Status) error
}

type Sessions interface {
	// CreateSession stores a new refresh session record. Returns
	// ErrAlreadyExists when the token hash is already present (an
	// unexpected collision).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session owning the given refresh
	// token fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// RevokeSession flips revoked and stamps revoked_at. Revoking an
	// already-revoked session is a no-op.
	RevokeSession(ctx context.Context, id string) error

	// ListUserSessions returns all session records for a user, newest
	// first.
	ListUserSessions(ctx context.Context, userID string) ([]domain.Session, error)

	// DeleteSessionsExpiredBefore is housekeeping; request flows never
	// delete sessions.
	DeleteSessionsExpiredBefore(ctx context.Context, cutoff time.Time) error
}

type Profiles interface {
	// Ensure* upsert the minimal role profile row for a user. They are
	// idempotent so registration retries and seeding can call them freely.
	EnsureDriverProfile(ctx context.Context, p domain.DriverProfile) error
	EnsureMerchantProfile(ctx context.Context, p domain.MerchantProfile) error
	EnsureLogisticProfile(ctx context.Context, p domain.LogisticProfile) error
	EnsureAdminProfile(ctx context.Context, p domain.AdminProfile) error
}
