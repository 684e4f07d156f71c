package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/internal/auth/store"
	"github.com/spazigo/spazigo/pkg/cryptox"
	"github.com/spazigo/spazigo/pkg/idx"
	"github.com/spazigo/spazigo/pkg/jwtx"
	"github.com/spazigo/spazigo/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrRoleUnknown        = errors.New("unknown_role")
)

// InactiveUserError is returned when the credentials check out but the account
// is suspended or soft-deleted. Unlike bad credentials this is safe to report,
// the caller already proved they own the account.
type InactiveUserError struct {
	Status domain.Status
}

func (e *InactiveUserError) Error() string {
	return fmt.Sprintf("user account is %s", e.Status)
}

type TokenService struct {
	Store           store.Store
	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier
	Issuer          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
}

// IssueTokenPair mints an access/refresh pair for the user and records the
// refresh session (hash + device metadata) so it can be rotated and revoked.
func (s *TokenService) IssueTokenPair(ctx context.Context, u domain.User, meta domain.RequestMeta) (domain.TokenPair, error) {
	now := time.Now()

	pair, session, err := s.mintPair(u, meta, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}

// Refresh validates a refresh token and rotates it: the presented token's
// session is revoked and a fresh pair is issued, atomically. Every validation
// failure collapses into ErrInvalidRefresh so callers can't tell a forged
// token from an expired or revoked one.
func (s *TokenService) Refresh(ctx context.Context, rawToken string, meta domain.RequestMeta) (domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	claims, err := s.RefreshVerifier.Verify(rawToken)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	// 1. Lookup the persisted session by token fingerprint
	fp := cryptox.Fingerprint(rawToken)
	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	// 2. The session must be live and must belong to the token's subject
	if !sess.Valid(now) {
		if sess.Revoked {
			l.Warn("revoked refresh token presented", "session_id", sess.ID, "user_id", sess.UserID)
		}
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	if sess.UserID != claims.Subject {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	// 3. Load the user fresh so suspensions take effect immediately
	u, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}
	if !u.IsActive() {
		return domain.TokenPair{}, &InactiveUserError{Status: u.Status}
	}

	pair, newSession, err := s.mintPair(u, meta, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	// 4. Rotate atomically: revoke old session and create the new one
	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().RevokeSession(ctx, sess.ID); err != nil {
			return err
		}
		return tx.Sessions().CreateSession(ctx, newSession)
	}); err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}

// Logout revokes the session behind a refresh token. It is idempotent:
// unknown, malformed or already-revoked tokens all succeed quietly so a
// client can always log out.
func (s *TokenService) Logout(ctx context.Context, rawToken string) error {
	fp := cryptox.Fingerprint(rawToken)
	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Store.Sessions().RevokeSession(ctx, sess.ID)
}

// ListUserSessions returns all session records for a user, newest first.
func (s *TokenService) ListUserSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	return s.Store.Sessions().ListUserSessions(ctx, userID)
}

// mintPair signs both tokens and builds the session row for the refresh half.
// The session expiry is decoded back out of the freshly minted token so the
// row and the token can never disagree.
func (s *TokenService) mintPair(u domain.User, meta domain.RequestMeta, now time.Time) (domain.TokenPair, domain.Session, error) {
	access, err := s.AccessSigner.Sign(
		jwtx.NewAccessClaims(u.ID, string(u.Role), u.Email, s.Issuer, s.AccessTTL, now),
	)
	if err != nil {
		return domain.TokenPair{}, domain.Session{}, err
	}

	refresh, err := s.RefreshSigner.Sign(
		jwtx.NewRefreshClaims(u.ID, s.Issuer, s.RefreshTTL, now),
	)
	if err != nil {
		return domain.TokenPair{}, domain.Session{}, err
	}

	expiresAt, err := jwtx.DecodeExpiry(refresh)
	if err != nil {
		return domain.TokenPair{}, domain.Session{}, err
	}

	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.Fingerprint(refresh),
		UserAgent: meta.UserAgent,
		Platform:  meta.Platform,
		IP:        meta.IP,
		ExpiresAt: expiresAt,
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, session, nil
}
