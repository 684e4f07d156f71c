package domain

import "time"

// Session models one issued refresh token. The raw token is never stored;
// TokenHash is its SHA-256 fingerprint. A user may hold many concurrent
// sessions (one per device). Sessions are revoked, never deleted, by the
// request flows; expiry is enforced at validation time against ExpiresAt.
type Session struct {
	ID        string
	UserID    string
	TokenHash string // base64url SHA-256 of the raw refresh token, globally unique

	// Device metadata captured at issuance for security/ops visibility.
	UserAgent string
	Platform  string
	IP        string

	ExpiresAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the session can still be redeemed at the given time.
func (s Session) Valid(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
