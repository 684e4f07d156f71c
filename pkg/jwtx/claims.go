package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; refresh tokens live for
// weeks and are tracked server-side via their hash so they can be revoked.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 2 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour

	// DefaultLeeway tolerates small clock drift between the issuer and a
	// verifier when checking exp/nbf.
	DefaultLeeway = 5 * time.Second
)

// Token type markers carried in the "typ" claim. A refresh token must never
// be accepted where an access token is expected, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the claims we embed in issued JWTs. Access tokens carry the
// caller's role and email so handlers can authorize without a store read;
// refresh tokens stay minimal (subject + type only) so role changes take
// effect on the next access-token mint rather than surviving for the whole
// refresh lifetime.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is "access" or "refresh".
	TokenType string `json:"typ,omitempty"`

	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(subject, role, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenType: TokenTypeAccess,
		Role:      role,
		Email:     email,
	}
}

// NewRefreshClaims builds claims for a longer-lived refresh token. The
// payload is deliberately minimal, but the jti is load-bearing: timestamps
// only have second granularity, so without it two tokens minted for the same
// user in the same second would be byte-identical (and so would their stored
// fingerprints).
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenType: TokenTypeRefresh,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// DecodeExpiry extracts the exp claim without verifying the signature. Only
// use this on tokens this process just minted itself.
func DecodeExpiry(token string) (time.Time, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return time.Time{}, ErrMalformed
	}
	if c.ExpiresAt == nil {
		return time.Time{}, ErrMalformed
	}
	return c.ExpiresAt.Time, nil
}
