package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwtx: signing secret is empty")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrTokenType    = errors.New("jwtx: wrong token type")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
)

// Signer is anything that can sign claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a compact JWT and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf. Zero falls
	// back to DefaultLeeway.
	Leeway time.Duration
}

// HS256Signer signs claims with a shared HMAC-SHA256 secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be non-empty; a
// missing secret is a deployment error, not something to paper over.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// HS256Verifier validates HS256 tokens of a single token type. Failures
// other than expiry collapse into ErrInvalidToken so callers can't build an
// oracle out of the distinctions.
type HS256Verifier struct {
	secret    []byte
	tokenType string
	issuer    string
	leeway    time.Duration
}

// NewVerifierHS256 creates a verifier bound to one secret and one token type.
func NewVerifierHS256(secret []byte, tokenType string, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	leeway := opts.Leeway
	if leeway == 0 {
		leeway = DefaultLeeway
	}
	return &HS256Verifier{
		secret:    secret,
		tokenType: tokenType,
		issuer:    opts.Issuer,
		leeway:    leeway,
	}, nil
}

func (v *HS256Verifier) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.TokenType != v.tokenType {
		return Claims{}, ErrTokenType
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}

func (v *HS256Verifier) keyFunc(*jwt.Token) (any, error) {
	return v.secret, nil
}
