package jwtx_test

import (
	"testing"
	"time"

	"github.com/spazigo/spazigo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "spazigo-auth-test"

var (
	accessSecret  = []byte("access-secret-for-tests")
	refreshSecret = []byte("refresh-secret-for-tests")
)

func TestSignVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.TokenTypeAccess, jwtx.VerifyOptions{Issuer: testIssuer})
	require.NoError(t, err)

	now := time.Now()
	token, err := signer.Sign(jwtx.NewAccessClaims("user-1", "driver", "driver@example.com", testIssuer, time.Hour, now))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "driver", claims.Role)
	require.Equal(t, "driver@example.com", claims.Email)
	require.Equal(t, jwtx.TokenTypeAccess, claims.TokenType)
	require.Equal(t, testIssuer, claims.Issuer)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256([]byte("completely-different"), jwtx.TokenTypeAccess, jwtx.VerifyOptions{})
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims("user-1", "driver", "d@e.com", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)

	// A refresh token must never be accepted by the access verifier, even
	// when the secrets happen to be the same.
	accessVerifier, err := jwtx.NewVerifierHS256(refreshSecret, jwtx.TokenTypeAccess, jwtx.VerifyOptions{})
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewRefreshClaims("user-1", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = accessVerifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrTokenType)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.TokenTypeAccess, jwtx.VerifyOptions{Issuer: "someone-else"})
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims("user-1", "driver", "d@e.com", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.TokenTypeAccess, jwtx.VerifyOptions{})
	require.NoError(t, err)

	t.Run("expired beyond leeway is rejected", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("user-1", "driver", "d@e.com", testIssuer,
			time.Hour, time.Now().Add(-2*time.Hour)))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("expired within leeway still passes", func(t *testing.T) {
		// Expired 2 seconds ago, which the default 5s leeway tolerates.
		token, err := signer.Sign(jwtx.NewAccessClaims("user-1", "driver", "d@e.com", testIssuer,
			time.Hour, time.Now().Add(-time.Hour-2*time.Second)))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.NoError(t, err)
	})
}

func TestTokensMintedTogetherAreDistinct(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)

	// JWT timestamps have second granularity, so the jti is what keeps two
	// tokens minted at the same instant from being byte-identical.
	now := time.Now()
	a := jwtx.NewRefreshClaims("user-1", testIssuer, time.Hour, now)
	b := jwtx.NewRefreshClaims("user-1", testIssuer, time.Hour, now)
	require.NotEmpty(t, a.ID)
	require.NotEmpty(t, b.ID)
	require.NotEqual(t, a.ID, b.ID)

	tokenA, err := signer.Sign(a)
	require.NoError(t, err)
	tokenB, err := signer.Sign(b)
	require.NoError(t, err)
	require.NotEqual(t, tokenA, tokenB)

	access := jwtx.NewAccessClaims("user-1", "driver", "d@e.com", testIssuer, time.Hour, now)
	require.NotEmpty(t, access.ID)
}

func TestEmptySecretRejected(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256(nil)
	require.ErrorIs(t, err, jwtx.ErrNoSecret)

	_, err = jwtx.NewVerifierHS256(nil, jwtx.TokenTypeAccess, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrNoSecret)
}

func TestDecodeExpiry(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)

	now := time.Now()
	token, err := signer.Sign(jwtx.NewRefreshClaims("user-1", testIssuer, 30*24*time.Hour, now))
	require.NoError(t, err)

	exp, err := jwtx.DecodeExpiry(token)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(30*24*time.Hour), exp, time.Second)

	_, err = jwtx.DecodeExpiry("not-a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
