package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "ballot-test"

func sessionClaims(now time.Time, ttl time.Duration) jwtx.Claims {
	return jwtx.NewSessionClaims(jwtx.SessionParams{
		UserID:    7,
		SessionID: "session-1",
		Name:      "Anjali Mehta",
		Role:      "admin",
		Scopes:    []string{"proposals:admin"},
		Issuer:    exampleIssuer,
		TTL:       ttl,
		Now:       now,
	})
}

func TestEdDSASignAndVerify(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(exampleIssuer)
	require.NoError(t, err)
	require.True(t, km.KeySet.IsReady())

	claims := sessionClaims(time.Now().UTC(), 5*time.Minute)
	token, err := km.Signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.SID, parsed.SID)
	require.Equal(t, claims.Name, parsed.Name)
	require.Equal(t, claims.Role, parsed.Role)
	require.Equal(t, claims.Scopes, parsed.Scopes)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestEdDSAVerifyFailures(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(exampleIssuer)
	require.NoError(t, err)

	t.Run("wrong issuer", func(t *testing.T) {
		other := jwtx.NewVerifierEdDSA(km.KeySet, "someone-else")
		token, err := km.Signer.Sign(sessionClaims(time.Now(), time.Minute))
		require.NoError(t, err)

		_, err = other.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := km.Signer.Sign(sessionClaims(time.Now().Add(-2*time.Hour), time.Hour))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("signed by a key we do not trust", func(t *testing.T) {
		stranger, err := jwtx.GenerateEdDSASigner()
		require.NoError(t, err)
		token, err := stranger.Sign(sessionClaims(time.Now(), time.Minute))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestNewEphemeralKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager("")
	require.Error(t, err)
}
