package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "ballot"}}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("ballot"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("somebody-else"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.NoError(t, c.ValidateExpiry(now))
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrNotYetValid)
	})

	t.Run("no exp or nbf", func(t *testing.T) {
		require.NoError(t, (&jwtx.Claims{}).ValidateExpiry(now))
	})
}

func TestNewSessionClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	c := jwtx.NewSessionClaims(jwtx.SessionParams{
		UserID:    42,
		SessionID: "sid-1",
		Name:      "Hari G",
		Role:      "member",
		Issuer:    "ballot",
		Now:       now,
	})

	require.Equal(t, "42", c.Subject)
	require.Equal(t, "ballot", c.Issuer)
	require.True(t, now.Add(jwtx.DefaultSessionTTL).Equal(c.ExpiresAt.Time))
	require.NotEmpty(t, c.ID)

	id, err := c.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestUserIDRejectsBadSubject(t *testing.T) {
	for _, sub := range []string{"", "abc", "0", "-3"} {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
		_, err := c.UserID()
		require.ErrorIs(t, err, jwtx.ErrSubject, "subject %q", sub)
	}
}
