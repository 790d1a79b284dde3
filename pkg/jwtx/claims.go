package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session token stays valid when the caller
// does not configure one.
const DefaultSessionTTL = 12 * time.Hour

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrSubject     = errors.New("jwtx: subject is not a user id")
)

// Claims carried by ballot session tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID, one per login.
	SID string `json:"sid,omitempty"`

	// Scopes granted by the user's role, e.g. "proposals:admin".
	Scopes []string `json:"scopes,omitempty"`

	// Display name and role at the time of login.
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// SessionParams describes a freshly authenticated user.
type SessionParams struct {
	UserID    int64
	SessionID string
	Name      string
	Role      string
	Scopes    []string
	Issuer    string
	TTL       time.Duration
	Now       time.Time
}

// NewSessionClaims builds claims for a login.
func NewSessionClaims(p SessionParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:    p.SessionID,
		Scopes: p.Scopes,
		Name:   p.Name,
		Role:   p.Role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// UserID parses the subject back into a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrSubject
	}
	return id, nil
}

// ValidateIssuer checks the issuer. An empty expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" || c.Issuer == expected {
		return nil
	}
	return ErrIssuer
}

// ValidateExpiry checks exp and nbf against now.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
