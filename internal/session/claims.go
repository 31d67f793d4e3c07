package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the payload the backend puts into its bearer tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token claims the admin role. Route gating only;
// the backend re-checks on every admin call.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// Expired reports whether the token's expiry has passed.
func (c *Claims) Expired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(time.Now())
}

// ParseClaims decodes a bearer token's claims without verifying the
// signature. The client holds no signing secret; the backend is the
// authority on token validity and answers 401 when it disagrees. Decoding
// locally lets the client pre-expire a stale session instead of burning a
// request on it.
func ParseClaims(tokenString string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Expired() {
		return nil, ErrExpiredToken
	}
	return &claims, nil
}
