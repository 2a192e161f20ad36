package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the part of the backend's access token the client can use
// without the signing key.
type tokenClaims struct {
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// inspectToken decodes a JWT without verifying it. ok is false for opaque
// or malformed tokens, which are then judged by the server alone.
func inspectToken(raw string) (*tokenClaims, bool) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func (c *tokenClaims) expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}
