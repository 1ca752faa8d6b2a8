package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims shown in the UI.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes a JWT without verifying its signature. The backend is
// the only authority on validity; this is for display.
func ParseClaims(token string) (Claims, error) {
	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	claims := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
