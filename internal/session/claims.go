package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims decodes the payload of a JWT without verifying its signature. The
// backend is the only party that verifies tokens; the client reads claims for
// display and expiry only.
func Claims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// ExpiryFromToken returns the exp claim of raw. ok is false for opaque tokens
// and tokens without exp.
func ExpiryFromToken(raw string) (exp time.Time, ok bool) {
	claims, err := Claims(raw)
	if err != nil {
		return time.Time{}, false
	}
	nd, err := claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}
