package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can learn from a token without the server's key.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an exp claim never expire client-side.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect decodes the token's claims. The signature is NOT verified; the
// server stays the authority on validity.
func Inspect(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errors.New("empty token")
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, err
	}
	var c Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
