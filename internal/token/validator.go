// Package token checks whether a bearer credential is still worth keeping.
// The check decodes the JWT payload without verifying the signature: it is
// a UX heuristic to avoid presenting a session the server will reject, not
// a security boundary — that lives server-side.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Valid reports whether access carries an exp claim in the future.
// Malformed tokens, tokens without exp, and expired tokens all read as
// invalid. Never panics.
func Valid(access string) bool {
	return validAt(access, time.Now())
}

func validAt(access string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(now)
}
