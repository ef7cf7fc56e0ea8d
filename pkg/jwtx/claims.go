// Package jwtx verifies the bearer tokens minted by the platform auth
// service. Tokens are HMAC-SHA256 signed with a shared secret; this service
// only ever verifies, it never issues tokens to end users.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("jwtx: token invalid")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims is the subset of the auth service's token payload this service
// consumes: who the caller is, their platform role, and which communities
// they administer.
type Claims struct {
	jwt.RegisteredClaims

	Role        string   `json:"role"`
	Communities []string `json:"communities,omitempty"`
}

// ValidateExpiry reports whether the token is past its exp claim. The jwt
// library already checks this during Verify; handlers call it again before
// trusting a cached claims value.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt != nil && time.Now().After(c.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}
