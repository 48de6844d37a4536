package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload: the user id and an expiry in unix
// seconds. Nothing else is carried; everything else about the principal is
// looked up on each request.
type Claims struct {
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// Expiry returns expires_at as a time, or the zero time when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0).UTC()
}

// The jwt.Claims methods below expose no registered time claims, so the
// parser only checks structure and signature. Expiry is enforced by
// Codec.Verify against an explicit clock.

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error) { return "", nil }
func (c Claims) GetSubject() (string, error) { return c.Subject, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }
