// Package jwtx issues and validates the HMAC-signed access tokens used by the
// chat API.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrMalformedClaims  = errors.New("jwtx: malformed claims")
	ErrExpired          = errors.New("jwtx: token expired")

	ErrEmptySecret    = errors.New("jwtx: empty secret")
	ErrUnsupportedAlg = errors.New("jwtx: unsupported signing algorithm")
	ErrInvalidTTL     = errors.New("jwtx: ttl must be positive")
	ErrEmptySubject   = errors.New("jwtx: empty subject")
)

// DefaultAlg is used when no algorithm is configured.
const DefaultAlg = "HS256"

var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Token is a freshly issued access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer mints access tokens.
type Issuer interface {
	Issue(subject string, now time.Time, ttl time.Duration) (Token, error)
}

// Verifier validates an access token at a given instant.
type Verifier interface {
	Verify(token string, now time.Time) (Claims, error)
}

// Codec signs and checks tokens with a single shared secret. It is immutable
// after construction and safe for concurrent use.
type Codec struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	parser     *jwt.Parser
}

var (
	_ Issuer   = (*Codec)(nil)
	_ Verifier = (*Codec)(nil)
)

// NewCodec builds a codec for one of HS256, HS384 or HS512. An empty alg
// selects HS256.
func NewCodec(secret []byte, alg string, defaultTTL time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if alg == "" {
		alg = DefaultAlg
	}
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	if defaultTTL <= 0 {
		return nil, ErrInvalidTTL
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &Codec{
		secret:     key,
		method:     method,
		defaultTTL: defaultTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithStrictDecoding(),
		),
	}, nil
}

// Alg returns the configured signing algorithm.
func (c *Codec) Alg() string { return c.method.Alg() }

// DefaultTTL returns the lifetime used when Issue is given ttl <= 0.
func (c *Codec) DefaultTTL() time.Duration { return c.defaultTTL }

// Issue signs {sub, expires_at} where expires_at = now + ttl, truncated to
// whole seconds.
func (c *Codec) Issue(subject string, now time.Time, ttl time.Duration) (Token, error) {
	if subject == "" {
		return Token{}, ErrEmptySubject
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	claims := Claims{
		Subject:   subject,
		ExpiresAt: now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return Token{}, fmt.Errorf("jwtx: sign: %w", err)
	}

	return Token{Value: signed, ExpiresAt: claims.Expiry()}, nil
}

// Decode checks structure and signature only. Expired tokens decode fine.
func (c *Codec) Decode(token string) (Claims, error) {
	var claims Claims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

// Verify decodes the token and requires sub and expires_at, with
// now < expires_at. A structurally broken token reports ErrMalformedClaims
// (and still matches ErrMalformed).
func (c *Codec) Verify(token string, now time.Time) (Claims, error) {
	claims, err := c.Decode(token)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformedClaims, err)
		}
		return Claims{}, err
	}

	if claims.Subject == "" || claims.ExpiresAt == 0 {
		return Claims{}, ErrMalformedClaims
	}
	if now.Unix() >= claims.ExpiresAt {
		return Claims{}, ErrExpired
	}
	return claims, nil
}
