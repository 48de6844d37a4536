package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns the base64url SHA-256 of token (43 chars). Used
// wherever a token has to be keyed or logged without revealing it.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
