package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// SecretSize is the entropy of an invitation secret in bytes before encoding.
// 32 bytes gives 256 bits, which encodes to 43 base64url characters.
const SecretSize = 32

// NewSecret creates a cryptographically random opaque secret, returned as a
// base64url string without padding. The plaintext is handed to the invitee
// exactly once; only its fingerprint is ever persisted.
func NewSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint returns the deterministic SHA-256 digest of a secret as a
// base64url string. Equal secrets always produce equal fingerprints, which is
// what allows lookup-by-hash without storing the plaintext.
func Fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// FingerprintEqual compares two fingerprints in constant time.
func FingerprintEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
