package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// KeyedDigest returns the lowercase hex SHA-256 of secret || payload.
//
// This is a tamper check, not a MAC: it is not HMAC and the secret ships in
// the binary.
func KeyedDigest(secret, payload string) string {
	h := sha256.New()
	h.Write([]byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// DigestEqual compares two hex digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Fingerprint returns a short hex fingerprint of a persisted blob: SHA-256
// truncated to 10 bytes (20 hex chars).
func Fingerprint(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:10])
}
