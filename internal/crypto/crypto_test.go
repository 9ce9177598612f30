package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedDigest_KnownVector(t *testing.T) {
	// sha256("keyabc")
	assert.Equal(t,
		"1141e2212b08bb07b3c9558bb7a90f4a99b1c6f0c97e970c279df64e7f0875ed",
		KeyedDigest("key", "abc"))
}

func TestKeyedDigest_IsPlainConcatenation(t *testing.T) {
	// No length framing between secret and payload.
	assert.Equal(t, KeyedDigest("a", "bc"), KeyedDigest("ab", "c"))
	assert.NotEqual(t, KeyedDigest("k1", "data"), KeyedDigest("k2", "data"))
}

func TestDigestEqual(t *testing.T) {
	d := KeyedDigest("k", "v")
	assert.True(t, DigestEqual(d, KeyedDigest("k", "v")))
	assert.False(t, DigestEqual(d, KeyedDigest("k", "w")))
	assert.False(t, DigestEqual(d, d[:10]))
}

func TestFingerprint_Length(t *testing.T) {
	assert.Len(t, Fingerprint([]byte("blob")), 20)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
