package store

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"wtime/internal/crypto"
)

// digestSecret prefixes every digest. Override at build time with
// -ldflags "-X wtime/internal/store.digestSecret=...".
var digestSecret = "wtime_security_2025_key_v1"

var (
	// ErrTampered is returned by Codec.Open when a blob fails its integrity check.
	ErrTampered = errors.New("envelope integrity check failed")
)

// Codec turns the serialised aggregate into the blob kept in the byte store.
type Codec interface {
	Seal(data []byte) ([]byte, error)
	Open(blob []byte) ([]byte, error)
}

// envelope is the JSON document inside the base64 blob.
type envelope struct {
	Data   string `json:"data"`
	Digest string `json:"digest"`
}

// DigestCodec writes base64(JSON{data, digest}) where
// digest = hex(SHA-256(secret || data)).
type DigestCodec struct {
	secret string
}

// NewDigestCodec returns a DigestCodec. An empty secret selects the built-in one.
func NewDigestCodec(secret string) DigestCodec {
	if secret == "" {
		secret = digestSecret
	}
	return DigestCodec{secret: secret}
}

// Seal wraps data in a digest envelope.
func (c DigestCodec) Seal(data []byte) ([]byte, error) {
	raw, err := marshalCompact(envelope{
		Data:   string(data),
		Digest: crypto.KeyedDigest(c.secret, string(data)),
	})
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// Open verifies blob and returns the data it carries. The decoded envelope
// must be exactly the compact encoding of its own fields, so a blob that only
// parses to the same value is rejected as well.
func (c DigestCodec) Open(blob []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(string(bytes.TrimSpace(blob)))
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if !isCanonical(raw, env) {
		return nil, ErrTampered
	}
	if !crypto.DigestEqual(crypto.KeyedDigest(c.secret, env.Data), env.Digest) {
		return nil, ErrTampered
	}
	return []byte(env.Data), nil
}

// isCanonical reports whether raw is the compact encoding of env, either as
// encoding/json writes it or with U+2028 and U+2029 left unescaped the way
// JSON.stringify does.
func isCanonical(raw []byte, env envelope) bool {
	want, err := marshalCompact(env)
	if err != nil {
		return false
	}
	return bytes.Equal(raw, want) || bytes.Equal(raw, unescapeLineSeparators(want))
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes in encoded
// JSON with the raw characters.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' {
			out = append(out, b[i])
			continue
		}
		rest := b[i:]
		switch {
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		case len(rest) > 1:
			out = append(out, rest[:2]...)
			i++
		default:
			out = append(out, b[i])
		}
	}
	return out
}

// marshalCompact encodes v without HTML escaping or a trailing newline, which
// matches what JSON.stringify produces for the same value.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Compile-time assertion that DigestCodec implements Codec.
var _ Codec = DigestCodec{}
