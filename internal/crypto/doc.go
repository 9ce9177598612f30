// Package crypto exposes the minimal primitives used by wtime.
//
// Contents
//
//   - Secret-prefixed SHA-256 digests for envelope tamper detection
//     (KeyedDigest, DigestEqual)
//   - Short blob fingerprints for display/logging (Fingerprint)
//   - Best-effort memory wiping for derived keys (Wipe)
//
// # Notes
//
// KeyedDigest detects corruption and casual edits only. The payload it covers
// is stored in the clear and the secret is compiled into the binary.
package crypto
