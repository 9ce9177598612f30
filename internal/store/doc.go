// Package store provides tamper-evident persistence for wtime's AppSettings
// aggregate.
//
// SecureStore owns the aggregate. It serialises every read-modify-write behind
// a single mutex and writes the whole aggregate as one envelope under one key
// of a domain.ByteStore. The envelope format is pluggable via Codec:
//   - DigestCodec: base64(JSON{data, digest}) with a secret-prefixed SHA-256
//     digest; integrity only, the payload is readable by anyone (default)
//   - SealedCodec: scrypt + ChaCha20-Poly1305; opt-in confidentiality
//
// The package also includes ByteStore backends:
//   - In-memory (MemoryByteStore)
//   - One file per key (FileByteStore)
//   - SQLite key/value table (SQLiteByteStore)
//   - Redis (RedisByteStore)
package store
