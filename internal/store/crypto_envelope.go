package store

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"wtime/internal/crypto"
)

const (
	// The current supported version of the sealed blob format.
	sealedFormatVersion = 1

	// Upper bounds on KDF parameters read back from a blob.
	maxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
)

var (
	errEmptyPassphrase = errors.New("sealed codec requires a passphrase")
)

// sealedBlob is the JSON structure holding the ciphertext and KDF parameters.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// SealedCodec encrypts the aggregate with a passphrase-derived key.
//
// Unlike DigestCodec it hides the payload. Blobs are base64(JSON) so text-only
// byte stores can hold them, but they are not readable by DigestCodec.
type SealedCodec struct {
	passphrase string
	n, r, p    int
}

// NewSealedCodec returns a SealedCodec with default scrypt parameters.
func NewSealedCodec(passphrase string) (*SealedCodec, error) {
	N, r, p := scryptParamsDefault()
	return NewSealedCodecWithParams(passphrase, N, r, p)
}

// NewSealedCodecWithParams returns a SealedCodec with explicit scrypt parameters.
func NewSealedCodecWithParams(passphrase string, N, r, p int) (*SealedCodec, error) {
	if passphrase == "" {
		return nil, errEmptyPassphrase
	}
	return &SealedCodec{passphrase: passphrase, n: N, r: r, p: p}, nil
}

// Seal derives a fresh salted key and seals data into a blob.
func (c *SealedCodec) Seal(data []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(c.passphrase), salt[:], c.n, c.r, c.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], data, salt[:])

	raw, err := json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      c.n,
		R:      c.r,
		P:      c.p,
		Cipher: ct,
	})
	if err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), nil
}

// Open authenticates and decrypts a blob produced by Seal.
func (c *SealedCodec) Open(blob []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(string(blob))
	if err != nil {
		return nil, fmt.Errorf("decode sealed blob: %w", err)
	}
	var bl sealedBlob
	if err := json.Unmarshal(raw, &bl); err != nil {
		return nil, fmt.Errorf("parse sealed blob: %w", err)
	}
	if bl.V != sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed blob version %d", bl.V)
	}
	if bl.N <= 1 || bl.N > maxScryptN || bl.R <= 0 || bl.R > maxScryptR || bl.P <= 0 || bl.P > maxScryptP {
		return nil, ErrTampered
	}

	key, err := scrypt.Key([]byte(c.passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrTampered
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// Compile-time assertion that SealedCodec implements Codec.
var _ Codec = (*SealedCodec)(nil)
