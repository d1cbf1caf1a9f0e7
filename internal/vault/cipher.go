package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
)

const (
	// NonceSize is the GCM nonce (IV) size in bytes.
	NonceSize = 16

	// TagSize is the GCM authentication tag size in bytes.
	TagSize = 16
)

// EncryptedBlob holds one file's ciphertext plus the material needed to
// recover it. The salt and nonce are regenerated fresh on every encrypt
// call and must never repeat for the same derivation inputs.
type EncryptedBlob struct {
	Ciphertext []byte `json:"ciphertext"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	AuthTag    []byte `json:"authTag"`
}

// Encrypt encrypts plaintext under a key derived from the given material
// and project identity, using AES-256-GCM with a 16-byte nonce. A fresh
// random salt and nonce are generated per call; caller-supplied salts are
// never reused for encryption.
func Encrypt(plaintext []byte, material KeyMaterial, ident project.Identity) (*EncryptedBlob, error) {
	salt, err := GenerateRandom(SaltSize)
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(material, salt, ident)
	if err != nil {
		return nil, err
	}
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := GenerateRandom(NonceSize)
	if err != nil {
		return nil, err
	}

	// Seal appends the authentication tag to the ciphertext; the blob
	// stores the two separately.
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	return &EncryptedBlob{
		Ciphertext: sealed[:split],
		Salt:       salt,
		Nonce:      nonce,
		AuthTag:    sealed[split:],
	}, nil
}

// Decrypt recovers plaintext from a blob, re-deriving the key from the
// blob's stored salt. The authentication tag is verified before any
// plaintext is returned: a tag mismatch, wrong key, or corrupted
// ciphertext surfaces as ErrDecryptionFailed, never partial output.
func Decrypt(blob *EncryptedBlob, material KeyMaterial, ident project.Identity) ([]byte, error) {
	if len(blob.Salt) != SaltSize || len(blob.Nonce) != NonceSize || len(blob.AuthTag) != TagSize {
		return nil, fmt.Errorf("%w: malformed recovery fields", serrors.ErrDecryptionFailed)
	}

	key, err := DeriveKey(material, blob.Salt, ident)
	if err != nil {
		return nil, err
	}
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+TagSize)
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.AuthTag...)

	plaintext, err := gcm.Open(nil, blob.Nonce, sealed, nil)
	if err != nil {
		return nil, serrors.ErrDecryptionFailed
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return gcm, nil
}

// GenerateRandom returns n bytes from the cryptographically secure
// random source.
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating random bytes: %w", err)
	}
	return b, nil
}

// ClearBytes zeroes a byte slice holding sensitive data.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
