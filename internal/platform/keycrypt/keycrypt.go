// Package keycrypt encrypts user-supplied AI provider API keys at rest.
// Keys are sealed with AES-256-GCM under a key derived from the configured
// master secret via HKDF-SHA256, so rotating the master secret invalidates
// all stored ciphertexts at once.
package keycrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Errors returned by the codec.
var (
	// ErrEmptySecret is returned when the master secret is missing or too short.
	ErrEmptySecret = errors.New("master secret must be at least 32 bytes")

	// ErrEmptyKey is returned when asked to encrypt an empty API key.
	ErrEmptyKey = errors.New("API key cannot be empty")

	// ErrInvalidCiphertext is returned when a stored ciphertext cannot be
	// decrypted, typically after a master secret rotation or data corruption.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// hkdfInfo domain-separates the derived key from any other use of the secret.
const hkdfInfo = "blob-api/user-api-key-encryption/v1"

// minSecretLen is the minimum accepted master secret length in bytes.
const minSecretLen = 32

// Codec seals and opens API keys. It is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the encryption key from the master secret and prepares
// the AEAD. The secret must be at least 32 bytes.
func NewCodec(masterSecret string) (*Codec, error) {
	if len(masterSecret) < minSecretLen {
		return nil, ErrEmptySecret
	}

	derived := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(masterSecret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals the plaintext API key. The returned ciphertext embeds the
// random nonce and can only be opened by a Codec built from the same master
// secret.
func (c *Codec) Encrypt(apiKey string) ([]byte, error) {
	if apiKey == "" {
		return nil, ErrEmptyKey
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, []byte(apiKey), nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt and returns the plaintext
// API key. Callers must treat the result as a scoped secret: use it for the
// provider call and drop it, never log or persist it.
func (c *Codec) Decrypt(ciphertext []byte) (string, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) <= nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
