// Package secrets provides encryption at rest for platform credential mappings.
// Credentials are serialized to JSON, sealed with AES-256-GCM, and stored as a
// single opaque blob. The cipher key is derived from a configured passphrase
// via scrypt.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	keyLength = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Credentials is a platform-specific mapping of credential fields,
// e.g. access tokens, app passwords, and handles.
type Credentials map[string]string

// System seals and opens credential mappings. Callers treat the
// sealed blob as opaque.
type System interface {
	Encrypt(creds Credentials) ([]byte, error)
	Decrypt(blob []byte) (Credentials, error)
}

type box struct {
	aead cipher.AEAD
}

// New creates a secrets system with a key derived from the configured
// passphrase and salt.
func New(cfg *Config) (System, error) {
	key, err := scrypt.Key([]byte(cfg.Passphrase), []byte(cfg.Salt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &box{aead: aead}, nil
}

func (b *box) Encrypt(creds Credentials) ([]byte, error) {
	plain, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}

	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return b.aead.Seal(nonce, nonce, plain, nil), nil
}

func (b *box) Decrypt(blob []byte) (Credentials, error) {
	if len(blob) < b.aead.NonceSize() {
		return nil, ErrMalformedBlob
	}

	nonce, sealed := blob[:b.aead.NonceSize()], blob[b.aead.NonceSize():]

	plain, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	var creds Credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, fmt.Errorf("unmarshal credentials: %w", err)
	}

	return creds, nil
}
