// Package cryptox implements the platform's cryptographic primitives: key
// derivation, credential hashing, and authenticated encryption of
// JSON-serialized collections.
//
// The symmetric key is derived from an application-embedded secret and a
// fixed salt, so every process derives the same key. This is a known
// limitation of the serverless design: the key protects data at rest
// against casual inspection of the storage medium, not against an attacker
// who holds the binary and its configuration.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/istatata/bayan/internal/common"
)

const (
	keyLen    = 32 // AES-256
	nonceLen  = 12 // standard GCM nonce
	minRounds = 100000
)

// Params configures key derivation. Secrets come from config, never from
// package-level constants, so tests can swap them.
type Params struct {
	Secret     string
	Salt       string
	Iterations int
}

// Provider derives the symmetric key once and performs all encrypt/decrypt
// and hashing operations. Safe for concurrent use.
type Provider struct {
	key  []byte
	aead cipher.AEAD
}

// NewProvider derives a 256-bit key from p via PBKDF2-SHA256 and prepares
// an AES-GCM AEAD. The iteration count must be at least 100000.
func NewProvider(p Params) (*Provider, error) {
	if p.Secret == "" || p.Salt == "" {
		return nil, errors.New("cryptox: secret and salt are required")
	}
	if p.Iterations < minRounds {
		return nil, fmt.Errorf("cryptox: iteration count %d below minimum %d", p.Iterations, minRounds)
	}

	key := pbkdf2.Key([]byte(p.Secret), []byte(p.Salt), p.Iterations, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: %w", err)
	}

	return &Provider{key: key, aead: aead}, nil
}

// DeriveKey returns a copy of the derived 256-bit key. Same Params always
// yield the same key.
func (p *Provider) DeriveKey() []byte {
	out := make([]byte, len(p.key))
	copy(out, p.key)
	return out
}

// HashCredential returns the SHA-256 hex digest of a credential string.
// Deterministic; used for storing and comparing passwords.
func HashCredential(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Encrypt serializes v to JSON and seals it with AES-GCM under a fresh
// random 96-bit nonce. The nonce is prepended to the ciphertext before
// base64 encoding so decryption is self-contained.
func (p *Provider) Encrypt(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cryptox: marshal: %w", err)
	}

	nonce := common.GenerateRandByteArray(nonceLen)
	sealed := p.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt into v. Any tamper, wrong key, or malformed
// input yields common.ErrCryptoFailure; partial data is never returned.
func (p *Provider) Decrypt(blob string, v any) error {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoFailure, err)
	}
	if len(raw) < nonceLen {
		return fmt.Errorf("%w: blob too short", common.ErrCryptoFailure)
	}

	nonce, ciphertext := raw[:nonceLen], raw[nonceLen:]

	plaintext, err := p.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoFailure, err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoFailure, err)
	}
	return nil
}
