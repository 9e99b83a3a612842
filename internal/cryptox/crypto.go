// Package cryptox seals short secrets (the bearer token) for storage at rest.
//
// Layout of a sealed value, base64 (std) encoded:
//
//	salt(16) | nonce(12) | AES-256-GCM ciphertext+tag
//
// The AES key is derived from a caller secret with argon2id and the stored salt,
// so the same secret opens values sealed by any earlier process.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/findreve/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

var (
	ErrEmptySecret        = errors.New("empty secret")
	ErrCiphertextTooShort = errors.New("sealed value too short")
)

// DeriveKey stretches secret into a 32-byte AES key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under secret and returns the encoded sealed value.
func Seal(plaintext []byte, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	salt := common.GenerateRandByteArray(saltSize)
	aesgcm, err := newGCM(DeriveKey(secret, salt))
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	nonce := common.GenerateRandByteArray(nonceSize)

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. A wrong secret or a tampered value fails authentication.
func Open(sealed string, secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode sealed value: %w", err)
	}
	if len(raw) < saltSize+nonceSize {
		return nil, ErrCiphertextTooShort
	}

	salt, nonce, ciphertext := raw[:saltSize], raw[saltSize:saltSize+nonceSize], raw[saltSize+nonceSize:]

	aesgcm, err := newGCM(DeriveKey(secret, salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed value: %w", err)
	}
	return plaintext, nil
}
