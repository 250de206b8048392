// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Sizes and KDF parameters shared by every sealing path.
const (
	KeySize       = 32      // AES-256 key size
	NonceSize     = 12      // GCM nonce size
	TagSize       = 16      // GCM authentication tag size
	SaltSize      = 16      // password KDF salt size
	KDFIterations = 100_000 // PBKDF2-SHA256 iterations for backups and shares
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext with key using AES-256-GCM and a fresh random
// nonce. The returned blob is nonce ‖ ciphertext ‖ tag, so [Open] can split
// the nonce back out.
func Seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	copy(out, nonce)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses [Seal]. A blob shorter than nonce plus tag yields
// [ErrCiphertextTooShort]; a failed tag check yields [ErrTagMismatch].
func Open(key, blob []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(blob) < NonceSize+TagSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrTagMismatch
	}
	return plaintext, nil
}

func sealWithNonce(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNonce, len(nonce))
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

func openWithNonce(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNonce, len(nonce))
	}
	if len(ciphertext) < TagSize {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrTagMismatch
	}
	return plaintext, nil
}

// passwordKey derives a wrapping key from password and salt with
// PBKDF2-SHA256. Backups and share links use the same parameters.
func passwordKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
