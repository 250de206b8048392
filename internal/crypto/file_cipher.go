// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "fmt"

type fileCipher struct{}

// NewFileCipher constructs the AES-256-GCM [FileCipher].
func NewFileCipher() FileCipher {
	return &fileCipher{}
}

// GenerateFileKey implements [FileCipher]. Key and nonce are drawn per file,
// so a nonce is never reused under the same key.
func (c *fileCipher) GenerateFileKey() ([]byte, []byte, error) {
	key, err := randomBytes(KeySize)
	if err != nil {
		return nil, nil, fmt.Errorf("generate file key: %w", err)
	}
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generate file nonce: %w", err)
	}
	return key, nonce, nil
}

// StripMetadata implements [FileCipher].
func (c *fileCipher) StripMetadata(data []byte, mimeType string) ([]byte, error) {
	return stripMetadata(data, mimeType)
}

// Encrypt implements [FileCipher]. The output is ciphertext ‖ tag; the nonce
// is kept in the manifest entry, not in the blob.
func (c *fileCipher) Encrypt(data, key, nonce []byte) ([]byte, error) {
	out, err := sealWithNonce(key, nonce, data)
	if err != nil {
		return nil, fmt.Errorf("encrypt file: %w", err)
	}
	return out, nil
}

// Decrypt implements [FileCipher].
func (c *fileCipher) Decrypt(data, key, nonce []byte) ([]byte, error) {
	out, err := openWithNonce(key, nonce, data)
	if err != nil {
		return nil, fmt.Errorf("decrypt file: %w", err)
	}
	return out, nil
}
