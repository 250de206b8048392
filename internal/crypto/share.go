// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// shareBundleVersion is the first byte of every decoded share bundle.
const shareBundleVersion byte = 1

type shareCodec struct {
	kdfIterations int
}

// NewShareCodec constructs a [ShareCodec] with the same KDF parameters as
// key backups.
func NewShareCodec() ShareCodec {
	return &shareCodec{kdfIterations: KDFIterations}
}

// DeriveShareKey implements [ShareCodec].
func (s *shareCodec) DeriveShareKey(password string, salt []byte) []byte {
	return passwordKey(password, salt, s.kdfIterations)
}

// EncryptSharePayload implements [ShareCodec]. The bundle is
// base64url(version ‖ salt ‖ nonce ‖ ciphertext ‖ tag) without padding, so it
// fits in a URL fragment as is.
func (s *shareCodec) EncryptSharePayload(payload models.SharePayload, password string) (string, error) {
	if len(payload.FileKey) != KeySize {
		return "", ErrInvalidKey
	}
	if len(payload.FileNonce) != NonceSize {
		return "", ErrInvalidNonce
	}
	if password == "" {
		return "", fmt.Errorf("empty share password: %w", ErrWrongPassword)
	}

	plain, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal share payload: %w", err)
	}
	defer Wipe(plain)

	salt, err := randomBytes(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	key := s.DeriveShareKey(password, salt)
	defer Wipe(key)

	ciphertext, err := sealWithNonce(key, nonce, plain)
	if err != nil {
		return "", fmt.Errorf("seal share payload: %w", err)
	}

	raw := make([]byte, 0, 1+SaltSize+NonceSize+len(ciphertext))
	raw = append(raw, shareBundleVersion)
	raw = append(raw, salt...)
	raw = append(raw, nonce...)
	raw = append(raw, ciphertext...)

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecryptSharePayload implements [ShareCodec].
func (s *shareCodec) DecryptSharePayload(bundle, password string) (models.SharePayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(bundle)
	if err != nil {
		return models.SharePayload{}, fmt.Errorf("%w: %v", ErrMalformedShare, err)
	}
	if len(raw) < 1+SaltSize+NonceSize+TagSize || raw[0] != shareBundleVersion {
		return models.SharePayload{}, ErrMalformedShare
	}

	salt := raw[1 : 1+SaltSize]
	nonce := raw[1+SaltSize : 1+SaltSize+NonceSize]
	ciphertext := raw[1+SaltSize+NonceSize:]

	key := s.DeriveShareKey(password, salt)
	defer Wipe(key)

	plain, err := openWithNonce(key, nonce, ciphertext)
	if err != nil {
		return models.SharePayload{}, ErrWrongPassword
	}
	defer Wipe(plain)

	var payload models.SharePayload
	if err = json.Unmarshal(plain, &payload); err != nil {
		return models.SharePayload{}, fmt.Errorf("%w: %v", ErrMalformedShare, err)
	}
	if len(payload.FileKey) != KeySize || len(payload.FileNonce) != NonceSize {
		return models.SharePayload{}, fmt.Errorf("%w: bad key material", ErrMalformedShare)
	}
	return payload, nil
}
