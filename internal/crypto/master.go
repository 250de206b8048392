// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// masterKeyInfo binds derived keys to their purpose. Changing it orphans
// every existing manifest.
const masterKeyInfo = "sealed-drive manifest key v1"

// masterKeySalt is fixed and all-zero so the manifest key can be recovered
// from the private key alone.
var masterKeySalt = make([]byte, 16)

type masterKeyDeriver struct{}

// NewMasterKeyDeriver constructs the HKDF-SHA256 [MasterKeyDeriver].
func NewMasterKeyDeriver() MasterKeyDeriver {
	return &masterKeyDeriver{}
}

// DeriveMasterKey implements [MasterKeyDeriver]. Anyone holding privateKey
// can derive the same key; losing privateKey loses the manifest.
func (m *masterKeyDeriver) DeriveMasterKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != KeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes", ErrInvalidKey, KeySize)
	}

	r := hkdf.New(sha256.New, privateKey, masterKeySalt, []byte(masterKeyInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	return key, nil
}
