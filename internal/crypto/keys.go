// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// keyManager is the private implementation of [KeyManager]. Keys are Ed25519:
// the private key is the 32-byte seed and the public key is derived from it.
type keyManager struct {
	// kdfIterations is the PBKDF2 cost for password-protected backups.
	kdfIterations int
}

// NewKeyManager constructs a [KeyManager] using PBKDF2-SHA256 with
// [KDFIterations] iterations for backup wrapping.
func NewKeyManager() KeyManager {
	return &keyManager{kdfIterations: KDFIterations}
}

// GenerateKeyPair implements [KeyManager].
func (k *keyManager) GenerateKeyPair() (models.KeyPair, error) {
	seed, err := randomBytes(models.PrivateKeySize)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("generate private key: %w", err)
	}
	return keyPairFromSeed(seed)
}

// Sign implements [KeyManager]. Ed25519 signatures are deterministic.
func (k *keyManager) Sign(privateKey, message []byte) ([]byte, error) {
	if len(privateKey) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: private key must be %d bytes", ErrInvalidKey, ed25519.SeedSize)
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(privateKey), message), nil
}

// Verify implements [KeyManager].
func (k *keyManager) Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(publicKey, message, signature)
}

// ExportBackup implements [KeyManager]. With a password the plaintext
// document is sealed under PBKDF2(password, salt) with a fresh 16-byte salt
// and 12-byte nonce; every binary field is hex encoded.
func (k *keyManager) ExportBackup(pair models.KeyPair, password string) ([]byte, error) {
	if len(pair.PrivateKey) != models.PrivateKeySize || len(pair.PublicKey) != models.PublicKeySize {
		return nil, ErrInvalidKey
	}

	plain, err := json.Marshal(models.Backup{
		PrivateKey: hex.EncodeToString(pair.PrivateKey),
		PublicKey:  hex.EncodeToString(pair.PublicKey),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	if password == "" {
		return plain, nil
	}
	defer Wipe(plain)

	salt, err := randomBytes(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	wrapKey := passwordKey(password, salt, k.kdfIterations)
	defer Wipe(wrapKey)

	ciphertext, err := sealWithNonce(wrapKey, nonce, plain)
	if err != nil {
		return nil, fmt.Errorf("seal backup: %w", err)
	}

	return json.Marshal(models.Backup{
		Encrypted:  true,
		Salt:       hex.EncodeToString(salt),
		Nonce:      hex.EncodeToString(nonce),
		Ciphertext: hex.EncodeToString(ciphertext),
	})
}

// ImportBackup implements [KeyManager]. A password given for a plaintext
// backup is ignored.
func (k *keyManager) ImportBackup(blob []byte, password string) (models.KeyPair, error) {
	var doc models.Backup
	if err := json.Unmarshal(blob, &doc); err != nil {
		return models.KeyPair{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	if !doc.Encrypted {
		return parsePlainBackup(doc)
	}

	if doc.Salt == "" || doc.Nonce == "" || doc.Ciphertext == "" {
		return models.KeyPair{}, fmt.Errorf("%w: missing salt, nonce or ciphertext", ErrMalformedBackup)
	}
	salt, err1 := hex.DecodeString(doc.Salt)
	nonce, err2 := hex.DecodeString(doc.Nonce)
	ciphertext, err3 := hex.DecodeString(doc.Ciphertext)
	if err1 != nil || err2 != nil || err3 != nil || len(nonce) != NonceSize {
		return models.KeyPair{}, fmt.Errorf("%w: invalid hex field", ErrMalformedBackup)
	}
	if password == "" {
		return models.KeyPair{}, fmt.Errorf("backup is password protected: %w", ErrWrongPassword)
	}

	wrapKey := passwordKey(password, salt, k.kdfIterations)
	defer Wipe(wrapKey)

	plain, err := openWithNonce(wrapKey, nonce, ciphertext)
	if err != nil {
		return models.KeyPair{}, ErrWrongPassword
	}
	defer Wipe(plain)

	var inner models.Backup
	if err = json.Unmarshal(plain, &inner); err != nil {
		return models.KeyPair{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	return parsePlainBackup(inner)
}

func parsePlainBackup(doc models.Backup) (models.KeyPair, error) {
	if doc.PrivateKey == "" || doc.PublicKey == "" {
		return models.KeyPair{}, fmt.Errorf("%w: missing privateKey or publicKey", ErrMalformedBackup)
	}
	priv, err := hex.DecodeString(doc.PrivateKey)
	if err != nil || len(priv) != models.PrivateKeySize {
		return models.KeyPair{}, fmt.Errorf("%w: invalid privateKey", ErrMalformedBackup)
	}
	pub, err := hex.DecodeString(doc.PublicKey)
	if err != nil || len(pub) != models.PublicKeySize {
		return models.KeyPair{}, fmt.Errorf("%w: invalid publicKey", ErrMalformedBackup)
	}

	pair, err := keyPairFromSeed(priv)
	if err != nil {
		return models.KeyPair{}, err
	}
	if !bytes.Equal(pair.PublicKey, pub) {
		return models.KeyPair{}, fmt.Errorf("%w: public key does not match private key", ErrMalformedBackup)
	}
	return pair, nil
}

// PublicKeyFromPrivate derives the public key of a 32-byte private key.
func PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	pair, err := keyPairFromSeed(privateKey)
	if err != nil {
		return nil, err
	}
	return pair.PublicKey, nil
}

func keyPairFromSeed(seed []byte) (models.KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return models.KeyPair{}, ErrInvalidKey
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	return models.KeyPair{
		PrivateKey: append([]byte(nil), seed...),
		PublicKey:  append([]byte(nil), pub...),
	}, nil
}
