// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds all client-side cryptography of the drive. It knows
// nothing about storage, the network or the manifest layout; it only
// generates, derives and protects keys and seals bytes with them.
//
// Key hierarchy:
//
//	KeyPair.PrivateKey ──HKDF──▶ master key ──AES-GCM──▶ manifest
//	                                               └─ FileEntry.FileKey ──AES-GCM──▶ file blob
//	password ──PBKDF2──▶ wrapping key ──AES-GCM──▶ key backup / share bundle
package crypto

import "github.com/MKhiriev/go-sealed-drive/models"

// KeyManager owns the account keypair lifecycle.
type KeyManager interface {
	// GenerateKeyPair draws a fresh 32-byte private key from the OS CSPRNG
	// and derives the matching public key.
	GenerateKeyPair() (models.KeyPair, error)

	// Sign returns a deterministic signature of message. It authenticates the
	// account to storage services; the manifest never uses it.
	Sign(privateKey, message []byte) ([]byte, error)

	// Verify reports whether signature is valid for message under publicKey.
	Verify(publicKey, message, signature []byte) bool

	// ExportBackup serialises pair. An empty password yields a plaintext
	// document; otherwise the document is sealed under a password-derived key.
	ExportBackup(pair models.KeyPair, password string) ([]byte, error)

	// ImportBackup reverses ExportBackup. It returns [ErrWrongPassword] when
	// the tag check fails or a password is required but empty, and
	// [ErrMalformedBackup] when required fields are missing.
	ImportBackup(blob []byte, password string) (models.KeyPair, error)
}

// MasterKeyDeriver turns a private key into the manifest key.
type MasterKeyDeriver interface {
	// DeriveMasterKey is deterministic: the same private key always yields
	// the same 256-bit key, so unlocking needs nothing but the private key.
	DeriveMasterKey(privateKey []byte) ([]byte, error)
}

// FileCipher seals file contents. Every file gets independent key material.
type FileCipher interface {
	// GenerateFileKey returns a fresh 256-bit key and 96-bit nonce.
	GenerateFileKey() (key, nonce []byte, err error)

	// StripMetadata removes embedded metadata blocks from images. It must be
	// applied before Encrypt. Unsupported types are returned unchanged.
	StripMetadata(data []byte, mimeType string) ([]byte, error)

	// Encrypt seals data with AES-256-GCM.
	Encrypt(data, key, nonce []byte) ([]byte, error)

	// Decrypt opens data sealed by Encrypt. It returns [ErrTagMismatch] on any
	// tampering or wrong key and never returns partial plaintext.
	Decrypt(data, key, nonce []byte) ([]byte, error)
}

// ShareCodec wraps one file's key material under a share password.
type ShareCodec interface {
	// DeriveShareKey uses the same KDF parameters as key backups.
	DeriveShareKey(password string, salt []byte) []byte

	// EncryptSharePayload seals payload under a key derived from password
	// with a fresh salt and nonce and returns a URL-safe bundle.
	EncryptSharePayload(payload models.SharePayload, password string) (string, error)

	// DecryptSharePayload reverses EncryptSharePayload. It returns
	// [ErrWrongPassword] on a tag mismatch.
	DecryptSharePayload(bundle, password string) (models.SharePayload, error)
}
