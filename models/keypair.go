// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Sizes of the account keypair. The private key is an Ed25519 seed; the
// public key is derived from it and is safe to publish.
const (
	PrivateKeySize = 32
	PublicKeySize  = 32
)

// KeyPair is the account identity. Every other key in the system is derived
// from PrivateKey or protected by a key derived from it. A KeyPair is held by
// the session owner only and is never sent to storage.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// Backup is the on-disk representation of an exported [KeyPair].
//
// A plaintext backup carries PrivateKey and PublicKey (hex). A
// password-protected backup sets Encrypted and carries Salt, Nonce and
// Ciphertext (hex); the ciphertext seals the plaintext document.
type Backup struct {
	Encrypted  bool   `json:"encrypted,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
	PublicKey  string `json:"publicKey,omitempty"`
	Salt       string `json:"salt,omitempty"`
	Nonce      string `json:"nonce,omitempty"`
	Ciphertext string `json:"ciphertext,omitempty"`
}
