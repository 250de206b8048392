// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailure is the root of every authenticated-encryption
// failure: a wrong key, a wrong password or tampered ciphertext. Callers
// match it with [errors.Is]; retrying with the same input cannot succeed.
var ErrAuthenticationFailure = errors.New("authentication failed")

// Specialised authentication failures. Each wraps [ErrAuthenticationFailure].
var (
	// ErrWrongPassword is returned when a password-wrapped document (key
	// backup or share bundle) fails its tag check, or when a password is
	// required but none was supplied.
	ErrWrongPassword = fmt.Errorf("wrong password: %w", ErrAuthenticationFailure)

	// ErrTagMismatch is returned when a sealed blob does not open under the
	// given key.
	ErrTagMismatch = fmt.Errorf("tag mismatch: %w", ErrAuthenticationFailure)

	// ErrCiphertextTooShort is returned when a sealed blob is shorter than
	// nonce plus tag and therefore cannot be authentic.
	ErrCiphertextTooShort = fmt.Errorf("ciphertext too short: %w", ErrAuthenticationFailure)
)

// Input errors. These never indicate tampering; the input itself is unusable.
var (
	// ErrInvalidKey is returned when a symmetric key is not 32 bytes or a
	// private key is not a 32-byte seed.
	ErrInvalidKey = errors.New("invalid key length")

	// ErrInvalidNonce is returned when a nonce is not 12 bytes.
	ErrInvalidNonce = errors.New("invalid nonce length")

	// ErrMalformedBackup is returned when a backup document is not valid JSON,
	// lacks required fields, or its public key does not match its private key.
	ErrMalformedBackup = errors.New("malformed key backup")

	// ErrMalformedShare is returned when a share bundle cannot be decoded.
	ErrMalformedShare = errors.New("malformed share bundle")

	// ErrMalformedImage is returned by metadata stripping when an image of a
	// supported type cannot be parsed.
	ErrMalformedImage = errors.New("malformed image")

	// ErrUnsupportedImage is returned for image types whose metadata cannot
	// be removed, so they are never stored with location or device data.
	ErrUnsupportedImage = errors.New("unsupported image type")
)
