// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFileKey_IndependentPerFile(t *testing.T) {
	c := NewFileCipher()

	k1, n1, err := c.GenerateFileKey()
	require.NoError(t, err)
	k2, n2, err := c.GenerateFileKey()
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	assert.Len(t, n1, NonceSize)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, n1, n2)
}

func TestFileCipher_RoundTrip(t *testing.T) {
	c := NewFileCipher()
	key, nonce, err := c.GenerateFileKey()
	require.NoError(t, err)

	content := bytes.Repeat([]byte("hello sealed drive "), 100)
	sealed, err := c.Encrypt(content, key, nonce)
	require.NoError(t, err)
	assert.Len(t, sealed, len(content)+TagSize)

	got, err := c.Decrypt(sealed, key, nonce)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFileCipher_TamperDetected(t *testing.T) {
	c := NewFileCipher()
	key, nonce, err := c.GenerateFileKey()
	require.NoError(t, err)

	sealed, err := c.Encrypt([]byte("secret file body"), key, nonce)
	require.NoError(t, err)

	for i := range sealed {
		tampered := bytes.Clone(sealed)
		tampered[i] ^= 0xFF

		got, err := c.Decrypt(tampered, key, nonce)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrTagMismatch)
	}
}

func TestFileCipher_WrongKeyOrNonce(t *testing.T) {
	c := NewFileCipher()
	key, nonce, err := c.GenerateFileKey()
	require.NoError(t, err)
	otherKey, otherNonce, err := c.GenerateFileKey()
	require.NoError(t, err)

	sealed, err := c.Encrypt([]byte("data"), key, nonce)
	require.NoError(t, err)

	_, err = c.Decrypt(sealed, otherKey, nonce)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)

	_, err = c.Decrypt(sealed, key, otherNonce)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestFileCipher_InvalidInputs(t *testing.T) {
	c := NewFileCipher()

	_, err := c.Encrypt([]byte("x"), []byte("short"), make([]byte, NonceSize))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = c.Encrypt([]byte("x"), make([]byte, KeySize), []byte{1})
	assert.ErrorIs(t, err, ErrInvalidNonce)

	_, err = c.Decrypt([]byte{1, 2}, make([]byte, KeySize), make([]byte, NonceSize))
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}
