// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/MKhiriev/go-sealed-drive/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSharePayload() models.SharePayload {
	return models.SharePayload{
		FileKey:   bytes.Repeat([]byte{0xAB}, KeySize),
		FileNonce: bytes.Repeat([]byte{0xCD}, NonceSize),
		FileName:  "report.pdf",
		MimeType:  "application/pdf",
	}
}

func TestShare_RoundTrip(t *testing.T) {
	codec := NewShareCodec()
	payload := testSharePayload()

	bundle, err := codec.EncryptSharePayload(payload, "share-pw")
	require.NoError(t, err)
	assert.NotContains(t, bundle, "=")
	assert.NotContains(t, bundle, "report")

	got, err := codec.DecryptSharePayload(bundle, "share-pw")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestShare_FreshSaltAndNonce(t *testing.T) {
	codec := NewShareCodec()

	b1, err := codec.EncryptSharePayload(testSharePayload(), "pw")
	require.NoError(t, err)
	b2, err := codec.EncryptSharePayload(testSharePayload(), "pw")
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2)
}

func TestShare_WrongPassword(t *testing.T) {
	codec := NewShareCodec()
	bundle, err := codec.EncryptSharePayload(testSharePayload(), "right")
	require.NoError(t, err)

	_, err = codec.DecryptSharePayload(bundle, "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestShare_Tampered(t *testing.T) {
	codec := NewShareCodec()
	bundle, err := codec.EncryptSharePayload(testSharePayload(), "pw")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(bundle)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	_, err = codec.DecryptSharePayload(base64.RawURLEncoding.EncodeToString(raw), "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestShare_Malformed(t *testing.T) {
	codec := NewShareCodec()

	_, err := codec.DecryptSharePayload("%%%not-base64", "pw")
	assert.ErrorIs(t, err, ErrMalformedShare)

	_, err = codec.DecryptSharePayload(base64.RawURLEncoding.EncodeToString([]byte{1, 2, 3}), "pw")
	assert.ErrorIs(t, err, ErrMalformedShare)
}

func TestShare_DeriveShareKeyMatchesBackupKDF(t *testing.T) {
	salt := bytes.Repeat([]byte{0x11}, SaltSize)
	assert.Equal(t, passwordKey("pw", salt, KDFIterations), NewShareCodec().DeriveShareKey("pw", salt))
}

func TestShare_InvalidInput(t *testing.T) {
	codec := NewShareCodec()

	_, err := codec.EncryptSharePayload(models.SharePayload{FileKey: []byte{1}}, "pw")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = codec.EncryptSharePayload(testSharePayload(), "")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
